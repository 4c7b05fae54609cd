// Package main is the quill command line client for the story platform.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/api"
	"github.com/quillbox/quill/internal/applog"
	"github.com/quillbox/quill/internal/config"
	"github.com/quillbox/quill/internal/flexdate"
	"github.com/quillbox/quill/internal/session"
	"github.com/quillbox/quill/internal/storage"
	"github.com/quillbox/quill/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	flagConfigPath string
	flagBaseURL    string
	flagDBPath     string

	cfg  *config.Config
	sess *session.Session
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Terminal client for the story publishing platform",
	Long: "quill browses, filters, publishes and bulk-imports stories on a story\n" +
		"publishing platform, with a local cache and full-text search.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(flagConfigPath)
		if err != nil {
			return err
		}

		if flagBaseURL != "" {
			normalized, verr := validation.NewAPIURLValidator().ValidateAndNormalize(flagBaseURL)
			if verr != nil {
				return verr
			}
			cfg.API.BaseURL = normalized
		}
		if flagDBPath != "" {
			cfg.Database.Path = flagDBPath
		}

		if err := applog.Setup(applog.ParseLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
			return err
		}
		flexdate.SetStrict(cfg.Dates.Strict)

		sess, err = session.Load(session.DefaultPath())
		return err
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		applog.Close()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to local cache database (overrides config)")
}

// newAPIClient builds the REST client with the session wired into the
// transport. A 401 drops the saved credentials so the next run prompts a
// fresh login.
func newAPIClient() *api.Client {
	return api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.HTTPTimeout),
		api.WithUserAgent(cfg.API.UserAgent),
		api.WithInterceptor(api.AuthInterceptor(sess)),
		api.WithInterceptor(api.UnauthorizedInterceptor(func() {
			applog.Warnf("session rejected by server, clearing credentials")
			_ = sess.Clear()
		})),
	)
}

func openStore() (*storage.Store, error) {
	return storage.NewStore(cfg.Database.Path)
}

func requireLogin() error {
	if !sess.LoggedIn() {
		return fmt.Errorf("not logged in, run 'quill login' first")
	}
	return nil
}
