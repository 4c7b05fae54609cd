package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("quill %s\n", Version)
		fmt.Println("story platform client")
	},
}

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write a default configuration file",
	RunE:  runGenerateConfig,
}

var generateConfigPath string

func init() {
	generateConfigCmd.Flags().StringVarP(&generateConfigPath, "out", "o", "", "Destination path (defaults to ~/.config/quill/config.toml)")
	rootCmd.AddCommand(versionCmd, generateConfigCmd)
}

func runGenerateConfig(_ *cobra.Command, _ []string) error {
	path := generateConfigPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "quill", "config.toml")
	}

	if err := config.GenerateDefaultConfig(path); err != nil {
		return fmt.Errorf("generating config: %w", err)
	}
	fmt.Println(renderSuccess("wrote default configuration to " + path))
	return nil
}
