package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quillbox/quill/internal/api"
	"github.com/quillbox/quill/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the platform and save the session token",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the saved session token",
	RunE:  runLogout,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	RunE:  runSignup,
}

var (
	loginUsername string
	loginPassword string

	signupUsername  string
	signupEmail     string
	signupPassword  string
	signupFirstName string
	signupLastName  string
)

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username or email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted if omitted)")

	signupCmd.Flags().StringVarP(&signupUsername, "username", "u", "", "Username (required)")
	signupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "Email address (required)")
	signupCmd.Flags().StringVarP(&signupPassword, "password", "p", "", "Password (prompted if omitted)")
	signupCmd.Flags().StringVar(&signupFirstName, "first-name", "", "First name")
	signupCmd.Flags().StringVar(&signupLastName, "last-name", "", "Last name")
	if err := signupCmd.MarkFlagRequired("username"); err != nil {
		panic(fmt.Sprintf("failed to mark username flag as required: %v", err))
	}
	if err := signupCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}

	rootCmd.AddCommand(loginCmd, logoutCmd, signupCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	username := loginUsername
	if username == "" {
		fmt.Print("Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	password := loginPassword
	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	client := newAPIClient()
	resp, err := client.Login(cmd.Context(), api.LoginRequest{
		UsernameOrEmail: username,
		Password:        password,
	})
	if err != nil {
		return err
	}

	if err := saveCredential(resp); err != nil {
		return err
	}
	fmt.Println(renderSuccess("logged in as " + resp.Username))
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	if !sess.LoggedIn() {
		fmt.Println(mutedStyle.Render("not logged in"))
		return nil
	}
	username := sess.Username()
	if err := sess.Clear(); err != nil {
		return err
	}
	fmt.Println(renderSuccess("logged out " + username))
	return nil
}

func runSignup(cmd *cobra.Command, _ []string) error {
	password := signupPassword
	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	client := newAPIClient()
	resp, err := client.Signup(cmd.Context(), api.SignupRequest{
		Username:  signupUsername,
		Email:     signupEmail,
		Password:  password,
		FirstName: signupFirstName,
		LastName:  signupLastName,
	})
	if err != nil {
		return err
	}

	if err := saveCredential(resp); err != nil {
		return err
	}
	fmt.Println(renderSuccess("account created, logged in as " + resp.Username))
	return nil
}

func saveCredential(resp *api.AuthResponse) error {
	return sess.SetCredential(session.Credential{
		Token:    resp.AccessToken,
		Username: resp.Username,
		Email:    resp.Email,
		SavedAt:  time.Now(),
	})
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
