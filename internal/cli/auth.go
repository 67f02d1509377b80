package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	authUsername string
	authEmail    string
	authPassword string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the FRA backend",
	Long: `Log in with a username and password. On success the session (user,
token) is stored at ~/.framap/auth-storage.json and reused by every
subsequent command until logout or until the server rejects the token.

Example:
  framap login --username ranger1
  framap login --username ranger1 --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		username := authUsername
		if username == "" {
			username = prompt("Username: ")
		}
		password := authPassword
		if password == "" {
			password = prompt("Password: ")
		}

		if err := a.store.Login(cmd.Context(), username, password); err != nil {
			return err
		}

		user := a.store.User()
		fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Role)
		return nil
	},
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and start a session",
	Long: `Register a new account. On success the newly issued token is stored
and the session behaves exactly as after login.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		username := authUsername
		if username == "" {
			username = prompt("Username: ")
		}
		email := authEmail
		if email == "" {
			email = prompt("Email: ")
		}
		password := authPassword
		if password == "" {
			password = prompt("Password: ")
		}

		if err := a.store.Register(cmd.Context(), username, email, password); err != nil {
			return err
		}

		user := a.store.User()
		fmt.Printf("Registered and logged in as %s\n", user.Username)
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		a.store.Logout()
		fmt.Println("Logged out")
		return nil
	},
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.requireSession(); err != nil {
			return err
		}

		user := a.store.User()
		fmt.Printf("Username: %s\n", user.Username)
		fmt.Printf("Email:    %s\n", user.Email)
		fmt.Printf("Role:     %s\n", user.Role)

		info, err := a.store.TokenInfo()
		if err != nil {
			// Opaque (non-JWT) tokens are still valid sessions.
			return nil
		}
		if !info.ExpiresAt.IsZero() {
			fmt.Printf("Token expires: %s\n", info.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
			if info.Expired() {
				fmt.Println("Warning: token looks expired; the next request will ask you to log in again")
			}
		}
		return nil
	},
}

func prompt(label string) string {
	fmt.Fprint(os.Stderr, label)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().StringVarP(&authUsername, "username", "u", "", "account username")
		cmd.Flags().StringVarP(&authPassword, "password", "p", "", "account password (prompted when omitted)")
	}
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "account email")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
