package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

// loginCmd represents the login command.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Long: `Sign in to the personal-finance API and store the bearer token.

The token is written to the token file (FINTRACK_TOKEN_PATH, default
~/.config/fintrack/token) and used by every other command. In mock mode a
fixed token is stored and no network call is made.

Example:
  fintrack login --email olena@example.com --password secret`,
	Run: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (required)")

	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) {
	sess, err := newSession()
	exitOnError(err, "failed to initialize session")

	token, err := sess.backend.Login(loginEmail, loginPassword)
	exitOnError(err, "login failed")

	// The remote client stores the token itself; the mock repository does
	// not, so store it here either way.
	exitOnError(sess.tokens.SetToken(token), "failed to store token")

	slog.Debug("token stored")
	fmt.Println("Logged in.")
}

// logoutCmd represents the logout command.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		sess, err := newSession()
		exitOnError(err, "failed to initialize session")

		exitOnError(sess.tokens.RemoveToken(), "failed to remove token")
		fmt.Println("Logged out.")
	},
}
