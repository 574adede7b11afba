// Package cmd provides CLI commands for fintrack.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/azhovnerik/personal-finance-mobile/pkg/apiclient"
	"github.com/azhovnerik/personal-finance-mobile/pkg/auth"
	"github.com/azhovnerik/personal-finance-mobile/pkg/config"
	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/memory"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
	"github.com/azhovnerik/personal-finance-mobile/pkg/transactions"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fintrack",
	Short: "Track personal finances from the command line",
	Long: `fintrack is a CLI client for the personal-finance API.

It supports:
- Listing transactions with date, account and type filters
- Adding and deleting transactions
- Browsing accounts and the category tree
- A mock mode with seeded fixture data (FINTRACK_USE_MOCKS=true)

Example:
  fintrack login --email olena@example.com --password secret
  fintrack list --from 2026-08-01 --to 2026-08-29
  fintrack add --category Groceries --account "Main account" --amount 250`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(categoriesCmd)
}

// backend is what the commands need from the data source. Both the remote API
// client and the in-memory mock repository satisfy it.
type backend interface {
	transactions.Backend
	Login(email, password string) (string, error)
	ListAccounts() ([]models.Account, error)
	CategoryTree(categoryType models.CategoryType) ([]models.CategoryNode, error)
}

// session bundles everything a command needs: configuration, the token store,
// the selected backend and the shared change-notification bus.
type session struct {
	cfg     *config.Config
	tokens  auth.Store
	backend backend
	bus     *transactions.Bus
}

// newSession loads configuration and wires the backend it selects. In mock
// mode each invocation starts from the seeded fixture set.
func newSession() (*session, error) {
	cfg, err := config.Load(getConfigFile())
	if err != nil {
		return nil, err
	}

	tokens := auth.Open(cfg.TokenPath)

	var b backend
	if cfg.UseMocks {
		slog.Debug("using mock repository")
		b = memory.NewSeeded(time.Now())
	} else {
		slog.Debug("using remote API", "base_url", cfg.APIBaseURL)
		b = apiclient.NewClient(apiclient.ClientConfig{
			BaseURL: cfg.APIBaseURL,
			Tokens:  tokens,
		})
	}

	return &session{
		cfg:     cfg,
		tokens:  tokens,
		backend: b,
		bus:     transactions.NewBus(),
	}, nil
}

// newView opens a transaction view over the session's backend.
func (s *session) newView() *transactions.View {
	return transactions.NewView(s.backend, s.tokens, s.bus, sessionExpired)
}

// sessionExpired tells the user how to re-establish credentials.
func sessionExpired() {
	fmt.Fprintln(os.Stderr, "Session expired. Run `fintrack login`.")
}

// listFilter builds the filter for a list, falling back to the default
// current-month range when no dates are given.
func listFilter(from, to, accountID, txnType string) filter.Filter {
	f := filter.Default(time.Now())
	if from != "" {
		f.StartDate = from
	}
	if to != "" {
		f.EndDate = to
	}
	f.AccountID = accountID
	if txnType != "" {
		f.Type = models.TransactionType(txnType)
	}
	return f
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
