package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
	"github.com/azhovnerik/personal-finance-mobile/pkg/transactions"
)

var (
	listFrom    string
	listTo      string
	listAccount string
	listType    string

	addCategory string
	addAccount  string
	addAmount   float64
	addDate     string
	addComment  string
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Long: `List transactions matching a filter.

Without date flags the current month up to today is shown. The account flag
takes an account id; the type flag takes EXPENSE, INCOME, CHANGE_BALANCE,
TRANSFER or ALL.

Example:
  fintrack list
  fintrack list --from 2026-08-01 --to 2026-08-29 --type EXPENSE`,
	Run: runList,
}

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a transaction",
	Long: `Add a transaction. Category and account are matched by id or by name;
direction and transaction type are derived from the category.

Example:
  fintrack add --category Groceries --account "Main account" --amount 250
  fintrack add --category cat-4 --account acc-1 --amount 40000 --comment "August salary"`,
	Run: runAdd,
}

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:   "delete <transaction-id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	Run:   runDelete,
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "start date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "end date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listAccount, "account", "", "account id")
	listCmd.Flags().StringVar(&listType, "type", "", "transaction type")

	addCmd.Flags().StringVar(&addCategory, "category", "", "category id or name (required)")
	addCmd.Flags().StringVar(&addAccount, "account", "", "account id or name (required)")
	addCmd.Flags().Float64Var(&addAmount, "amount", 0, "amount, must be positive (required)")
	addCmd.Flags().StringVar(&addDate, "date", "", "date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addComment, "comment", "", "free-form comment")

	addCmd.MarkFlagRequired("category")
	addCmd.MarkFlagRequired("account")
	addCmd.MarkFlagRequired("amount")
}

func runList(cmd *cobra.Command, args []string) {
	sess, err := newSession()
	exitOnError(err, "failed to initialize session")

	view := sess.newView()
	defer view.Close()

	view.Load(listFilter(listFrom, listTo, listAccount, listType))
	if view.State() == transactions.StateErrored {
		fmt.Fprintf(os.Stderr, "Error: %s\n", view.Err())
		os.Exit(1)
	}

	printTransactions(view.Transactions())
}

func runAdd(cmd *cobra.Command, args []string) {
	sess, err := newSession()
	exitOnError(err, "failed to initialize session")

	category, err := resolveCategory(sess, addCategory)
	exitOnError(err, "failed to resolve category")

	account, err := resolveAccount(sess, addAccount)
	exitOnError(err, "failed to resolve account")

	date := addDate
	if date == "" {
		date = time.Now().Format(filter.DateLayout)
	}

	req, err := models.NewCreateRequest(category, account, addAmount, date, addComment)
	exitOnError(err, "invalid transaction")

	view := sess.newView()
	defer view.Close()

	result := view.Create(req, &transactions.CreateOptions{Category: &category, Account: &account})
	if !result.Success {
		fmt.Fprintf(os.Stderr, "Error: %s\n", result.Err)
		os.Exit(1)
	}

	fmt.Printf("Added %s %.2f %s to %s.\n", category.Name, addAmount, account.Currency, account.Name)
}

func runDelete(cmd *cobra.Command, args []string) {
	sess, err := newSession()
	exitOnError(err, "failed to initialize session")

	view := sess.newView()
	defer view.Close()

	if err := view.Delete(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Deleted.")
}

// printTransactions renders the list as a fixed-width table, signed by
// direction.
func printTransactions(items []models.Transaction) {
	if len(items) == 0 {
		fmt.Println("No transactions.")
		return
	}

	fmt.Printf("%-36s  %-10s  %10s %-4s  %-16s  %-16s  %s\n",
		"ID", "DATE", "AMOUNT", "", "CATEGORY", "ACCOUNT", "COMMENT")
	for _, txn := range items {
		sign := "-"
		if txn.Direction == models.DirectionIncrease {
			sign = "+"
		}
		date := txn.Date
		if len(date) > len(filter.DateLayout) {
			date = date[:len(filter.DateLayout)]
		}
		fmt.Printf("%-36s  %-10s  %s%9.2f %-4s  %-16s  %-16s  %s\n",
			txn.ID, date, sign, txn.Amount, txn.Currency, txn.Category.Name, txn.Account.Name, txn.Comment)
	}
}

// resolveCategory matches ref against category ids first, then names.
func resolveCategory(sess *session, ref string) (models.Category, error) {
	tree, err := sess.backend.CategoryTree("")
	if err != nil {
		return models.Category{}, err
	}

	categories := models.FlattenCategoryTree(tree)
	for _, c := range categories {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return models.Category{}, fmt.Errorf("no category matches %q", ref)
}

// resolveAccount matches ref against account ids first, then names.
func resolveAccount(sess *session, ref string) (models.Account, error) {
	accounts, err := sess.backend.ListAccounts()
	if err != nil {
		return models.Account{}, err
	}

	for _, a := range accounts {
		if a.ID == ref {
			return a, nil
		}
	}
	for _, a := range accounts {
		if strings.EqualFold(a.Name, ref) {
			return a, nil
		}
	}
	return models.Account{}, fmt.Errorf("no account matches %q", ref)
}
