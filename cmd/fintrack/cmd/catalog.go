package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

var categoriesType string

// accountsCmd represents the accounts command.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts",
	Run: func(cmd *cobra.Command, args []string) {
		sess, err := newSession()
		exitOnError(err, "failed to initialize session")

		accounts, err := sess.backend.ListAccounts()
		exitOnError(err, "failed to list accounts")

		if len(accounts) == 0 {
			fmt.Println("No accounts.")
			return
		}
		fmt.Printf("%-10s  %-16s  %-12s  %-4s  %s\n", "ID", "NAME", "TYPE", "CUR", "DESCRIPTION")
		for _, a := range accounts {
			fmt.Printf("%-10s  %-16s  %-12s  %-4s  %s\n", a.ID, a.Name, a.Type, a.Currency, a.Description)
		}
	},
}

// categoriesCmd represents the categories command.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the category tree",
	Long: `Show the category tree, subcategories indented under their parents.

Example:
  fintrack categories
  fintrack categories --type EXPENSES`,
	Run: func(cmd *cobra.Command, args []string) {
		sess, err := newSession()
		exitOnError(err, "failed to initialize session")

		tree, err := sess.backend.CategoryTree(models.CategoryType(categoriesType))
		exitOnError(err, "failed to load categories")

		if len(tree) == 0 {
			fmt.Println("No categories.")
			return
		}
		for _, node := range tree {
			fmt.Printf("%-10s  %-10s  %s\n", node.ID, node.Type, node.Name)
			for _, sub := range node.Subcategories {
				fmt.Printf("%-10s  %-10s    %s\n", sub.ID, sub.Type, sub.Name)
			}
		}
	},
}

func init() {
	categoriesCmd.Flags().StringVar(&categoriesType, "type", "", "category type (EXPENSES, INCOME, TRANSFER)")
}
