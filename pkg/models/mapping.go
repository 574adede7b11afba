package models

import "fmt"

// ClassifyCategory maps a category type to the direction and transaction type
// a new transaction in that category must carry. The mapping is exhaustive
// over the closed enumeration: expense categories decrease the balance,
// income categories increase it, and transfer categories cannot be used for
// plain transactions.
func ClassifyCategory(t CategoryType) (Direction, TransactionType, error) {
	switch t {
	case CategoryExpenses:
		return DirectionDecrease, TypeExpense, nil
	case CategoryIncome:
		return DirectionIncrease, TypeIncome, nil
	case CategoryTransfer:
		return "", "", fmt.Errorf("transfer categories cannot be used for transactions")
	default:
		return "", "", fmt.Errorf("unknown category type %q", t)
	}
}

// NewCreateRequest builds a create request for the given category and
// account, deriving direction and transaction type from the category type.
func NewCreateRequest(category Category, account Account, amount float64, date, comment string) (CreateTransactionRequest, error) {
	direction, txnType, err := ClassifyCategory(category.Type)
	if err != nil {
		return CreateTransactionRequest{}, err
	}

	return CreateTransactionRequest{
		Date:       date,
		CategoryID: category.ID,
		AccountID:  account.ID,
		Direction:  direction,
		Type:       txnType,
		Amount:     amount,
		Currency:   account.Currency,
		Comment:    comment,
	}, nil
}
