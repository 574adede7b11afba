// Package filter defines the query parameters of a transaction list view and
// the matching in-process predicate, so the remote backend and the mock
// repository filter with identical semantics.
package filter

import (
	"net/url"
	"time"

	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

// TypeAll is the sentinel meaning "do not filter by transaction type".
const TypeAll = models.TransactionType("ALL")

// Filter is an immutable value describing which subset of transactions a view
// wants. Empty fields mean "unconstrained" on that dimension; date bounds are
// inclusive, at calendar-day granularity.
type Filter struct {
	StartDate string
	EndDate   string
	AccountID string
	Type      models.TransactionType
}

// Default returns the filter a fresh transactions view starts with: the first
// day of the current month through today, all types, all accounts. Dates are
// rendered in now's time zone so the boundary does not shift around midnight.
func Default(now time.Time) Filter {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Filter{
		StartDate: start.Format(DateLayout),
		EndDate:   now.Format(DateLayout),
		Type:      TypeAll,
	}
}

// Query encodes the filter as request query parameters. Unset fields are
// omitted entirely, never sent as empty strings: the backend treats parameter
// presence as a constraint. The ALL type sentinel is likewise omitted.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.AccountID != "" {
		q.Set("accountId", f.AccountID)
	}
	if f.Type != "" && f.Type != TypeAll {
		q.Set("type", string(f.Type))
	}
	return q
}

// Matches reports whether a transaction satisfies every set dimension of the
// filter. The transaction's calendar day must lie within [StartDate, EndDate].
func (f Filter) Matches(t models.Transaction) bool {
	day := datePart(t.Date)
	if f.StartDate != "" && day < f.StartDate {
		return false
	}
	if f.EndDate != "" && day > f.EndDate {
		return false
	}
	if f.AccountID != "" && t.Account.ID != f.AccountID {
		return false
	}
	if f.Type != "" && f.Type != TypeAll && t.Type != f.Type {
		return false
	}
	return true
}

// Apply returns the transactions from list that match the filter, preserving
// order.
func (f Filter) Apply(list []models.Transaction) []models.Transaction {
	result := make([]models.Transaction, 0, len(list))
	for _, t := range list {
		if f.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}

// datePart truncates a timestamp to its calendar day. ISO dates compare
// correctly as strings, so no parsing is needed.
func datePart(value string) string {
	if len(value) > len(DateLayout) {
		return value[:len(DateLayout)]
	}
	return value
}
