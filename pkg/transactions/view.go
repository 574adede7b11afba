// Package transactions implements the client-side view state over the
// transaction list: loading honoring a filter, create and delete with local
// reconciliation, and cross-view change notification.
package transactions

import (
	"errors"
	"sync"

	"github.com/azhovnerik/personal-finance-mobile/pkg/auth"
	"github.com/azhovnerik/personal-finance-mobile/pkg/events"
	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// Backend is the data source a view reads from and writes to: the remote API
// client or the in-memory mock repository.
type Backend interface {
	ListTransactions(f filter.Filter) ([]models.Transaction, error)
	CreateTransaction(req models.CreateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(id string) error
}

// Bus signals "the transaction set changed" to every mounted view.
type Bus = events.Emitter[struct{}]

// NewBus creates a change-notification bus. One bus is shared per session.
func NewBus() *Bus {
	return events.New[struct{}]()
}

// SessionHandler is invoked when the stored credential is missing or was
// rejected; the caller routes the user back to its login entry point.
type SessionHandler func()

// State is the lifecycle of a view's visible list.
type State int

// View states. Loaded and Errored hold until the next load is triggered by a
// filter change or a change notification.
const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

// User-visible failure messages.
const (
	MsgSessionExpired = "Session expired. Please sign in again."
	MsgLoadFailed     = "Failed to load transactions."
	MsgCreateFailed   = "Failed to create transaction."
	MsgDeleteFailed   = "Failed to delete transaction."
)

// CreateResult reports the outcome of a create attempt back to the form. On
// failure the form stays open and shows Err; the visible list is unchanged.
type CreateResult struct {
	Success bool
	Err     string
}

// CreateOptions carries references the caller already resolved; the create
// form knows the picked category and account. When the category is present
// its type is checked against the request's direction.
type CreateOptions struct {
	Category *models.Category
	Account  *models.Account
}

// View owns the transaction list shown by one screen. It subscribes to the
// shared bus on construction and refetches its applied filter whenever any
// view publishes a change.
type View struct {
	backend   Backend
	tokens    auth.Store
	bus       *Bus
	onExpired SessionHandler

	unsubscribe func()

	mu         sync.Mutex
	gen        uint64
	state      State
	applied    filter.Filter
	items      []models.Transaction
	errMsg     string
	publishing bool
}

// NewView creates a view over the given backend. onExpired may be nil.
func NewView(backend Backend, tokens auth.Store, bus *Bus, onExpired SessionHandler) *View {
	v := &View{
		backend:   backend,
		tokens:    tokens,
		bus:       bus,
		onExpired: onExpired,
		state:     StateIdle,
	}
	v.unsubscribe = bus.Subscribe(func(struct{}) {
		// Notifications the view published itself are skipped: its local
		// state already reflects the change, and a refetch here would undo
		// an optimistic removal.
		v.mu.Lock()
		own := v.publishing
		v.mu.Unlock()
		if own {
			return
		}
		v.Refresh()
	})
	return v
}

// Close removes the view's bus subscription.
func (v *View) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

// Load fetches the transaction list for f, which becomes the view's applied
// filter. The result replaces the previous list wholesale; on failure the
// list is emptied rather than left stale. Loads may overlap: each one is
// tagged with a generation, and only the latest generation may publish its
// outcome, so a slow stale response never overwrites a newer one.
func (v *View) Load(f filter.Filter) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.applied = f
	v.state = StateLoading
	v.errMsg = ""
	v.mu.Unlock()

	token, err := v.tokens.Token()
	if err != nil || token == "" {
		// No credential: surface session expiry without touching the network.
		v.finish(gen, StateErrored, nil, MsgSessionExpired)
		v.sessionExpired()
		return
	}

	items, err := v.backend.ListTransactions(f)
	switch {
	case errors.Is(err, models.ErrSessionExpired):
		v.finish(gen, StateErrored, nil, MsgSessionExpired)
		v.sessionExpired()
	case err != nil:
		v.finish(gen, StateErrored, nil, MsgLoadFailed)
	default:
		v.finish(gen, StateLoaded, items, "")
	}
}

// Refresh reloads the currently applied filter.
func (v *View) Refresh() {
	v.Load(v.Filter())
}

// Create validates and submits a new transaction. On success the view
// reloads its applied filter (so server-computed fields are reflected) and
// publishes exactly one change notification; on failure a structured result
// is returned and the visible list stays untouched.
func (v *View) Create(req models.CreateTransactionRequest, opts *CreateOptions) CreateResult {
	if msg := validateCreate(req, opts); msg != "" {
		return CreateResult{Err: msg}
	}

	token, err := v.tokens.Token()
	if err != nil || token == "" {
		v.sessionExpired()
		return CreateResult{Err: MsgSessionExpired}
	}

	if _, err := v.backend.CreateTransaction(req); err != nil {
		if errors.Is(err, models.ErrSessionExpired) {
			v.sessionExpired()
			return CreateResult{Err: MsgSessionExpired}
		}
		return CreateResult{Err: messageOrDefault(err, MsgCreateFailed)}
	}

	v.Refresh()
	v.publish()
	return CreateResult{Success: true}
}

// Delete removes a transaction. The visible list is only touched after the
// backend confirms the removal; a failure leaves the record shown.
func (v *View) Delete(id string) error {
	token, err := v.tokens.Token()
	if err != nil || token == "" {
		v.sessionExpired()
		return errors.New(MsgSessionExpired)
	}

	if err := v.backend.DeleteTransaction(id); err != nil {
		if errors.Is(err, models.ErrSessionExpired) {
			v.sessionExpired()
			return errors.New(MsgSessionExpired)
		}
		return errors.New(messageOrDefault(err, MsgDeleteFailed))
	}

	v.mu.Lock()
	kept := v.items[:0:0]
	for _, txn := range v.items {
		if txn.ID != id {
			kept = append(kept, txn)
		}
	}
	v.items = kept
	v.mu.Unlock()

	v.publish()
	return nil
}

// State returns the view's lifecycle state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Transactions returns a copy of the visible list.
func (v *View) Transactions() []models.Transaction {
	v.mu.Lock()
	defer v.mu.Unlock()
	items := make([]models.Transaction, len(v.items))
	copy(items, v.items)
	return items
}

// Err returns the visible error message, empty when there is none.
func (v *View) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// Filter returns the currently applied filter.
func (v *View) Filter() filter.Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.applied
}

// finish publishes a load outcome unless a newer load superseded it.
func (v *View) finish(gen uint64, state State, items []models.Transaction, errMsg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return
	}
	if items == nil {
		items = []models.Transaction{}
	}
	v.state = state
	v.items = items
	v.errMsg = errMsg
}

// publish notifies the bus while flagging the delivery as self-originated,
// so the view's own subscription does not refetch. Delivery is synchronous,
// so the flag is cleared before publish returns.
func (v *View) publish() {
	v.mu.Lock()
	v.publishing = true
	v.mu.Unlock()

	v.bus.Publish(struct{}{})

	v.mu.Lock()
	v.publishing = false
	v.mu.Unlock()
}

func (v *View) sessionExpired() {
	if v.onExpired != nil {
		v.onExpired()
	}
}

// validateCreate enforces the client-side preconditions before anything is
// sent: required references, a strictly positive amount, and a direction
// consistent with the category's type when the category is known.
func validateCreate(req models.CreateTransactionRequest, opts *CreateOptions) string {
	if req.CategoryID == "" {
		return "category is required"
	}
	if req.AccountID == "" {
		return "account is required"
	}
	if req.Date == "" {
		return "date is required"
	}
	if req.Amount <= 0 {
		return "amount must be positive"
	}
	if opts != nil && opts.Category != nil {
		direction, txnType, err := models.ClassifyCategory(opts.Category.Type)
		if err != nil {
			return err.Error()
		}
		if req.Direction != direction || req.Type != txnType {
			return "direction does not match the category type"
		}
	}
	return ""
}

// messageOrDefault prefers the backend's error-envelope message over the
// generic fallback.
func messageOrDefault(err error, fallback string) string {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
