package transactions

import (
	"errors"
	"sync"
	"testing"

	"github.com/azhovnerik/personal-finance-mobile/pkg/auth"
	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

type fakeBackend struct {
	mu        sync.Mutex
	listCalls []filter.Filter
	listFn    func(f filter.Filter) ([]models.Transaction, error)
	createFn  func(req models.CreateTransactionRequest) (*models.Transaction, error)
	deleteFn  func(id string) error
}

func (b *fakeBackend) ListTransactions(f filter.Filter) ([]models.Transaction, error) {
	b.mu.Lock()
	b.listCalls = append(b.listCalls, f)
	fn := b.listFn
	b.mu.Unlock()
	if fn == nil {
		return []models.Transaction{}, nil
	}
	return fn(f)
}

func (b *fakeBackend) CreateTransaction(req models.CreateTransactionRequest) (*models.Transaction, error) {
	if b.createFn == nil {
		return &models.Transaction{ID: "created"}, nil
	}
	return b.createFn(req)
}

func (b *fakeBackend) DeleteTransaction(id string) error {
	if b.deleteFn == nil {
		return nil
	}
	return b.deleteFn(id)
}

func (b *fakeBackend) listCallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listCalls)
}

func loggedInStore(t *testing.T) auth.Store {
	t.Helper()
	store := auth.NewMemoryStore()
	if err := store.SetToken("test-token"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}
	return store
}

func validRequest() models.CreateTransactionRequest {
	return models.CreateTransactionRequest{
		Date:       "2026-08-15",
		CategoryID: "cat-1",
		AccountID:  "acc-1",
		Direction:  models.DirectionDecrease,
		Type:       models.TypeExpense,
		Amount:     100,
	}
}

func TestLoadWithoutTokenSkipsBackend(t *testing.T) {
	backend := &fakeBackend{}
	expired := 0
	view := NewView(backend, auth.NewMemoryStore(), NewBus(), func() { expired++ })
	defer view.Close()

	view.Load(filter.Filter{})

	if backend.listCallCount() != 0 {
		t.Errorf("backend called %d times, expected 0", backend.listCallCount())
	}
	if view.State() != StateErrored {
		t.Errorf("state = %v, expected StateErrored", view.State())
	}
	if view.Err() != MsgSessionExpired {
		t.Errorf("Err() = %q, expected %q", view.Err(), MsgSessionExpired)
	}
	if expired != 1 {
		t.Errorf("session handler called %d times, expected 1", expired)
	}
	if len(view.Transactions()) != 0 {
		t.Errorf("got %d transactions, expected 0", len(view.Transactions()))
	}
}

func TestLoadSuccess(t *testing.T) {
	backend := &fakeBackend{
		listFn: func(f filter.Filter) ([]models.Transaction, error) {
			return []models.Transaction{{ID: "txn-1"}, {ID: "txn-2"}}, nil
		},
	}
	view := NewView(backend, loggedInStore(t), NewBus(), nil)
	defer view.Close()

	f := filter.Filter{StartDate: "2026-08-01", EndDate: "2026-08-31"}
	view.Load(f)

	if view.State() != StateLoaded {
		t.Fatalf("state = %v, expected StateLoaded", view.State())
	}
	if got := view.Transactions(); len(got) != 2 {
		t.Errorf("got %d transactions, expected 2", len(got))
	}
	if view.Filter() != f {
		t.Errorf("Filter() = %+v, expected %+v", view.Filter(), f)
	}
	if view.Err() != "" {
		t.Errorf("Err() = %q, expected empty", view.Err())
	}
}

func TestLoadFailureEmptiesList(t *testing.T) {
	loaded := []models.Transaction{{ID: "txn-1"}}
	fail := false
	backend := &fakeBackend{
		listFn: func(f filter.Filter) ([]models.Transaction, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return loaded, nil
		},
	}
	view := NewView(backend, loggedInStore(t), NewBus(), nil)
	defer view.Close()

	view.Load(filter.Filter{})
	if len(view.Transactions()) != 1 {
		t.Fatalf("got %d transactions, expected 1", len(view.Transactions()))
	}

	fail = true
	view.Load(filter.Filter{})

	if view.State() != StateErrored {
		t.Errorf("state = %v, expected StateErrored", view.State())
	}
	if view.Err() != MsgLoadFailed {
		t.Errorf("Err() = %q, expected %q", view.Err(), MsgLoadFailed)
	}
	// Failure must not leave the previous list visible.
	if len(view.Transactions()) != 0 {
		t.Errorf("got %d transactions after failure, expected 0", len(view.Transactions()))
	}
}

func TestLoadSessionExpiredFromBackend(t *testing.T) {
	backend := &fakeBackend{
		listFn: func(f filter.Filter) ([]models.Transaction, error) {
			return nil, models.ErrSessionExpired
		},
	}
	expired := 0
	view := NewView(backend, loggedInStore(t), NewBus(), func() { expired++ })
	defer view.Close()

	view.Load(filter.Filter{})

	if view.Err() != MsgSessionExpired {
		t.Errorf("Err() = %q, expected %q", view.Err(), MsgSessionExpired)
	}
	if expired != 1 {
		t.Errorf("session handler called %d times, expected 1", expired)
	}
}

func TestStaleLoadDoesNotOverwriteNewer(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	backend := &fakeBackend{}
	backend.listFn = func(f filter.Filter) ([]models.Transaction, error) {
		if f.AccountID == "slow" {
			close(started)
			<-release
			return []models.Transaction{{ID: "stale"}}, nil
		}
		return []models.Transaction{{ID: "fresh"}}, nil
	}

	view := NewView(backend, loggedInStore(t), NewBus(), nil)
	defer view.Close()

	done := make(chan struct{})
	go func() {
		view.Load(filter.Filter{AccountID: "slow"})
		close(done)
	}()

	// Wait until the slow load is in flight, then supersede it.
	<-started
	view.Load(filter.Filter{AccountID: "fast"})

	close(release)
	<-done

	got := view.Transactions()
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Errorf("visible list = %v, expected the fresh result", got)
	}
	if view.Filter().AccountID != "fast" {
		t.Errorf("applied filter = %q, expected fast", view.Filter().AccountID)
	}
}

func TestCreatePublishesExactlyOnce(t *testing.T) {
	backend := &fakeBackend{}
	bus := NewBus()
	view := NewView(backend, loggedInStore(t), bus, nil)
	defer view.Close()

	notifications := 0
	unsubscribe := bus.Subscribe(func(struct{}) { notifications++ })
	defer unsubscribe()

	result := view.Create(validRequest(), nil)

	if !result.Success {
		t.Fatalf("Create() failed: %s", result.Err)
	}
	if notifications != 1 {
		t.Errorf("got %d change notifications, expected 1", notifications)
	}
	// The creating view reloads its own filter exactly once; its own bus
	// subscription must not trigger a second reload.
	if backend.listCallCount() != 1 {
		t.Errorf("creating view refreshed %d times, expected 1", backend.listCallCount())
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateTransactionRequest)
	}{
		{"missing category", func(r *models.CreateTransactionRequest) { r.CategoryID = "" }},
		{"missing account", func(r *models.CreateTransactionRequest) { r.AccountID = "" }},
		{"missing date", func(r *models.CreateTransactionRequest) { r.Date = "" }},
		{"zero amount", func(r *models.CreateTransactionRequest) { r.Amount = 0 }},
		{"negative amount", func(r *models.CreateTransactionRequest) { r.Amount = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{
				createFn: func(models.CreateTransactionRequest) (*models.Transaction, error) {
					t.Error("backend reached despite invalid request")
					return nil, nil
				},
			}
			bus := NewBus()
			view := NewView(backend, loggedInStore(t), bus, nil)
			defer view.Close()

			notifications := 0
			bus.Subscribe(func(struct{}) { notifications++ })

			req := validRequest()
			tt.mutate(&req)
			result := view.Create(req, nil)

			if result.Success {
				t.Error("Create() succeeded, expected validation failure")
			}
			if result.Err == "" {
				t.Error("validation failure carries no message")
			}
			if notifications != 0 {
				t.Errorf("got %d notifications on failure, expected 0", notifications)
			}
		})
	}
}

func TestCreateDirectionMustMatchCategory(t *testing.T) {
	view := NewView(&fakeBackend{}, loggedInStore(t), NewBus(), nil)
	defer view.Close()

	req := validRequest()
	req.Direction = models.DirectionIncrease
	req.Type = models.TypeIncome
	opts := &CreateOptions{Category: &models.Category{ID: "cat-1", Type: models.CategoryExpenses}}

	if result := view.Create(req, opts); result.Success {
		t.Error("Create() succeeded with a direction contradicting the category type")
	}
}

func TestCreateSurfacesBackendMessage(t *testing.T) {
	backend := &fakeBackend{
		createFn: func(models.CreateTransactionRequest) (*models.Transaction, error) {
			return nil, &models.APIError{Status: 400, Message: "Unknown category or account"}
		},
	}
	bus := NewBus()
	view := NewView(backend, loggedInStore(t), bus, nil)
	defer view.Close()

	notifications := 0
	bus.Subscribe(func(struct{}) { notifications++ })

	result := view.Create(validRequest(), nil)

	if result.Success {
		t.Fatal("Create() succeeded, expected failure")
	}
	if result.Err != "Unknown category or account" {
		t.Errorf("Err = %q, expected the backend message", result.Err)
	}
	if notifications != 0 {
		t.Errorf("got %d notifications on failure, expected 0", notifications)
	}
}

func TestCreateGenericFailureMessage(t *testing.T) {
	backend := &fakeBackend{
		createFn: func(models.CreateTransactionRequest) (*models.Transaction, error) {
			return nil, errors.New("connection refused")
		},
	}
	view := NewView(backend, loggedInStore(t), NewBus(), nil)
	defer view.Close()

	result := view.Create(validRequest(), nil)
	if result.Err != MsgCreateFailed {
		t.Errorf("Err = %q, expected %q", result.Err, MsgCreateFailed)
	}
}

func TestDeleteRemovesLocallyAndNotifies(t *testing.T) {
	backend := &fakeBackend{
		listFn: func(f filter.Filter) ([]models.Transaction, error) {
			return []models.Transaction{{ID: "txn-1"}, {ID: "txn-2"}}, nil
		},
	}
	bus := NewBus()
	view := NewView(backend, loggedInStore(t), bus, nil)
	defer view.Close()
	view.Load(filter.Filter{})

	notifications := 0
	bus.Subscribe(func(struct{}) { notifications++ })

	if err := view.Delete("txn-1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	// The backend above still lists txn-1; the optimistic removal must not
	// be undone by the view refetching on its own notification.
	for _, txn := range view.Transactions() {
		if txn.ID == "txn-1" {
			t.Error("txn-1 still visible after delete")
		}
	}
	if notifications != 1 {
		t.Errorf("got %d notifications, expected 1", notifications)
	}
	if backend.listCallCount() != 1 {
		t.Errorf("deleting view refetched, %d list calls, expected 1", backend.listCallCount())
	}
}

func TestDeleteFailureKeepsRecordVisible(t *testing.T) {
	backend := &fakeBackend{
		listFn: func(f filter.Filter) ([]models.Transaction, error) {
			return []models.Transaction{{ID: "txn-1"}}, nil
		},
		deleteFn: func(id string) error {
			return errors.New("boom")
		},
	}
	bus := NewBus()
	view := NewView(backend, loggedInStore(t), bus, nil)
	defer view.Close()
	view.Load(filter.Filter{})

	notifications := 0
	bus.Subscribe(func(struct{}) { notifications++ })

	err := view.Delete("txn-1")
	if err == nil {
		t.Fatal("Delete() succeeded, expected failure")
	}
	if err.Error() != MsgDeleteFailed {
		t.Errorf("error = %q, expected %q", err, MsgDeleteFailed)
	}
	if len(view.Transactions()) != 1 {
		t.Error("record vanished despite backend failure")
	}
	if notifications != 0 {
		t.Errorf("got %d notifications on failure, expected 0", notifications)
	}
}

func TestChangeNotificationRefreshesOtherViews(t *testing.T) {
	repo := newListBackend()
	bus := NewBus()
	tokens := loggedInStore(t)

	creator := NewView(repo, tokens, bus, nil)
	defer creator.Close()
	observer := NewView(repo, tokens, bus, nil)
	defer observer.Close()

	observer.Load(filter.Filter{})
	if len(observer.Transactions()) != 0 {
		t.Fatalf("observer sees %d transactions, expected 0", len(observer.Transactions()))
	}

	if result := creator.Create(validRequest(), nil); !result.Success {
		t.Fatalf("Create() failed: %s", result.Err)
	}

	// The bus delivery is synchronous, so the observer has refetched.
	if len(observer.Transactions()) != 1 {
		t.Errorf("observer sees %d transactions after create, expected 1", len(observer.Transactions()))
	}
}

func TestCloseStopsRefreshes(t *testing.T) {
	backend := &fakeBackend{}
	bus := NewBus()
	view := NewView(backend, loggedInStore(t), bus, nil)

	view.Close()
	bus.Publish(struct{}{})

	if backend.listCallCount() != 0 {
		t.Errorf("closed view refreshed %d times, expected 0", backend.listCallCount())
	}
}

// listBackend is a minimal shared store so two views observe the same data.
type listBackend struct {
	mu    sync.Mutex
	items []models.Transaction
}

func newListBackend() *listBackend {
	return &listBackend{}
}

func (b *listBackend) ListTransactions(f filter.Filter) ([]models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return f.Apply(b.items), nil
}

func (b *listBackend) CreateTransaction(req models.CreateTransactionRequest) (*models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	txn := models.Transaction{ID: "txn-new", Date: req.Date, Amount: req.Amount}
	b.items = append([]models.Transaction{txn}, b.items...)
	return &txn, nil
}

func (b *listBackend) DeleteTransaction(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, txn := range b.items {
		if txn.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}
