// Package session is the single entry point to delivery state. The Facade
// owns the accounts, the session, the orders and the ledger, is the only
// writer to storage and republishes the combined state to subscribers after
// every change.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"delivery-chain/identity"
	"delivery-chain/ledger"
	"delivery-chain/logger"
	"delivery-chain/models"
	"delivery-chain/orders"
	"delivery-chain/storage"
)

// State is what subscribers see.
type State struct {
	User   *models.User         `json:"user"`
	Orders []models.Order       `json:"orders"`
	Ledger []models.LedgerEntry `json:"blockchain"`
}

type Facade struct {
	mu       sync.Mutex
	kv       storage.KV
	log      *logger.Logger
	identity *identity.Store
	ledger   *ledger.Ledger
	orders   *orders.Store

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int

	now          func() time.Time
	ledgerOpts   []ledger.Option
	orderOpts    []orders.Option
	identityOpts []identity.Option
}

type Option func(*Facade)

func WithLogger(l *logger.Logger) Option {
	return func(f *Facade) { f.log = l }
}

// WithClock sets the time source for new orders, ledger entries and the
// first-run fixtures.
func WithClock(now func() time.Time) Option {
	return func(f *Facade) { f.now = now }
}

func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(f *Facade) { f.ledgerOpts = append(f.ledgerOpts, opts...) }
}

func WithOrderOptions(opts ...orders.Option) Option {
	return func(f *Facade) { f.orderOpts = append(f.orderOpts, opts...) }
}

func WithIdentityOptions(opts ...identity.Option) Option {
	return func(f *Facade) { f.identityOpts = append(f.identityOpts, opts...) }
}

// New loads persisted state from kv. On a first run it seeds the demo
// accounts (no "users" blob) and the demo order with its ledger history
// (no "blockchain" blob).
func New(ctx context.Context, kv storage.KV, opts ...Option) (*Facade, error) {
	f := &Facade{
		kv:   kv,
		log:  logger.Nop(),
		subs: make(map[int]func(State)),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.load(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Facade) load(ctx context.Context) error {
	var current *models.User
	if _, err := storage.Load(ctx, f.kv, storage.KeySession, &current); err != nil {
		return err
	}

	var accounts []models.Account
	found, err := storage.Load(ctx, f.kv, storage.KeyAccounts, &accounts)
	if err != nil {
		return err
	}
	if !found {
		accounts = identity.DemoAccounts()
		if err := storage.Save(ctx, f.kv, storage.KeyAccounts, accounts); err != nil {
			return err
		}
		f.log.Info().Int("accounts", len(accounts)).Msg("seeded demo accounts")
	}
	f.identity = identity.NewStore(accounts, current, f.identityOpts...)

	var orderList []models.Order
	if _, err := storage.Load(ctx, f.kv, storage.KeyOrders, &orderList); err != nil {
		return err
	}

	var entries []models.LedgerEntry
	found, err = storage.Load(ctx, f.kv, storage.KeyLedger, &entries)
	if err != nil {
		return err
	}

	ledgerOpts := append([]ledger.Option{ledger.WithClock(f.now)}, f.ledgerOpts...)
	orderOpts := append([]orders.Option{orders.WithClock(f.now)}, f.orderOpts...)

	if found {
		f.ledger = ledger.New(entries, ledgerOpts...)
		f.orders = orders.NewStore(orderList, f.ledger, orderOpts...)
		f.log.Info().
			Int("orders", len(orderList)).
			Int("entries", len(entries)).
			Bool("session", current != nil).
			Msg("state loaded")
		return nil
	}

	// First run: the demo order replaces whatever orders blob exists.
	f.ledger = ledger.New(nil, ledgerOpts...)
	seedDemoLedger(f.ledger)
	f.orders = orders.NewStore([]models.Order{demoOrder(f.now())}, f.ledger, orderOpts...)
	if err := f.persist(ctx, storage.KeyOrders, storage.KeyLedger); err != nil {
		return err
	}
	f.log.Info().Str("order", DemoOrderID).Int("entries", f.ledger.Len()).Msg("seeded demo ledger")
	return nil
}

// persist writes the named blobs from in-memory state. Callers hold f.mu or
// are still constructing f.
func (f *Facade) persist(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		var err error
		switch key {
		case storage.KeySession:
			if u, ok := f.identity.Current(); ok {
				err = storage.Save(ctx, f.kv, key, u)
			} else {
				err = f.kv.Remove(ctx, key)
			}
		case storage.KeyAccounts:
			err = storage.Save(ctx, f.kv, key, f.identity.Snapshot())
		case storage.KeyOrders:
			err = storage.Save(ctx, f.kv, key, f.orders.All())
		case storage.KeyLedger:
			err = storage.Save(ctx, f.kv, key, f.ledger.All())
		default:
			err = fmt.Errorf("session: unknown key %q", key)
		}
		if err != nil {
			f.log.Error().Err(err).Str("key", key).Msg("persist failed")
			return fmt.Errorf("session: persist %s: %w", key, err)
		}
	}
	return nil
}

func (f *Facade) stateLocked() State {
	st := State{
		Orders: f.orders.All(),
		Ledger: f.ledger.All(),
	}
	if u, ok := f.identity.Current(); ok {
		st.User = &u
	}
	return st
}

// State returns a copy of everything subscribers see.
func (f *Facade) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *Facade) CurrentUser() (models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.identity.Current()
}

func (f *Facade) Orders() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders.All()
}

func (f *Facade) Order(orderID string) (models.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders.Get(orderID)
}

func (f *Facade) FindOrder(pred func(models.Order) bool) (models.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders.Find(pred)
}

func (f *Facade) Ledger() []models.LedgerEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledger.All()
}

// OrderHistory returns the ledger entries recorded for one order.
func (f *Facade) OrderHistory(orderID string) []models.LedgerEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledger.ForOrder(orderID)
}

// Accounts lists registered accounts without passwords.
func (f *Facade) Accounts() []models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.identity.Accounts()
}

// Authenticate opens a session for an exact email and password match.
func (f *Facade) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	f.mu.Lock()
	u, err := f.identity.Authenticate(email, password)
	if err != nil {
		f.mu.Unlock()
		return models.User{}, err
	}
	err = f.persist(ctx, storage.KeySession)
	st := f.stateLocked()
	f.mu.Unlock()

	f.publish(st)
	return u, err
}

// Register creates an account and opens a session for it.
func (f *Facade) Register(ctx context.Context, email, password, name string, role models.UserRole) (models.User, error) {
	f.mu.Lock()
	u, err := f.identity.Register(email, password, name, role)
	if err != nil {
		f.mu.Unlock()
		return models.User{}, err
	}
	err = f.persist(ctx, storage.KeyAccounts, storage.KeySession)
	st := f.stateLocked()
	f.mu.Unlock()

	f.publish(st)
	return u, err
}

// EndSession clears the session, persisted copy included.
func (f *Facade) EndSession(ctx context.Context) error {
	f.mu.Lock()
	f.identity.EndSession()
	err := f.persist(ctx, storage.KeySession)
	st := f.stateLocked()
	f.mu.Unlock()

	f.publish(st)
	return err
}

// CreateOrder places an order and logs it. Items are not validated here.
func (f *Facade) CreateOrder(ctx context.Context, customerID, customerName string, items []models.OrderItem) (models.Order, error) {
	f.mu.Lock()
	o := f.orders.Create(customerID, customerName, items)
	err := f.persist(ctx, storage.KeyOrders, storage.KeyLedger)
	st := f.stateLocked()
	f.mu.Unlock()

	f.log.Debug().Str("order", o.ID).Str("customer", customerID).Int("items", len(items)).Msg("order created")
	f.publish(st)
	return o, err
}

// UpdateOrderStatus relabels and advances an order on behalf of the session
// account. An unknown order id is a silent no-op: found is false and
// nothing is persisted or published.
func (f *Facade) UpdateOrderStatus(ctx context.Context, orderID, status, location string) (order models.Order, found bool, err error) {
	f.mu.Lock()
	var actorID string
	if u, ok := f.identity.Current(); ok {
		actorID = u.ID
	}
	order, found = f.orders.UpdateStatus(orderID, status, location, actorID)
	if !found {
		f.mu.Unlock()
		return models.Order{}, false, nil
	}
	err = f.persist(ctx, storage.KeyOrders, storage.KeyLedger)
	st := f.stateLocked()
	f.mu.Unlock()

	f.log.Debug().Str("order", orderID).Str("status", status).Int("progress", order.Progress).Msg("order updated")
	f.publish(st)
	return order, true, err
}

// Subscribe registers fn to receive the state after every change and every
// Announce. fn runs on the caller's goroutine and must not block.
func (f *Facade) Subscribe(fn func(State)) (cancel func()) {
	f.subMu.Lock()
	defer f.subMu.Unlock()

	key := f.nextSub
	f.nextSub++
	f.subs[key] = fn

	return func() {
		f.subMu.Lock()
		defer f.subMu.Unlock()
		delete(f.subs, key)
	}
}

// Announce republishes the current in-memory state without changing it.
func (f *Facade) Announce() {
	f.publish(f.State())
}

func (f *Facade) publish(st State) {
	f.subMu.Lock()
	fns := make([]func(State), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
