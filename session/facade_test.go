package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-chain/identity"
	"delivery-chain/models"
	"delivery-chain/orders"
	"delivery-chain/session"
	"delivery-chain/storage"
)

var fixedNow = time.Date(2026, 10, 17, 8, 15, 0, 0, time.UTC)

func newFacade(t *testing.T, kv storage.KV) *session.Facade {
	t.Helper()
	n := 0
	f, err := session.New(context.Background(), kv,
		session.WithClock(func() time.Time { return fixedNow }),
		session.WithOrderOptions(orders.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("ORD-T%d", n)
		})),
	)
	require.NoError(t, err)
	return f
}

// emptyKV looks like a profile that already ran once but holds no data:
// demo fixtures are not seeded.
func emptyKV(t *testing.T) storage.KV {
	t.Helper()
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, kv, storage.KeyAccounts, []models.Account{}))
	require.NoError(t, storage.Save(ctx, kv, storage.KeyLedger, []models.LedgerEntry{}))
	return kv
}

func TestNew_SeedsDemoFixtures(t *testing.T) {
	kv := storage.NewMemory()
	f := newFacade(t, kv)

	st := f.State()
	assert.Nil(t, st.User)
	require.Len(t, st.Orders, 1)
	assert.Equal(t, session.DemoOrderID, st.Orders[0].ID)
	assert.Equal(t, 60, st.Orders[0].Progress)
	assert.Equal(t, "demo-rider", st.Orders[0].RiderID)

	require.Len(t, st.Ledger, 6)
	wantActions := []string{
		"Order Placed", "Payment Confirmed", "Order Processing",
		"Assigned to Delivery Partner", "Picked Up from Warehouse", "In Transit - Checkpoint 1",
	}
	for i, e := range st.Ledger {
		assert.Equal(t, i+1, e.ID)
		assert.Equal(t, wantActions[i], e.Action)
		assert.Equal(t, session.DemoOrderID, e.OrderID)
	}
	assert.Empty(t, st.Ledger[2].RiderID)
	assert.Equal(t, "demo-rider", st.Ledger[3].RiderID)

	users := f.Accounts()
	require.Len(t, users, 2)
	assert.Equal(t, identity.DemoAccounts()[0].User(), users[0])

	// fixtures are persisted
	var persisted []models.LedgerEntry
	found, err := storage.Load(context.Background(), kv, storage.KeyLedger, &persisted)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, st.Ledger, persisted)
}

func TestNew_SeedsOnlyOnce(t *testing.T) {
	kv := storage.NewMemory()
	f := newFacade(t, kv)
	_, err := f.Authenticate(context.Background(), "customer@demo.com", "customer123")
	require.NoError(t, err)
	_, err = f.CreateOrder(context.Background(), "demo-customer", "Demo Customer", []models.OrderItem{{Name: "Tea", Quantity: 1}})
	require.NoError(t, err)

	again := newFacade(t, kv)
	assert.Len(t, again.Orders(), 2)
	assert.Len(t, again.Ledger(), 7)
	assert.Len(t, again.Accounts(), 2)
}

func TestScenario_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, emptyKV(t))

	o, err := f.CreateOrder(ctx, "u1", "Alice", []models.OrderItem{{Name: "Tea", Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, 0, o.Progress)
	assert.Equal(t, "Order Placed", o.Status)

	entries := f.Ledger()
	require.Len(t, entries, 1)
	assert.Equal(t, "Order Created", entries[0].Action)

	got, found, err := f.UpdateOrderStatus(ctx, o.ID, "In Transit", "Hub")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 20, got.Progress)
	assert.Equal(t, "In Transit", got.Status)
	assert.Equal(t, "Hub", got.CurrentLocation)

	entries = f.Ledger()
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[1].ID)
	assert.Equal(t, "Status Updated: In Transit", entries[1].Action)
}

func TestUpdateOrderStatus_AttributedToSession(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, storage.NewMemory())

	_, err := f.Authenticate(ctx, "rider@demo.com", "rider123")
	require.NoError(t, err)

	_, found, err := f.UpdateOrderStatus(ctx, session.DemoOrderID, "Nearby", "Near destination")
	require.NoError(t, err)
	require.True(t, found)

	entries := f.Ledger()
	last := entries[len(entries)-1]
	assert.Equal(t, "demo-rider", last.RiderID)
	assert.Equal(t, 7, last.ID)

	require.NoError(t, f.EndSession(ctx))
	_, _, err = f.UpdateOrderStatus(ctx, session.DemoOrderID, "Delivered", "Customer location")
	require.NoError(t, err)
	entries = f.Ledger()
	assert.Empty(t, entries[len(entries)-1].RiderID)
}

func TestUpdateOrderStatus_UnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	f := newFacade(t, kv)

	before := f.State()
	rawOrders, err := kv.Get(ctx, storage.KeyOrders)
	require.NoError(t, err)
	rawLedger, err := kv.Get(ctx, storage.KeyLedger)
	require.NoError(t, err)

	published := 0
	cancel := f.Subscribe(func(session.State) { published++ })
	defer cancel()

	got, found, err := f.UpdateOrderStatus(ctx, "ORD-missing", "Delivered", "x")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, models.Order{}, got)
	assert.Equal(t, before, f.State())
	assert.Zero(t, published)

	afterOrders, _ := kv.Get(ctx, storage.KeyOrders)
	afterLedger, _ := kv.Get(ctx, storage.KeyLedger)
	assert.Equal(t, rawOrders, afterOrders)
	assert.Equal(t, rawLedger, afterLedger)
}

func TestRegister_DuplicateScenario(t *testing.T) {
	ctx := context.Background()
	kv := emptyKV(t)
	f := newFacade(t, kv)

	first, err := f.Register(ctx, "a@b.com", "pw", "Bob", models.RoleCustomer)
	require.NoError(t, err)

	_, err = f.Register(ctx, "a@b.com", "pw2", "Bob2", models.RoleRider)
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	users := f.Accounts()
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleCustomer, users[0].Role)

	cur, ok := f.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, first, cur)

	var persisted []models.Account
	_, err = storage.Load(ctx, kv, storage.KeyAccounts, &persisted)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "pw", persisted[0].Password)
}

func TestSession_PersistsWithoutPassword(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	f := newFacade(t, kv)

	u, err := f.Authenticate(ctx, "customer@demo.com", "customer123")
	require.NoError(t, err)

	raw, err := kv.Get(ctx, storage.KeySession)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "customer123")
	assert.NotContains(t, string(raw), "password")

	restored := newFacade(t, kv)
	cur, ok := restored.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u, cur)

	require.NoError(t, restored.EndSession(ctx))
	require.NoError(t, restored.EndSession(ctx))
	_, err = kv.Get(ctx, storage.KeySession)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, storage.NewMemory())

	_, err := f.Authenticate(ctx, "customer@demo.com", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, ok := f.CurrentUser()
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	f := newFacade(t, kv)

	_, err := f.Register(ctx, "new@demo.com", "pw", "New", models.RoleCustomer)
	require.NoError(t, err)
	o, err := f.CreateOrder(ctx, "u1", "Alice", []models.OrderItem{{Name: "Tea", Quantity: 2}, {Name: "Milk", Quantity: 1}})
	require.NoError(t, err)
	_, _, err = f.UpdateOrderStatus(ctx, o.ID, "Picked Up", "Warehouse")
	require.NoError(t, err)
	_, err = f.CreateOrder(ctx, "u1", "Alice", nil)
	require.NoError(t, err)

	before := f.State()
	reloaded := newFacade(t, kv)
	assert.Equal(t, before, reloaded.State())
}

func TestSubscribeAndAnnounce(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, emptyKV(t))

	var got []session.State
	cancel := f.Subscribe(func(st session.State) { got = append(got, st) })

	_, err := f.CreateOrder(ctx, "u1", "Alice", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Orders, 1)
	assert.Len(t, got[0].Ledger, 1)

	f.Announce()
	require.Len(t, got, 2)
	assert.Equal(t, got[0], got[1])

	cancel()
	f.Announce()
	assert.Len(t, got, 2)
}

func TestSubscriberMayCallBack(t *testing.T) {
	f := newFacade(t, emptyKV(t))

	var seen int
	cancel := f.Subscribe(func(session.State) { seen = len(f.Orders()) })
	defer cancel()

	_, err := f.CreateOrder(context.Background(), "u1", "Alice", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestConcurrentUpdatesKeepLedgerDense(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, emptyKV(t))
	o, err := f.CreateOrder(ctx, "u1", "Alice", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = f.UpdateOrderStatus(ctx, o.ID, "In Transit", "Hub")
		}()
	}
	wg.Wait()

	entries := f.Ledger()
	require.Len(t, entries, 21)
	for i, e := range entries {
		assert.Equal(t, i+1, e.ID)
	}
	got, ok := f.Order(o.ID)
	require.True(t, ok)
	assert.Equal(t, 100, got.Progress)
}

func TestOrderHistoryAndFind(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, storage.NewMemory())

	o, err := f.CreateOrder(ctx, "demo-customer", "Demo Customer", nil)
	require.NoError(t, err)

	assert.Len(t, f.OrderHistory(session.DemoOrderID), 6)
	hist := f.OrderHistory(o.ID)
	require.Len(t, hist, 1)
	assert.Equal(t, 7, hist[0].ID)

	found, ok := f.FindOrder(func(x models.Order) bool { return x.RiderID == "" })
	require.True(t, ok)
	assert.Equal(t, o.ID, found.ID)
}

type failingKV struct {
	*storage.Memory
	failSet bool
}

var errDiskFull = errors.New("disk full")

func (k *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if k.failSet {
		return errDiskFull
	}
	return k.Memory.Set(ctx, key, value)
}

func TestPersistFailure_Surfaces(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Memory: storage.NewMemory()}
	f := newFacade(t, kv)

	kv.failSet = true
	o, err := f.CreateOrder(ctx, "u1", "Alice", nil)
	assert.ErrorIs(t, err, errDiskFull)

	// the in-memory mutation stands
	_, ok := f.Order(o.ID)
	assert.True(t, ok)
}

func TestNew_LoadErrors(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(context.Background(), storage.KeyOrders, []byte("not json")))

	_, err := session.New(context.Background(), kv)
	assert.Error(t, err)
}
