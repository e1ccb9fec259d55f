package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"manufacturer/models"
	"manufacturer/store"
)

// In-memory stores used by the service tests. They enforce the same
// uniqueness rules as the Mongo indexes.

type memOrderStore struct {
	mu     sync.Mutex
	orders []*models.Order

	// markPaidFailures makes the next N MarkPaid calls fail, to exercise
	// the reconciler's retry.
	markPaidFailures int
	markPaidErr      error
	markPaidCalls    int
}

func (m *memOrderStore) FindByKey(_ context.Context, key models.OrderKey) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderKey == key {
			copied := *o
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			copied := *o
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memOrderStore) Insert(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderKey == order.OrderKey {
			return store.ErrDuplicate
		}
	}
	copied := *order
	m.orders = append(m.orders, &copied)
	return nil
}

func (m *memOrderStore) FindByBuyer(_ context.Context, email string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.Order{}
	for _, o := range m.orders {
		if o.BuyerEmail == email {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *memOrderStore) MarkPaid(_ context.Context, id primitive.ObjectID, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markPaidCalls++
	if m.markPaidFailures > 0 {
		m.markPaidFailures--
		return m.markPaidErr
	}
	for _, o := range m.orders {
		if o.ID == id {
			o.Paid = true
			o.TransactionID = transactionID
			return nil
		}
	}
	return store.ErrNotFound
}

type memPaymentStore struct {
	mu      sync.Mutex
	records []*models.PaymentRecord
	failErr error
}

func (m *memPaymentStore) Insert(_ context.Context, record *models.PaymentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	for _, r := range m.records {
		if r.TransactionID == record.TransactionID {
			return store.ErrDuplicate
		}
	}
	copied := *record
	m.records = append(m.records, &copied)
	return nil
}

func (m *memPaymentStore) FindByTransactionID(_ context.Context, transactionID string) (*models.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.TransactionID == transactionID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*models.User{}}
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memUserStore) Upsert(_ context.Context, email string, profile models.UserProfile) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		user = &models.User{ID: primitive.NewObjectID(), Email: email, Role: models.RoleRegular}
		m.users[email] = user
	}
	if profile.Name != "" {
		user.Name = profile.Name
	}
	copied := *user
	return &copied, nil
}

func (m *memUserStore) SetRole(_ context.Context, email string, role models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		user = &models.User{ID: primitive.NewObjectID(), Email: email}
		m.users[email] = user
	}
	user.Role = role
	return nil
}

func (m *memUserStore) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.User{}
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

type fakeGateway struct {
	secret string
	err    error

	gotAmount   int64
	gotCurrency string
	gotKeys     []string
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string, idempotencyKey string) (string, error) {
	g.gotAmount = amount
	g.gotCurrency = currency
	g.gotKeys = append(g.gotKeys, idempotencyKey)
	if g.err != nil {
		return "", g.err
	}
	return g.secret, nil
}
