package controllers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"manufacturer/auth"
	"manufacturer/models"
	"manufacturer/routes"
	"manufacturer/services"
	"manufacturer/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router   *gin.Engine
	tokens   *auth.Manager
	users    *fakeUserStore
	orders   *fakeOrderStore
	payments *fakePaymentStore
	products *fakeProductStore
	gateway  *fakeGateway
}

func newTestApp() *testApp {
	app := &testApp{
		tokens:   auth.NewManager("test-secret"),
		users:    &fakeUserStore{users: map[string]*models.User{}},
		orders:   &fakeOrderStore{},
		payments: &fakePaymentStore{},
		products: &fakeProductStore{},
		gateway:  &fakeGateway{secret: "pi_test_secret"},
	}

	app.router = gin.New()
	routes.Register(app.router, routes.Deps{
		Tokens:   app.tokens,
		Users:    services.NewUserService(app.users, app.tokens),
		Orders:   services.NewOrderService(app.orders, app.payments),
		Payments: services.NewPaymentService(app.gateway),
		Products: app.products,
	})
	return app
}

func (a *testApp) request(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func (a *testApp) tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := a.tokens.Issue(email)
	require.NoError(t, err)
	return token
}

func (a *testApp) addUser(email string, role models.Role) {
	a.users.users[email] = &models.User{ID: primitive.NewObjectID(), Email: email, Role: role}
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

// ---- fakes ----

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) Upsert(_ context.Context, email string, profile models.UserProfile) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		user = &models.User{ID: primitive.NewObjectID(), Email: email, Role: models.RoleRegular}
		f.users[email] = user
	}
	if profile.Name != "" {
		user.Name = profile.Name
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) SetRole(_ context.Context, email string, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		user = &models.User{ID: primitive.NewObjectID(), Email: email}
		f.users[email] = user
	}
	user.Role = role
	return nil
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.User{}
	for _, u := range f.users {
		result = append(result, *u)
	}
	return result, nil
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders []*models.Order
}

func (f *fakeOrderStore) FindByKey(_ context.Context, key models.OrderKey) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.OrderKey == key {
			copied := *o
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			copied := *o
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.OrderKey == order.OrderKey {
			return store.ErrDuplicate
		}
	}
	copied := *order
	f.orders = append(f.orders, &copied)
	return nil
}

func (f *fakeOrderStore) FindByBuyer(_ context.Context, email string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.Order{}
	for _, o := range f.orders {
		if o.BuyerEmail == email {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeOrderStore) MarkPaid(_ context.Context, id primitive.ObjectID, transactionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.Paid = true
			o.TransactionID = transactionID
			return nil
		}
	}
	return store.ErrNotFound
}

type fakePaymentStore struct {
	mu      sync.Mutex
	records []*models.PaymentRecord
}

func (f *fakePaymentStore) Insert(_ context.Context, record *models.PaymentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.TransactionID == record.TransactionID {
			return store.ErrDuplicate
		}
	}
	copied := *record
	f.records = append(f.records, &copied)
	return nil
}

func (f *fakePaymentStore) FindByTransactionID(_ context.Context, transactionID string) (*models.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.TransactionID == transactionID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeProductStore struct {
	mu       sync.Mutex
	products []*models.Product
}

func (f *fakeProductStore) Insert(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *product
	f.products = append(f.products, &copied)
	return nil
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductStore) List(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.Product{}
	for _, p := range f.products {
		result = append(result, *p)
	}
	return result, nil
}

func (f *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeGateway struct {
	secret string
	err    error
	calls  int
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string, idempotencyKey string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.secret, nil
}
