package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jabRental/business/rental"
	"jabRental/business/session"
	"jabRental/domain"
	"jabRental/internal/middleware"
	"jabRental/internal/repository/memory"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type passwordAuth struct{ password string }

func (a passwordAuth) Authenticate(_ string, password string) bool {
	return password == a.password
}

type productFinderMock struct {
	products map[string]domain.RentalProduct
}

func (m *productFinderMock) GetProductByID(ctx context.Context, id string) (*domain.RentalProduct, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

type historyMock struct {
	findFn func(ctx context.Context, userID string) ([]domain.RentalOrder, error)
}

func (m *historyMock) FindByUser(ctx context.Context, userID string) ([]domain.RentalOrder, error) {
	return m.findFn(ctx, userID)
}

type verifierMock struct {
	sent []string
}

func (m *verifierMock) SendVerification(ctx context.Context, sessionID string, user domain.User) error {
	m.sent = append(m.sent, user.Email)
	return nil
}

type testServer struct {
	e        *echo.Echo
	manager  *session.Manager
	history  *historyMock
	verifier *verifierMock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	manager := session.NewManager(memory.NewSessionRepository(), func() *rental.Store {
		return rental.NewStore(rental.Options{
			Authenticator:     passwordAuth{password: "password"},
			StrictTransitions: true,
		})
	}, "test-secret", time.Hour)

	products := &productFinderMock{products: map[string]domain.RentalProduct{
		"kb":    {ID: "kb", Name: "Keyboard", DailyPrice: 15, WeeklyPrice: 80, MonthlyPrice: 280, Availability: domain.AvailabilityAvailable},
		"mouse": {ID: "mouse", Name: "Mouse", DailyPrice: 12, WeeklyPrice: 65, MonthlyPrice: 220, Availability: domain.AvailabilityLimited},
		"gone":  {ID: "gone", Name: "Gone", MonthlyPrice: 100, Availability: domain.AvailabilityUnavailable},
	}}
	history := &historyMock{findFn: func(ctx context.Context, userID string) ([]domain.RentalOrder, error) {
		return []domain.RentalOrder{{ID: "order_1", UserID: userID}}, nil
	}}
	verifier := &verifierMock{}

	h := NewRentalHandler(manager, products, history, verifier)
	sh := NewSessionHandler(manager)

	e := echo.New()
	e.POST("/sessions", sh.Open)
	g := e.Group("", middleware.SessionMiddleware(manager))
	g.DELETE("/session", sh.Close)
	g.GET("/state", h.GetState)
	g.GET("/cart", h.GetCart)
	g.POST("/cart/items", h.AddToCart)
	g.PATCH("/cart/items/:productId", h.UpdateCartItem)
	g.DELETE("/cart/items/:productId", h.RemoveFromCart)
	g.DELETE("/cart", h.ClearCart)
	g.PUT("/cart/open", h.SetCartOpen)
	g.POST("/auth/login", h.Login)
	g.POST("/auth/register", h.Register)
	g.POST("/auth/logout", h.Logout)
	g.POST("/orders", h.CreateOrder)
	g.GET("/orders", h.GetOrders)
	g.GET("/orders/history", h.GetOrderHistory)
	g.PATCH("/orders/:id/status", h.UpdateOrderStatus)

	return &testServer{e: e, manager: manager, history: history, verifier: verifier}
}

func (s *testServer) open(t *testing.T) (string, string) {
	t.Helper()

	sess, err := s.manager.Open(context.Background())
	require.NoError(t, err)
	return sess.ID, sess.Token
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) store(t *testing.T, sessionID string) *rental.Store {
	t.Helper()

	store, err := s.manager.Get(context.Background(), sessionID)
	require.NoError(t, err)
	return store
}

func TestSessionHandler_OpenAndClose(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/sessions", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	_, token := s.open(t)
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/state", token, "").Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/session", token, "").Code)
	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/state", token, "").Code)
}

func TestRentalHandler_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/cart", "", "").Code)
	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/cart", "garbage", "").Code)
}

func TestRentalHandler_CartFlow(t *testing.T) {
	s := newTestServer(t)
	id, token := s.open(t)

	rec := s.do(http.MethodPost, "/cart/items", token, `{"product_id":"kb","rental_period":"weekly"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodPost, "/cart/items", token, `{"product_id":"kb","rental_period":"weekly"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodPost, "/cart/items", token, `{"product_id":"mouse"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	store := s.store(t, id)
	cart := store.Cart()
	require.Len(t, cart, 2)
	require.Equal(t, 2, cart[0].Quantity)
	require.Equal(t, domain.RentalMonthly, cart[1].RentalPeriod)
	require.Equal(t, 2*80.0+220, store.CalculateCartTotal())

	rec = s.do(http.MethodPatch, "/cart/items/kb", token, `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 6, store.CartCount())

	rec = s.do(http.MethodPatch, "/cart/items/kb", token, `{"rental_period":"yearly"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/cart/items/mouse", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.Cart(), 1)

	rec = s.do(http.MethodPut, "/cart/open", token, `{"open":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, store.State().CartOpen)

	rec = s.do(http.MethodDelete, "/cart", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, store.Cart())
}

func TestRentalHandler_AddToCartRejects(t *testing.T) {
	s := newTestServer(t)
	_, token := s.open(t)

	require.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/cart/items", token, `{}`).Code)
	require.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/cart/items", token, `{"product_id":"nope"}`).Code)
	require.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/cart/items", token, `{"product_id":"gone"}`).Code)
	require.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, "/cart/open", token, `{}`).Code)
}

func TestRentalHandler_LoginLogout(t *testing.T) {
	s := newTestServer(t)
	id, token := s.open(t)

	rec := s.do(http.MethodPost, "/auth/login", token, `{"email":"jane@jab.test","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, rental.MsgLoginFailed, s.store(t, id).State().Error)

	rec = s.do(http.MethodPost, "/auth/login", token, `{"email":"not-an-email","password":"password"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", token, `{"email":"jane@jab.test","password":"password"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	state := s.store(t, id).State()
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "jane", state.User.Name)
	require.Empty(t, state.Error)

	rec = s.do(http.MethodPost, "/auth/logout", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, s.store(t, id).State().IsAuthenticated)
}

func TestRentalHandler_RegisterSendsVerification(t *testing.T) {
	s := newTestServer(t)
	id, token := s.open(t)

	rec := s.do(http.MethodPost, "/auth/register", token, `{"email":"new@jab.test","name":"New"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/auth/register", token, `{"email":"new@jab.test","name":"New","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, []string{"new@jab.test"}, s.verifier.sent)

	user := s.store(t, id).User()
	require.NotNil(t, user)
	require.False(t, user.IsVerified)
}

func TestRentalHandler_OrderFlow(t *testing.T) {
	s := newTestServer(t)
	id, token := s.open(t)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/auth/login", token, `{"email":"jane@jab.test","password":"password"}`).Code)

	rec := s.do(http.MethodPost, "/orders", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/cart/items", token, `{"product_id":"kb","rental_period":"daily"}`).Code)

	rec = s.do(http.MethodPost, "/orders", token, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	state := s.store(t, id).State()
	require.Empty(t, state.Cart)
	require.Len(t, state.Orders, 1)
	require.NotNil(t, state.CurrentOrder)
	require.Equal(t, 15.0, state.Orders[0].TotalAmount)
	orderID := state.Orders[0].ID

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/orders", token, "").Code)

	rec = s.do(http.MethodPatch, "/orders/"+orderID+"/status", token, `{"status":"returned"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPatch, "/orders/"+orderID+"/status", token, `{"status":"bogus"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPatch, "/orders/missing/status", token, `{"status":"confirmed"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPatch, "/orders/"+orderID+"/status", token, `{"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.OrderConfirmed, s.store(t, id).State().CurrentOrder.Status)
}

func TestRentalHandler_CreateOrderRequiresUser(t *testing.T) {
	s := newTestServer(t)
	_, token := s.open(t)

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/cart/items", token, `{"product_id":"kb"}`).Code)
	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/orders", token, "").Code)
}

func TestRentalHandler_OrderHistory(t *testing.T) {
	s := newTestServer(t)
	_, token := s.open(t)

	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/orders/history", token, "").Code)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/auth/login", token, `{"email":"jane@jab.test","password":"password"}`).Code)

	var gotUser string
	s.history.findFn = func(ctx context.Context, userID string) ([]domain.RentalOrder, error) {
		gotUser = userID
		return nil, nil
	}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/orders/history", token, "").Code)
	require.Equal(t, rental.MockUserID("jane@jab.test"), gotUser)

	s.history.findFn = func(ctx context.Context, userID string) ([]domain.RentalOrder, error) {
		return nil, errors.New("db down")
	}
	require.Equal(t, http.StatusInternalServerError, s.do(http.MethodGet, "/orders/history", token, "").Code)
}
