package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/docusphere/docusphere-backend/internal/auth"
	"github.com/docusphere/docusphere-backend/internal/auth/middleware"
	authrepo "github.com/docusphere/docusphere-backend/internal/auth/repository"
	authservice "github.com/docusphere/docusphere-backend/internal/auth/service"
	cartservice "github.com/docusphere/docusphere-backend/internal/cart/service"
	catalogdomain "github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/checkout/service"
	requestsdomain "github.com/docusphere/docusphere-backend/internal/requests/domain"
	"github.com/docusphere/docusphere-backend/internal/storage/memory"
)

type testEnv struct {
	router  *gin.Engine
	svc     *service.CheckoutService
	manager *authservice.Manager
	carts   *cartservice.Loader
}

func setup() *testEnv {
	gin.SetMode(gin.TestMode)
	local := memory.New()
	logger := zap.NewNop()

	m := authservice.NewManager(
		authrepo.NewUserRepository(local, logger),
		authrepo.NewCredentialRepository(local, bcrypt.MinCost, logger),
		nil, local, authservice.AdminCredentials{}, logger,
	)
	carts := cartservice.NewLoader(local, logger)
	svc := service.NewCheckoutService(service.NoDelay, carts, logger)

	r := gin.New()
	g := r.Group("/api/v1/checkout", middleware.WithDevice(), middleware.WithSession(m))
	New(svc, carts, requestsdomain.BankDetails{BankName: "First Bank Nigeria"}, logger).Register(g)
	return &testEnv{router: r, svc: svc, manager: m, carts: carts}
}

func (e *testEnv) do(method, path, device string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(auth.HeaderDeviceID, device)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type opResp struct {
	Operation service.Operation `json:"operation"`
}

func TestCheckoutFlow(t *testing.T) {
	e := setup()
	ctx := t.Context()

	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodPost, "/api/v1/checkout", "dev-1").Code)

	_, err := e.manager.ForDevice("dev-1").Signup(ctx, "Ada", "Obi", "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/v1/checkout", "dev-1").Code)

	cart, err := e.carts.Load(ctx, "dev-1")
	require.NoError(t, err)
	require.NoError(t, cart.AddToCart(ctx, catalogdomain.Project{ID: "proj-1", Price: 5000}))
	require.NoError(t, cart.AddToCart(ctx, catalogdomain.Project{ID: "proj-2", Price: 7500}))

	w := e.do(http.MethodPost, "/api/v1/checkout", "dev-1")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var resp opResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(12500), resp.Operation.Total)

	e.svc.Wait()

	w = e.do(http.MethodGet, "/api/v1/checkout/operations/"+resp.Operation.ID, "dev-1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.StatusSucceeded, resp.Operation.Status)
	assert.Equal(t, []string{"proj-1", "proj-2"}, resp.Operation.Purchased)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/v1/checkout/operations/"+resp.Operation.ID, "dev-2").Code)

	cart, err = e.carts.Load(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len())
}

func TestBankDetails(t *testing.T) {
	w := setup().do(http.MethodGet, "/api/v1/checkout/bank-details", "dev-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "First Bank Nigeria")
}
