package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	adminhttp "github.com/docusphere/docusphere-backend/internal/admin/http"
	httpapi "github.com/docusphere/docusphere-backend/internal/api/http"
	apimiddleware "github.com/docusphere/docusphere-backend/internal/api/http/middleware"
	"github.com/docusphere/docusphere-backend/internal/auth"
	authhttp "github.com/docusphere/docusphere-backend/internal/auth/http"
	authmiddleware "github.com/docusphere/docusphere-backend/internal/auth/middleware"
	carthttp "github.com/docusphere/docusphere-backend/internal/cart/http"
	cataloghttp "github.com/docusphere/docusphere-backend/internal/catalog/http"
	checkouthttp "github.com/docusphere/docusphere-backend/internal/checkout/http"
	requestshttp "github.com/docusphere/docusphere-backend/internal/requests/http"
)

// Router builds the HTTP surface for a.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(a.Config.Server.TrustedProxies); err != nil {
		a.Logger.Warn("ignoring invalid trusted proxies", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(apimiddleware.RequestID(a.Logger.Named("http")))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.Config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", auth.HeaderDeviceID, apimiddleware.HeaderRequestID},
		ExposeHeaders:    []string{auth.HeaderDeviceID, apimiddleware.HeaderRequestID, "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	httpapi.NewHealthHandler(a.Config.App.ServiceName, a.Config.App.Version, a.Storage).RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(authmiddleware.WithDevice(), authmiddleware.WithSession(a.Sessions))

	limiter := authmiddleware.NewClientLimiter(a.Config.Auth.RateLimit, a.Config.Auth.RateBurst, a.Config.Auth.RateIdleTTL)
	authhttp.New(a.Catalog, limiter, a.Logger).Register(api)
	cataloghttp.New(a.Catalog, a.Carts, a.Logger).Register(api)
	carthttp.New(a.Carts, a.Catalog, a.Logger).Register(api.Group("/cart"))
	checkouthttp.New(a.Checkout, a.Carts, BankDetails(a.Config), a.Logger).Register(api.Group("/checkout"))
	requestshttp.New(a.Requests, a.Logger).Register(api.Group("/requests"))
	adminhttp.New(a.Admin, a.Logger).Register(api.Group("/admin"))

	return r
}
