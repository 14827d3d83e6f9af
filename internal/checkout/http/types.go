package http

import (
	"go.uber.org/zap"

	cartservice "github.com/docusphere/docusphere-backend/internal/cart/service"
	"github.com/docusphere/docusphere-backend/internal/checkout/service"
	requestsdomain "github.com/docusphere/docusphere-backend/internal/requests/domain"
)

type Handler struct {
	svc    *service.CheckoutService
	carts  *cartservice.Loader
	bank   requestsdomain.BankDetails
	logger *zap.Logger
}

func New(svc *service.CheckoutService, carts *cartservice.Loader, bank requestsdomain.BankDetails, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, carts: carts, bank: bank, logger: logger}
}
