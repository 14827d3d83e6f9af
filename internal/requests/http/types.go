package http

import (
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/requests/service"
)

type Handler struct {
	svc    *service.RequestService
	logger *zap.Logger
}

func New(svc *service.RequestService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}
