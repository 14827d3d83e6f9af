package http

import (
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/admin/service"
)

type Handler struct {
	svc    *service.AdminService
	logger *zap.Logger
}

func New(svc *service.AdminService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}
