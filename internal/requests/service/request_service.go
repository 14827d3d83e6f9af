package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	authdomain "github.com/docusphere/docusphere-backend/internal/auth/domain"
	catalogdomain "github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/requests/domain"
	"github.com/docusphere/docusphere-backend/internal/requests/repository"
)

type RequestService struct {
	repo   *repository.Repo
	fee    int64
	bank   domain.BankDetails
	logger *zap.Logger
	now    func() time.Time
}

func NewRequestService(repo *repository.Repo, fee int64, bank domain.BankDetails, logger *zap.Logger) *RequestService {
	return &RequestService{
		repo:   repo,
		fee:    fee,
		bank:   bank,
		logger: logger,
		now:    time.Now,
	}
}

// Fee is the flat request fee in naira.
func (s *RequestService) Fee() int64 { return s.fee }

func (s *RequestService) BankDetails() domain.BankDetails { return s.bank }

// Submit records an unpaid request. user may be nil; when set and email is
// blank the user's email is used.
func (s *RequestService) Submit(ctx context.Context, user *authdomain.User, title, email, description string) (domain.ProjectRequest, error) {
	title = strings.TrimSpace(title)
	email = strings.TrimSpace(email)

	req := domain.ProjectRequest{
		ProjectTitle: title,
		Description:  strings.TrimSpace(description),
		CreatedAt:    s.now().UTC(),
	}
	if user != nil {
		req.UserID = user.ID
		if email == "" {
			email = user.Email
		}
	}
	req.UserEmail = email

	if err := catalogdomain.RequireFields("title", title, "email", email); err != nil {
		return domain.ProjectRequest{}, err
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return domain.ProjectRequest{}, err
	}
	s.logger.Info("project request submitted", zap.String("request_id", created.ID), zap.String("email", created.UserEmail))
	return created, nil
}

// ConfirmPayment marks the request as paid on the customer's word; an admin
// verifies the transfer before approving.
func (s *RequestService) ConfirmPayment(ctx context.Context, requestID string) (domain.ProjectRequest, error) {
	return s.repo.Update(ctx, requestID, func(r *domain.ProjectRequest) { r.Paid = true })
}

// Complete closes a pending request.
func (s *RequestService) Complete(ctx context.Context, requestID string) (domain.ProjectRequest, error) {
	return s.repo.Update(ctx, requestID, func(r *domain.ProjectRequest) { r.Completed = true })
}

// MarkUnpaid sends a request back to unpaid, dropping it from the queue.
func (s *RequestService) MarkUnpaid(ctx context.Context, requestID string) (domain.ProjectRequest, error) {
	return s.repo.Update(ctx, requestID, func(r *domain.ProjectRequest) { r.Paid = false })
}

// Pending returns the admin queue, newest first.
func (s *RequestService) Pending() []domain.ProjectRequest {
	return s.repo.Pending()
}
