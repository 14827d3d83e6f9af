package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	authdomain "github.com/docusphere/docusphere-backend/internal/auth/domain"
	"github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/catalog/repository"
	requestsdomain "github.com/docusphere/docusphere-backend/internal/requests/domain"
	requestsservice "github.com/docusphere/docusphere-backend/internal/requests/service"
)

// AdminService performs catalog and request mutations. Every call checks
// that actor is an administrator, whatever the transport already checked.
type AdminService struct {
	catalog  *repository.Store
	requests *requestsservice.RequestService
	logger   *zap.Logger
	now      func() time.Time
}

func NewAdminService(catalog *repository.Store, requests *requestsservice.RequestService, logger *zap.Logger) *AdminService {
	return &AdminService{
		catalog:  catalog,
		requests: requests,
		logger:   logger,
		now:      time.Now,
	}
}

func authorize(actor *authdomain.User) error {
	if actor == nil {
		return authdomain.ErrAuthRequired
	}
	if !actor.IsAdmin {
		return authdomain.ErrForbidden
	}
	return nil
}

func validateDraft(d domain.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.Price < 0 {
		return &domain.ValidationError{Field: "price", Message: "must not be negative"}
	}
	return nil
}

// normalizeChapters fills in missing chapter ids and falls back to a single
// empty first chapter.
func normalizeChapters(chapters []domain.Chapter) []domain.Chapter {
	if len(chapters) == 0 {
		return []domain.Chapter{{ID: "chap-1", Title: "Chapter 1"}}
	}
	out := make([]domain.Chapter, len(chapters))
	for i, ch := range chapters {
		if strings.TrimSpace(ch.ID) == "" {
			ch.ID = fmt.Sprintf("chap-%d", i+1)
		}
		if strings.TrimSpace(ch.Title) == "" {
			ch.Title = fmt.Sprintf("Chapter %d", i+1)
		}
		out[i] = ch
	}
	return out
}

// Publish adds a new project to the end of the catalog.
func (s *AdminService) Publish(ctx context.Context, actor *authdomain.User, d domain.Draft) (domain.Project, error) {
	if err := authorize(actor); err != nil {
		return domain.Project{}, err
	}
	if err := validateDraft(d); err != nil {
		return domain.Project{}, err
	}

	id, err := domain.NewPublicID("project")
	if err != nil {
		return domain.Project{}, err
	}

	p := domain.Project{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Price:       d.Price,
		Category:    d.Category,
		Featured:    d.Featured,
		Chapters:    normalizeChapters(d.Chapters),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.catalog.Append(ctx, p); err != nil {
		return domain.Project{}, err
	}

	s.logger.Info("project published", zap.String("project_id", p.ID), zap.String("admin_id", actor.ID))
	return p, nil
}

// Update replaces a project's editable fields, keeping its id and creation
// time. Chapters are kept when the draft carries none.
func (s *AdminService) Update(ctx context.Context, actor *authdomain.User, projectID string, d domain.Draft) (domain.Project, error) {
	if err := authorize(actor); err != nil {
		return domain.Project{}, err
	}
	if err := validateDraft(d); err != nil {
		return domain.Project{}, err
	}

	current, err := s.catalog.Get(projectID)
	if err != nil {
		return domain.Project{}, err
	}

	chapters := current.Chapters
	if len(d.Chapters) > 0 {
		chapters = normalizeChapters(d.Chapters)
	}

	p := domain.Project{
		ID:          current.ID,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Price:       d.Price,
		Category:    d.Category,
		Featured:    d.Featured,
		Chapters:    chapters,
		CreatedAt:   current.CreatedAt,
	}
	if err := s.catalog.Put(ctx, p); err != nil {
		return domain.Project{}, err
	}

	s.logger.Info("project updated", zap.String("project_id", p.ID), zap.String("admin_id", actor.ID))
	return p, nil
}

func (s *AdminService) Delete(ctx context.Context, actor *authdomain.User, projectID string) error {
	if err := authorize(actor); err != nil {
		return err
	}
	if err := s.catalog.Delete(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info("project deleted", zap.String("project_id", projectID), zap.String("admin_id", actor.ID))
	return nil
}

// PendingRequests is the review queue: paid, uncompleted, newest first.
func (s *AdminService) PendingRequests(actor *authdomain.User) ([]requestsdomain.ProjectRequest, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.requests.Pending(), nil
}

// ApproveRequest confirms the payment and completes the request.
func (s *AdminService) ApproveRequest(ctx context.Context, actor *authdomain.User, requestID string) (requestsdomain.ProjectRequest, error) {
	if err := authorize(actor); err != nil {
		return requestsdomain.ProjectRequest{}, err
	}
	return s.requests.Complete(ctx, requestID)
}

// RejectRequest marks the payment as not received.
func (s *AdminService) RejectRequest(ctx context.Context, actor *authdomain.User, requestID string) (requestsdomain.ProjectRequest, error) {
	if err := authorize(actor); err != nil {
		return requestsdomain.ProjectRequest{}, err
	}
	return s.requests.MarkUnpaid(ctx, requestID)
}
