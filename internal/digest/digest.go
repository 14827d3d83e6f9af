// Package digest summarizes the admin review queue of project requests.
package digest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/requests/domain"
	"github.com/docusphere/docusphere-backend/internal/requests/repository"
)

// Summary is one snapshot of the pending queue.
type Summary struct {
	GeneratedAt     time.Time               `json:"generated_at"`
	PendingCount    int                     `json:"pending_count"`
	ExpectedRevenue int64                   `json:"expected_revenue"`
	Oldest          *time.Time              `json:"oldest,omitempty"`
	Requests        []domain.ProjectRequest `json:"requests"`
}

type Digest struct {
	repo   *repository.Repo
	fee    int64
	logger *zap.Logger
	now    func() time.Time
}

func New(repo *repository.Repo, fee int64, logger *zap.Logger) *Digest {
	return &Digest{repo: repo, fee: fee, logger: logger, now: time.Now}
}

// Run reloads the queue from storage, which another process may have
// changed, and logs a summary.
func (d *Digest) Run(ctx context.Context) (Summary, error) {
	if err := d.repo.Load(ctx); err != nil {
		return Summary{}, fmt.Errorf("reload requests: %w", err)
	}

	s := d.Summarize()
	fields := []zap.Field{
		zap.Int("pending", s.PendingCount),
		zap.Int64("expected_revenue", s.ExpectedRevenue),
	}
	if s.Oldest != nil {
		fields = append(fields, zap.Duration("oldest_age", s.GeneratedAt.Sub(*s.Oldest)))
	}
	d.logger.Info("pending request digest", fields...)
	return s, nil
}

// Summarize builds a summary from the repository's current state.
func (d *Digest) Summarize() Summary {
	pending := d.repo.Pending()
	s := Summary{
		GeneratedAt:     d.now().UTC(),
		PendingCount:    len(pending),
		ExpectedRevenue: int64(len(pending)) * d.fee,
		Requests:        pending,
	}
	for _, r := range pending {
		if s.Oldest == nil || r.CreatedAt.Before(*s.Oldest) {
			t := r.CreatedAt
			s.Oldest = &t
		}
	}
	return s
}
