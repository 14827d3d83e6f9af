package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/config"
	"github.com/docusphere/docusphere-backend/internal/bootstrap"
	"github.com/docusphere/docusphere-backend/internal/digest"
	"github.com/docusphere/docusphere-backend/internal/logging"
	requestsrepo "github.com/docusphere/docusphere-backend/internal/requests/repository"
	"github.com/docusphere/docusphere-backend/internal/storage"
)

var digestJSON bool

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print the pending project-request queue once",
	RunE:  runDigest,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pending-queue digest on DIGEST_SCHEDULE until interrupted",
	RunE:  runSchedule,
}

func init() {
	digestCmd.Flags().BoolVar(&digestJSON, "json", false, "write the summary as JSON to stdout")
}

// setup opens the same storage the API server uses.
func setup(ctx context.Context) (*config.Config, *zap.Logger, storage.Store, *digest.Digest, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	local, err := bootstrap.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	repo := requestsrepo.New(local, logger.Named("requests"))
	return cfg, logger, local, digest.New(repo, cfg.Requests.Fee, logger.Named("digest")), nil
}

func runDigest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	_, logger, local, d, err := setup(ctx)
	if err != nil {
		return err
	}
	defer local.Close()
	defer func() { _ = logger.Sync() }()

	summary, err := d.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if digestJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Fprintf(out, "%d pending request(s), ₦%d expected\n", summary.PendingCount, summary.ExpectedRevenue)
	for _, r := range summary.Requests {
		fmt.Fprintf(out, "  %s  %s  %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02"), r.UserEmail, r.ProjectTitle)
	}
	return nil
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, local, d, err := setup(ctx)
	if err != nil {
		return err
	}
	defer local.Close()
	defer func() { _ = logger.Sync() }()

	s := digest.NewScheduler(d, logger.Named("scheduler"))
	if err := s.Schedule(ctx, cfg.Digest.Schedule); err != nil {
		return err
	}
	s.Start()

	<-ctx.Done()
	logger.Info("stopping digest scheduler")
	<-s.Stop().Done()
	return nil
}
