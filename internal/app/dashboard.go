package app

import (
	"context"
	"go.uber.org/zap"
	"io"
	"os"
	"os/signal"
	"role-dashboard/internal/config"
	"role-dashboard/internal/dashboard"
	"role-dashboard/internal/notifier"
	"role-dashboard/internal/repository"
	"role-dashboard/internal/service"
	"syscall"
)

func Run(cfg *config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Fatalw("failed to render dashboard", "error", err)
	}

	logger.Info("shutting down")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger, out io.Writer) error {
	repo := repository.NewDemoRepository()
	svc := service.NewRoleService(logger, repo, newPolicy(cfg.Backend))
	notif := notifier.NewToastNotifier(logger, cfg.Notifications.Duration)
	ctrl := dashboard.New(logger, svc)

	p := NewPresenter(out, logger, ctrl, notif)
	detach := p.Attach()
	defer detach()

	ctrl.Mount(ctx)
	if err := p.Render(); err != nil {
		return err
	}

	for _, a := range cfg.Assignments {
		if ctx.Err() != nil {
			return nil
		}
		p.Assign(ctx, a.Role, a.Permissions)
		if err := p.Render(); err != nil {
			return err
		}
	}

	if cfg.Refresh && ctx.Err() == nil {
		p.Refresh(ctx)
		if err := p.Render(); err != nil {
			return err
		}
	}

	return nil
}

func newPolicy(cfg config.BackendConfig) service.Policy {
	return service.Policy{
		FailureRate: cfg.FailureRate,
		FailReads:   cfg.FailReads,
		MinLatency:  cfg.MinLatency,
		MaxLatency:  cfg.MaxLatency,
		Seed:        cfg.Seed,
	}
}
