package srv

import (
	"context"
	"time"

	"github.com/sandevgo/tripsmith/pkg/log"
)

const shutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then shuts the services down in order.
// Each shutdown gets a fresh deadline because ctx is already cancelled by then.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for _, service := range services {
		if err := service.Shutdown(shutdownCtx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", service)
		}
	}
}

// Run starts background services, then runs foreground until it returns or ctx is cancelled.
// Everything is shut down afterwards, foreground first.
func Run(ctx context.Context, foreground Service, background []Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	StartServices(ctx, background)

	errCh := make(chan error, 1)
	go func() {
		errCh <- foreground.Start(ctx)
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
	}
	cancel()

	ShutdownServices(ctx, append([]Service{foreground}, background...))
	return err
}
