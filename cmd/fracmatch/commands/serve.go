package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DoyleJ11/fracmatch/internal/httpapi"
	"github.com/DoyleJ11/fracmatch/internal/hub"
	"github.com/DoyleJ11/fracmatch/internal/session"
	"github.com/DoyleJ11/fracmatch/internal/store"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over HTTP and websockets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides FRACMATCH_ADDR)")
	return cmd
}

func serve(ctx context.Context) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	h := hub.NewHub(ctx, session.Options{
		Seed:          cfg.Seed,
		SuccessDelay:  cfg.SuccessDelay,
		FeedbackDelay: cfg.FeedbackDelay,
		IdleTimeout:   cfg.SessionIdleTimeout,
		Store:         st,
		Logger:        logger,
	})

	// Build the router *with* the hub injected
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.SetupRoutes(httpapi.Deps{
			Hub:            h,
			Store:          st,
			Logger:         logger,
			AllowedOrigins: cfg.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func openStore() (store.Store, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("no database configured, keeping attempts in memory")
		return store.NewMemoryStore(), nil
	}
	st, err := store.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	logger.Info("recording attempts in postgres")
	return st, nil
}
