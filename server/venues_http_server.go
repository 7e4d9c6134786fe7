package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"venue-scraper/logging"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

type VenuesHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
	logger    *slog.Logger
}

func NewVenuesHttpServer(router *Router, muxRouter *mux.Router, addr string, logger *slog.Logger) *VenuesHttpServer {
	return &VenuesHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
		logger:    logging.Component(logger, "VenuesHttpServer"),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *VenuesHttpServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *VenuesHttpServer) Serve(ctx context.Context, ln net.Listener) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server exiting")
	return <-errCh
}
