// Package server binds the HTTP listener and runs the server until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"pdf-text-extractor/internal/domain"
)

// RetryDelay is the pause between bind attempts on consecutive ports
const RetryDelay = 300 * time.Millisecond

// Listen binds host:port. When the port is in use it tries port+1, port+2, ...
// up to maxAttempts ports in total. Any other bind error is returned at once.
func Listen(ctx context.Context, host string, port int, maxAttempts int, delay time.Duration, logger domain.Logger) (net.Listener, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var lc net.ListenConfig
	for attempt := 1; ; attempt++ {
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err == nil {
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("listen on %s: %w", addr, err)
		}
		logger.Warn("Port already in use", "port", port, "attempt", attempt)
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("no free port found after %d attempts: %w", maxAttempts, err)
		}
		port++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// Serve runs srv on ln until ctx is cancelled, then shuts it down gracefully
// within shutdownTimeout.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, logger domain.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "address", "http://"+ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Server exited")
	return nil
}
