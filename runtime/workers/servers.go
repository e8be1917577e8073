package workers

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
)

type listenFunc func(address string) (net.Listener, error)

func tcpListen(address string) (net.Listener, error) {
	return net.Listen("tcp", address)
}

// GrpcServerWorker serves the ChatLog gRPC service until its context is done.
// A Serve failure is returned so the supervisor can restart the listener.
type GrpcServerWorker struct {
	log             *slog.Logger
	server          *grpc.Server
	address         string
	shutdownTimeout time.Duration
	listen          listenFunc
}

func NewGrpcServerWorker(log *slog.Logger, server *grpc.Server, address string, shutdownTimeout time.Duration) *GrpcServerWorker {
	return &GrpcServerWorker{
		log:             log,
		server:          server,
		address:         address,
		shutdownTimeout: shutdownTimeout,
		listen:          tcpListen,
	}
}

func (w *GrpcServerWorker) Run(ctx context.Context) error {
	listener, err := w.listen(w.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", w.address, err)
	}

	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting gRPC server", "address", listener.Addr().String(), "at", time.Now().UTC())
		errChan <- w.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		w.gracefulStop()
		return nil
	case err := <-errChan:
		if err == nil || stderrors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("gRPC server error: %w", err)
	}
}

// gracefulStop drains in-flight calls, forcing the stop once the timeout elapsed.
func (w *GrpcServerWorker) gracefulStop() {
	stopped := make(chan struct{})
	go func() {
		w.server.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
		w.log.Info("gRPC server stopped")
	case <-time.After(w.shutdownTimeout):
		w.log.Warn("gRPC graceful stop timed out, forcing", "timeout", w.shutdownTimeout)
		w.server.Stop()
	}
}

// HTTPServerWorker serves the HTTP surface (chat routes, health and metrics).
type HTTPServerWorker struct {
	log             *slog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
	listen          listenFunc
}

func NewHTTPServerWorker(log *slog.Logger, handler http.Handler, address string, shutdownTimeout time.Duration) *HTTPServerWorker {
	return &HTTPServerWorker{
		log: log,
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		listen:          tcpListen,
	}
}

func (w *HTTPServerWorker) Run(ctx context.Context) error {
	listener, err := w.listen(w.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", w.server.Addr, err)
	}

	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting HTTP server", "address", listener.Addr().String(), "at", time.Now().UTC())
		errChan <- w.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()
		if err := w.server.Shutdown(shutdownCtx); err != nil {
			w.log.Warn("HTTP shutdown incomplete", "error", err)
			_ = w.server.Close()
		}
		w.log.Info("HTTP server stopped")
		return nil
	case err := <-errChan:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server error: %w", err)
	}
}
