package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 15 * time.Second

// Daemon runs the HTTP server until a signal or Stop
type Daemon struct {
	server          *http.Server
	shutdownTimeout time.Duration
	onStop          []func()
	logger          *zap.Logger
	ctx             context.Context
	cancel          context.CancelFunc
	mu              sync.Mutex
	addr            string // actual listen address once started
	ready           chan struct{}
}

// Option configures a Daemon
type Option func(*Daemon)

// WithShutdownTimeout overrides DefaultShutdownTimeout
func WithShutdownTimeout(d time.Duration) Option {
	return func(dm *Daemon) { dm.shutdownTimeout = d }
}

// WithOnStop registers a function run after the server has shut down
func WithOnStop(f func()) Option {
	return func(dm *Daemon) { dm.onStop = append(dm.onStop, f) }
}

// NewDaemon creates a new daemon instance for server
func NewDaemon(server *http.Server, logger *zap.Logger, opts ...Option) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	d := &Daemon{
		server:          server,
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
		ready:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start listens and serves, blocking until SIGINT/SIGTERM, Stop or a
// server error, then shuts down gracefully.
func (d *Daemon) Start() error {
	ln, err := net.Listen("tcp", d.server.Addr)
	if err != nil {
		close(d.ready)
		return fmt.Errorf("failed to listen on %s: %w", d.server.Addr, err)
	}

	d.mu.Lock()
	d.addr = ln.Addr().String()
	d.mu.Unlock()
	close(d.ready)

	d.logger.Info("Daemon started", zap.String("addr", d.addr))

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		if err := d.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serveErr error
	select {
	case <-d.ctx.Done():
		d.logger.Info("Daemon stop requested")

	case sig := <-sigChan:
		d.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))

	case serveErr = <-errChan:
		d.logger.Error("HTTP server failed", zap.Error(serveErr))
	}

	if err := d.shutdown(); err != nil {
		return err
	}
	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}

// Stop asks a running Start to shut down
func (d *Daemon) Stop() {
	d.cancel()
}

// Addr returns the listen address, blocking until Start has bound it.
// It is empty when Start failed to listen.
func (d *Daemon) Addr() string {
	<-d.ready
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addr
}

func (d *Daemon) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), d.shutdownTimeout)
	defer cancel()

	err := d.server.Shutdown(ctx)
	for _, f := range d.onStop {
		f()
	}
	if err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	d.logger.Info("Daemon stopped")
	return nil
}
