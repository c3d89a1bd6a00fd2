package serverrun

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cfgpkg "github.com/NeilDarach/msg-q/internal/config"
	"github.com/NeilDarach/msg-q/internal/runtime"
	httpserver "github.com/NeilDarach/msg-q/internal/server/http"
	messagesvc "github.com/NeilDarach/msg-q/internal/services/messages"
	logpkg "github.com/NeilDarach/msg-q/pkg/log"
)

// Options configures a server run.
type Options struct {
	HTTPAddr string
	Config   cfgpkg.Config
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so shutdown works
	// even for callers that don't pass a signal-aware context.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := runtime.Open(runtime.Options{Config: opts.Config})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger, err := logpkg.ApplyConfig(&logpkg.Config{
		Level:  opts.Config.LogLevel,
		Format: opts.Config.LogFormat,
	})
	if err != nil {
		procLogger = logpkg.NewLogger(logpkg.WithLevel(logpkg.InfoLevel))
	}

	addr := opts.HTTPAddr
	if addr == "" {
		addr = opts.Config.HTTPAddr
	}

	procLogger.Info("starting msgq server",
		logpkg.Str("http", addr),
		logpkg.Str("level", opts.Config.LogLevel),
		logpkg.Str("format", opts.Config.LogFormat),
	)

	svc := messagesvc.NewWithLogger(rt, procLogger.WithComponent("messages"))
	hsrv := httpserver.NewWithService(rt, svc, procLogger.WithComponent("http"))
	defer hsrv.Close()

	if err := hsrv.ListenAndServe(sctx, addr); err != nil {
		return err
	}
	procLogger.Info("msgq server stopped")
	return nil
}
