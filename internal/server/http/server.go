package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/NeilDarach/msg-q/internal/runtime"
	"github.com/NeilDarach/msg-q/internal/server/http/controllers"
	messagesvc "github.com/NeilDarach/msg-q/internal/services/messages"
	logpkg "github.com/NeilDarach/msg-q/pkg/log"
)

// Server serves the msgq HTTP API.
type Server struct {
	rt  *runtime.Runtime
	srv *http.Server
	lis net.Listener
}

// New creates a server with a fresh messages service.
func New(rt *runtime.Runtime) *Server {
	return NewWithService(rt, messagesvc.New(rt), nil)
}

// NewWithService creates a server sharing an existing messages service.
func NewWithService(rt *runtime.Runtime, svc *messagesvc.Service, logger logpkg.Logger) *Server {
	mux := http.NewServeMux()
	registry := controllers.NewControllerRegistry(rt, svc, logger)
	registry.RegisterAllRoutes(mux)
	return &Server{rt: rt, srv: &http.Server{Handler: cors(mux)}}
}

// Handler exposes the configured handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close closes the listener if one is open.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
