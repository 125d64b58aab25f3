// Package home runs the optional embedded net/http server that sits beside the
// Fiber app on its own port and answers a single page at "/".
package home

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const body = "home"

// Server wraps an http.Server serving Handler.
type Server struct {
	srv *http.Server
	log logrus.FieldLogger
}

// NewServer builds a server listening on ":"+port.
func NewServer(port string, log logrus.FieldLogger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", Handler)

	return &Server{
		srv: &http.Server{
			Addr:              ":" + port,
			Handler:           otelhttp.NewHandler(mux, "home"),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log.WithField("component", "home_server"),
	}
}

// Handler answers GET and HEAD on "/" with a plain text body.
func Handler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.srv.Addr }

// ListenAndServe blocks until the server stops. A graceful Shutdown returns nil.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.log.WithField("addr", ln.Addr().String()).Info("home_server_listening")
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
