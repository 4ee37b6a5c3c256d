// Package server exposes a band Directory as a read-only JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"

	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/bandbook/internal/logging"
	"github.com/go-chi/chi/v5"
)

// endpointFunc handles a request and returns the result to send back.
type endpointFunc func(req *http.Request) result

// Server serves the bands of a Directory over HTTP. The zero value should not
// be used directly; call New to get one ready for use.
type Server struct {
	dir  *bandbook.Directory
	log  bandbook.Logger
	addr string

	mtx     sync.Mutex
	http    *http.Server
	serving bool
	closing bool
	closed  bool
}

// New creates a Server for dir that will listen on addr once ServeForever is
// called. A nil log disables logging.
func New(dir *bandbook.Directory, addr string, log bandbook.Logger) *Server {
	return &Server{
		dir:  dir,
		addr: addr,
		log:  logging.OrNoOp(log),
	}
}

// Handler returns the routes of the API.
//
//	GET /bands       all bands in ID order
//	GET /bands/{id}  a single band
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.dontPanic)

	r.NotFound(s.endpoint(func(req *http.Request) result {
		return notFound("no route for path")
	}))
	r.MethodNotAllowed(s.endpoint(methodNotAllowed))

	r.Get("/bands", s.endpoint(s.epGetAllBands))
	r.Get("/bands/{id}", s.endpoint(s.epGetBand))

	return r
}

func (s *Server) epGetAllBands(req *http.Request) result {
	bands := s.dir.Bands()
	return ok(bands, "got %d band(s)", len(bands))
}

func (s *Server) epGetBand(req *http.Request) result {
	id, err := getURLParam(req, "id", strconv.Atoi)
	if err != nil {
		return badRequest("Band ID must be an integer", "%s", err.Error())
	}

	b, found := s.dir.Band(id)
	if !found {
		return notFound("no band with ID %d", id)
	}

	return ok(b, "got band %d %q", b.ID, b.Name)
}

// endpoint converts an endpointFunc into an http.HandlerFunc that writes and
// logs its result. Every response is tagged with the snapshot of the store it
// was served from.
func (s *Server) endpoint(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r := ep(req).withHeader("ETag", s.etag())
		r.writeResponse(w)
		logResult(s.log, req, r)
	}
}

func (s *Server) etag() string {
	return fmt.Sprintf("%q", s.dir.Store().Snapshot().String())
}

// dontPanic recovers from a panic in the wrapped handler and responds with a
// generic 500.
func (s *Server) dontPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if panicErr := recover(); panicErr != nil {
				r := internalServerError("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack()))
				r.writeResponse(w)
				logResult(s.log, req, r)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

// ServeForever listens on the configured address and serves the API until
// Shutdown is called or the listener fails. It always returns a non-nil error;
// after Shutdown it is http.ErrServerClosed. If Shutdown was called before
// ServeForever, ServeForever returns http.ErrServerClosed without listening.
func (s *Server) ServeForever() error {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return http.ErrServerClosed
	}
	if s.serving {
		s.mtx.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.serving = true
	s.http = &http.Server{Addr: s.addr, Handler: s.Handler()}
	srv := s.http
	s.mtx.Unlock()

	defer func() {
		s.mtx.Lock()
		s.closing = false
		s.serving = false
		s.mtx.Unlock()
	}()

	s.log.Infof("serving %d band(s) from snapshot %s on %s", s.dir.Store().Len(), s.dir.Store().Snapshot(), s.addr)
	return srv.ListenAndServe()
}

// Shutdown gracefully stops a running server. If ctx expires first, the
// context's error is returned. A Server that is shut down cannot be served
// again; calling Shutdown before ServeForever keeps it from ever listening.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.closing {
		return fmt.Errorf("close already in-progress in another goroutine")
	}
	s.closed = true
	if !s.serving {
		return nil
	}
	s.closing = true

	err := s.http.Shutdown(ctx)
	s.http = nil
	if err != nil {
		return fmt.Errorf("stop HTTP server: %w", err)
	}
	return nil
}

func getURLParam[E any](req *http.Request, key string, parse func(string) (E, error)) (val E, err error) {
	valStr := chi.URLParam(req, key)
	if valStr == "" {
		// either it does not exist or it is empty; treat both as the same
		return val, errors.New("parameter does not exist")
	}

	val, err = parse(valStr)
	if err != nil {
		return val, bandbook.NewError(fmt.Sprintf("%s %q", key, valStr), bandbook.ErrBadArgument)
	}
	return val, nil
}
