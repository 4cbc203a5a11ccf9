package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ardnew/props/log"
	"github.com/ardnew/props/props"
)

// requestIDHeader carries the identifier assigned to each request.
const requestIDHeader = "X-Request-Id"

// maxBodySize bounds request bodies accepted by the API.
const maxBodySize = 1 << 20

// Serve exposes the merged sources over HTTP. Changes live in memory only.
type Serve struct {
	Addr string `default:"localhost:8080" help:"Listen address" short:"a"`
}

// Run executes the serve command until ctx is cancelled or the process is
// interrupted.
func (s *Serve) Run(ctx context.Context) error {
	store, err := loadStore(ctx)
	if err != nil {
		return err
	}
	defer store.Release()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return ErrServe.With(slog.String("addr", s.Addr)).Wrap(err)
	}

	srv := &http.Server{
		Handler:           NewHandler(store, log.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)

	go func() { errc <- srv.Serve(ln) }()

	log.InfoContext(ctx, "serving properties",
		slog.String("addr", ln.Addr().String()),
		slog.Int("entry_count", store.Len()))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return ErrServe.Wrap(err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx), 5*time.Second,
		)
		defer cancel()

		log.InfoContext(ctx, "shutting down")

		return srv.Shutdown(shutdownCtx)
	}
}

// handler serves one Store. A mutex serializes access because a Store is
// not safe for concurrent mutation.
type handler struct {
	mu     sync.Mutex
	store  *props.Store
	logger log.Logger
}

// NewHandler returns the HTTP API over store:
//
//	GET    /properties        every entry as an ordered JSON object
//	                          (?q=EXPR keeps entries for which EXPR is true)
//	PATCH  /properties        merge a JSON object of string values
//	GET    /properties/{key}  the raw value
//	PUT    /properties/{key}  set the value to the raw request body
//	DELETE /properties/{key}  remove the key
//
// The caller keeps ownership of store and must not use it while the handler
// is serving.
func NewHandler(store *props.Store, logger log.Logger) http.Handler {
	h := &handler{store: store, logger: logger}

	// Keys may contain "/", "//" and dot segments, so paths are matched
	// uncleaned and still percent-encoded.
	r := mux.NewRouter().SkipClean(true).UseEncodedPath()
	r.Use(h.requestID)

	r.HandleFunc("/properties", h.list).Methods(http.MethodGet)
	r.HandleFunc("/properties", h.merge).Methods(http.MethodPatch)
	r.HandleFunc("/properties/{key:.+}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/properties/{key:.+}", h.put).Methods(http.MethodPut)
	r.HandleFunc("/properties/{key:.+}", h.delete).Methods(http.MethodDelete)

	return r
}

type requestIDKey struct{}

// requestID tags each request with a UUID, echoed in the response header
// and attached to every log record of the request.
func (h *handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, id)

		h.logger.DebugContext(req.Context(), "request",
			slog.String("request_id", id),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path))

		ctx := context.WithValue(req.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (h *handler) fail(w http.ResponseWriter, req *http.Request, code int, err error) {
	id, _ := req.Context().Value(requestIDKey{}).(string)

	h.logger.WarnContext(req.Context(), "request failed",
		slog.String("request_id", id),
		slog.Int("status", code),
		slog.Any("error", err))

	http.Error(w, err.Error(), code)
}

// key returns the unescaped {key} route variable, failing the request when
// it is not a valid escape sequence.
func (h *handler) key(w http.ResponseWriter, req *http.Request) (string, bool) {
	key, err := url.PathUnescape(mux.Vars(req)["key"])
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)

		return "", false
	}

	return key, true
}

func (h *handler) list(w http.ResponseWriter, req *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	store := h.store

	if expr := req.URL.Query().Get("q"); expr != "" {
		q, err := props.CompileQuery(expr)
		if err != nil {
			h.fail(w, req, http.StatusBadRequest, err)

			return
		}

		selected, err := h.store.Select(q)
		if err != nil {
			h.fail(w, req, http.StatusBadRequest, err)

			return
		}
		defer selected.Release()

		store = selected
	}

	data, err := store.MarshalJSON()
	if err != nil {
		h.fail(w, req, http.StatusInternalServerError, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (h *handler) merge(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxBodySize))
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)

		return
	}

	patch := props.New()
	defer patch.Release()

	if err := patch.UnmarshalJSON(body); err != nil {
		h.fail(w, req, http.StatusBadRequest, err)

		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for key, value := range patch.All() {
		if err := h.store.Set(key, value); err != nil {
			h.fail(w, req, http.StatusInternalServerError, err)

			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) get(w http.ResponseWriter, req *http.Request) {
	key, ok := h.key(w, req)
	if !ok {
		return
	}

	h.mu.Lock()
	value, ok := h.store.Get(key)
	h.mu.Unlock()

	if !ok {
		h.fail(w, req, http.StatusNotFound,
			props.ErrKeyNotFound.With(slog.String("key", key)))

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, value)
}

func (h *handler) put(w http.ResponseWriter, req *http.Request) {
	key, ok := h.key(w, req)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxBodySize))
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)

		return
	}

	h.mu.Lock()
	err = h.store.Set(key, string(body))
	h.mu.Unlock()

	if err != nil {
		h.fail(w, req, http.StatusInternalServerError, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) delete(w http.ResponseWriter, req *http.Request) {
	key, ok := h.key(w, req)
	if !ok {
		return
	}

	h.mu.Lock()
	ok = h.store.Delete(key)
	h.mu.Unlock()

	if !ok {
		h.fail(w, req, http.StatusNotFound,
			props.ErrKeyNotFound.With(slog.String("key", key)))

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
