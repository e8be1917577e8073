package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"devchat/domain"
	"devchat/errors"
	"devchat/services"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatsResponse struct {
	State         string `json:"state"`
	Count         int    `json:"count"`
	Bytes         int    `json:"bytes"`
	Capacity      int    `json:"capacity"`
	MaxMessageLen int    `json:"max_message_len"`
	Appended      uint64 `json:"appended"`
	Evicted       uint64 `json:"evicted"`
	Truncated     uint64 `json:"truncated"`
	Clears        uint64 `json:"clears"`
}

// Handler exposes the chat log over HTTP. Request bodies are the raw
// message bytes; reads answer with the raw consolidated bytes.
type Handler struct {
	chatLogService services.IChatLogService
	gatherer       prometheus.Gatherer
	log            *slog.Logger
}

func NewHandler(log *slog.Logger, chatLogService services.IChatLogService, gatherer prometheus.Gatherer) *Handler {
	return &Handler{chatLogService: chatLogService, gatherer: gatherer, log: log}
}

// Mount registers all routes on the provided router.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/healthz", h.healthz)
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/chat", func(r chi.Router) {
		r.Use(h.session)
		r.Get("/", h.read)
		r.Post("/", h.write)
		r.Delete("/", h.clear)
		r.Get("/stats", h.stats)
		r.Post("/control/{command}", h.control)
	})
}

func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()
	h.Mount(r)
	return r
}

// session brackets each chat request with Open and Close.
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.chatLogService.Open(r.Context()); err != nil {
			h.writeError(w, err)
			return
		}
		defer func() { _ = h.chatLogService.Close(r.Context()) }()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) read(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", -1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	buf, err := h.chatLogService.Read(r.Context(), offset, int(limit))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf); err != nil {
		h.log.Debug("Read response not delivered", "error", err)
	}
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.chatLogService.Write(r.Context(), offset, r.Body); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if _, err := h.chatLogService.Clear(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) control(w http.ResponseWriter, r *http.Request) {
	cmd, err := domain.ParseCommand(chi.URLParam(r, "command"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.chatLogService.Control(r.Context(), cmd); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stats(w http.ResponseWriter, _ *http.Request) {
	st := h.chatLogService.Stats()
	writeJSON(w, http.StatusOK, StatsResponse{
		State:         st.State.String(),
		Count:         st.Count,
		Bytes:         st.Bytes,
		Capacity:      st.Capacity,
		MaxMessageLen: st.MaxMessageLen,
		Appended:      st.Appended,
		Evicted:       st.Evicted,
		Truncated:     st.Truncated,
		Clears:        st.Clears,
	})
}

// writeError maps a domain error onto a status code. An empty log is not
// an error for HTTP clients: it answers 204.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case stderrors.Is(err, errors.ErrNoContent):
		w.WriteHeader(http.StatusNoContent)
	case stderrors.Is(err, errors.ErrInvalidOffset):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case stderrors.Is(err, errors.ErrUnsupportedCommand):
		writeJSONError(w, http.StatusNotImplemented, err.Error())
	case stderrors.Is(err, errors.ErrTransportFailure):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("Chat request failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func queryInt(r *http.Request, key string, fallback int64) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed %s: %q", key, raw)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, ErrorResponse{Error: message})
}
