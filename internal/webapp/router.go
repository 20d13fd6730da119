package webapp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"knox-bundles/internal/domain"
)

// NewRouter serves the order mini-app: its static assets, the bundle catalog
// and a health probe.
func NewRouter(catalog domain.Catalog, assetsDir string, logger *zap.Logger) http.Handler {
	h := &catalogHandler{catalog: catalog, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", h.Health)
	r.Get("/api/bundles", h.Bundles)
	r.Handle("/*", http.FileServer(http.Dir(assetsDir)))

	return r
}

type catalogHandler struct {
	catalog domain.Catalog
	logger  *zap.Logger
}

func (h *catalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *catalogHandler) Bundles(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog)
}

func (h *catalogHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}
