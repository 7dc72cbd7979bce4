// Package api exposes registered content types over HTTP so an admin UI can
// fetch labels, arguments and notices without linking the factory.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/content-types/pkg/contenttype"
)

// Lookup finds registered content types by slug. *contenttype.Registry
// satisfies it.
type Lookup interface {
	Get(slug string) (*contenttype.Factory, bool)
	Slugs() []string
}

// Handler serves read-only views of registered content types. Factories
// must be registered before the handler serves requests.
type Handler struct {
	types  Lookup
	logger *slog.Logger
}

// NewHandler creates a new content type handler
func NewHandler(types Lookup, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{types: types, logger: logger}
}

// maxBodyBytes bounds message request bodies
const maxBodyBytes = 1 << 20

// Routes returns the routes for content types
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(ScreenMiddleware)
	r.Use(BodyLimitMiddleware(maxBodyBytes))

	r.Get("/", h.ListContentTypes)
	r.Route("/{slug}", func(r chi.Router) {
		r.Get("/", h.GetContentType)
		r.Get("/labels", h.GetLabels)
		r.Post("/messages", h.SingleActionMessages)
		r.Post("/bulk-messages", h.BulkActionMessages)
		r.Get("/title-placeholder", h.TitlePlaceholder)
	})

	return r
}

// ContentTypeResponse is the response body for a content type
type ContentTypeResponse struct {
	contenttype.Spec
	Hierarchical bool                  `json:"hierarchical"`
	Arguments    contenttype.Arguments `json:"arguments"`
}

// MessagesRequest is the request body for single-action messages
type MessagesRequest struct {
	ItemID      string    `json:"item_id"`
	Permalink   string    `json:"permalink"`
	PublishedAt time.Time `json:"published_at"`
	Revision    string    `json:"revision,omitempty"`
}

// BulkMessagesRequest is the request body for bulk-action messages
type BulkMessagesRequest struct {
	Counts contenttype.BulkCounts `json:"counts"`
}

// TitlePlaceholderResponse is the response body for the title placeholder
type TitlePlaceholderResponse struct {
	Placeholder string `json:"placeholder"`
}

// ErrorResponse is the response body for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListContentTypes returns the registered slugs
func (h *Handler) ListContentTypes(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string][]string{"content_types": h.types.Slugs()})
}

// GetContentType returns the declared names and resolved arguments
func (h *Handler) GetContentType(w http.ResponseWriter, r *http.Request) {
	f, ok := h.factory(w, r)
	if !ok {
		return
	}

	render.JSON(w, r, ContentTypeResponse{
		Spec:         f.Spec(),
		Hierarchical: f.Hierarchical(),
		Arguments:    f.ResolveArguments(),
	})
}

// GetLabels returns the resolved label set
func (h *Handler) GetLabels(w http.ResponseWriter, r *http.Request) {
	f, ok := h.factory(w, r)
	if !ok {
		return
	}

	render.JSON(w, r, f.ResolveArguments().Labels())
}

// SingleActionMessages returns the notice table for one item
func (h *Handler) SingleActionMessages(w http.ResponseWriter, r *http.Request) {
	f, ok := h.factory(w, r)
	if !ok {
		return
	}

	var req MessagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var itemID uuid.UUID
	if req.ItemID != "" {
		id, err := uuid.Parse(req.ItemID)
		if err != nil {
			h.error(w, r, http.StatusBadRequest, "Invalid item ID", err)
			return
		}
		itemID = id
	}

	permalink := req.Permalink
	mc := contenttype.MessageContext{
		ItemID: itemID,
		Permalinks: contenttype.PermalinkFunc(func(uuid.UUID) string {
			return permalink
		}),
		PublishedAt: req.PublishedAt,
		Revision:    req.Revision,
	}

	tables := f.SingleActionMessages(nil, mc)
	render.JSON(w, r, tables[f.Slug()])
}

// BulkActionMessages returns the bulk notices for the given counts
func (h *Handler) BulkActionMessages(w http.ResponseWriter, r *http.Request) {
	f, ok := h.factory(w, r)
	if !ok {
		return
	}

	var req BulkMessagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tables := f.BulkActionMessages(nil, req.Counts)
	render.JSON(w, r, tables[f.Slug()])
}

// TitlePlaceholder returns the title field placeholder for the screen named
// by the request
func (h *Handler) TitlePlaceholder(w http.ResponseWriter, r *http.Request) {
	f, ok := h.factory(w, r)
	if !ok {
		return
	}

	screen, _ := contenttype.ScreenFromContext(r.Context())
	placeholder := f.TitlePlaceholder(r.URL.Query().Get("default"), screen)
	render.JSON(w, r, TitlePlaceholderResponse{Placeholder: placeholder})
}

func (h *Handler) factory(w http.ResponseWriter, r *http.Request) (*contenttype.Factory, bool) {
	slug := chi.URLParam(r, "slug")
	f, ok := h.types.Get(slug)
	if !ok {
		h.error(w, r, http.StatusNotFound, "Content type not found", nil)
		return nil, false
	}
	return f, true
}

func (h *Handler) error(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if err != nil {
		h.logger.Error(msg, "slug", chi.URLParam(r, "slug"), "err", err)
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}
