package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/candell/typed-content/pkg/typedcontent"
	"github.com/candell/typed-content/pkg/typedcontent/annotation"
)

// StoreResponse is the response body for a stored block
type StoreResponse struct {
	Identifier string `json:"identifier"`
	Kind       string `json:"kind"`
	SizeBytes  uint64 `json:"size_bytes"`
}

// ContentResponse is the response body for a loaded block. Exactly one of
// Image and Text is set, matching Kind.
type ContentResponse struct {
	Identifier string                  `json:"identifier"`
	Kind       string                  `json:"kind"`
	Image      *typedcontent.ImageItem `json:"image,omitempty"`
	Text       *typedcontent.TextItem  `json:"text,omitempty"`
}

// ContentHandler handles HTTP requests for typed content blocks
type ContentHandler struct {
	gateway     typedcontent.Gateway
	annotations *annotation.Service
}

// NewContentHandler creates a new content handler
func NewContentHandler(gateway typedcontent.Gateway, annotations *annotation.Service) *ContentHandler {
	return &ContentHandler{
		gateway:     gateway,
		annotations: annotations,
	}
}

// Routes returns the routes for content
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.StoreContent)
	r.Get("/{identifier}", h.GetContent)
	r.Get("/{identifier}/payload", h.GetPayload)

	// Routes for annotations
	r.Post("/{identifier}/annotations", h.AttachAnnotation)
	r.Get("/{identifier}/annotations", h.ListAnnotations)

	return r
}

// StoreContent classifies the raw request body and stores the resulting
// block. A payload that classifies to nothing is answered with 204 No
// Content; that is a valid outcome, never an error status.
func (h *ContentHandler) StoreContent(w http.ResponseWriter, r *http.Request) {
	buf, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			slog.Warn("Payload too large", "limit_bytes", maxBytesErr.Limit)
			http.Error(w, "Payload too large", http.StatusRequestEntityTooLarge)
			return
		}
		slog.Error("Failed to read request body", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.gateway.StoreBytes(r.Context(), buf)
	if err != nil {
		var classErr *typedcontent.ClassificationError
		if errors.As(err, &classErr) {
			slog.Warn("Payload failed classification", "mime_type", classErr.MimeType, "error", err)
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		var storeErr *typedcontent.StoreError
		if errors.As(err, &storeErr) {
			slog.Error("Block store rejected payload", "op", storeErr.Op, "error", err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		slog.Error("Failed to store content", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if id.IsZero() {
		slog.Info("Payload skipped", "size_bytes", len(buf))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// Read the block back for its kind; this also proves the write landed.
	item, err := h.gateway.Load(r.Context(), id.String())
	if err != nil {
		slog.Error("Failed to load stored block", "identifier", id.String(), "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := StoreResponse{
		Identifier: id.String(),
		Kind:       string(item.Kind()),
		SizeBytes:  uint64(len(buf)),
	}

	slog.Info("Content stored", "identifier", resp.Identifier, "kind", resp.Kind)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// GetContent retrieves a typed content item by identifier
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	idText := chi.URLParam(r, "identifier")

	item, err := h.gateway.Load(r.Context(), idText)
	if err != nil {
		slog.Error("Failed to load content", "identifier", idText, "error", err)
		http.Error(w, err.Error(), loadStatus(err))
		return
	}

	resp := ContentResponse{
		Identifier: idText,
		Kind:       string(item.Kind()),
	}
	switch v := item.(type) {
	case typedcontent.ImageItem:
		resp.Image = &v
	case typedcontent.TextItem:
		resp.Text = &v
	}

	slog.Info("Content retrieved", "identifier", idText, "kind", resp.Kind)
	render.JSON(w, r, resp)
}

// GetPayload returns the raw payload bytes with the content type recorded
// at classification time
func (h *ContentHandler) GetPayload(w http.ResponseWriter, r *http.Request) {
	idText := chi.URLParam(r, "identifier")

	item, err := h.gateway.Load(r.Context(), idText)
	if err != nil {
		slog.Error("Failed to load payload", "identifier", idText, "error", err)
		http.Error(w, err.Error(), loadStatus(err))
		return
	}

	switch v := item.(type) {
	case typedcontent.ImageItem:
		w.Header().Set("Content-Type", v.Metadata.MimeType)
		w.Write(v.Content.Buffer)
	case typedcontent.TextItem:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(v.Content.Text))
	default:
		slog.Error("Unknown content kind", "identifier", idText, "kind", item.Kind())
		http.Error(w, "unknown content kind", http.StatusInternalServerError)
	}
}

// AttachAnnotation decodes a metadata chain (a leaf node with optional
// nested parents) and persists it against the identifier
func (h *ContentHandler) AttachAnnotation(w http.ResponseWriter, r *http.Request) {
	idText := chi.URLParam(r, "identifier")

	var leaf typedcontent.MetadataItem
	if err := json.NewDecoder(r.Body).Decode(&leaf); err != nil {
		slog.Error("Invalid request body", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.annotations.Attach(r.Context(), idText, &leaf)
	if err != nil {
		if errors.Is(err, typedcontent.ErrMalformedIdentifier) || errors.Is(err, annotation.ErrInvalidMetadata) {
			slog.Warn("Rejected annotation", "identifier", idText, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Failed to attach annotation", "identifier", idText, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Annotation attached", "identifier", idText, "records", len(records))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, records)
}

// ListAnnotations returns all annotation records attached to an identifier
func (h *ContentHandler) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	idText := chi.URLParam(r, "identifier")

	records, err := h.annotations.List(r.Context(), idText)
	if err != nil {
		if errors.Is(err, typedcontent.ErrMalformedIdentifier) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Failed to list annotations", "identifier", idText, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []*annotation.Record{}
	}

	render.JSON(w, r, records)
}

// loadStatus maps Load errors onto HTTP status codes. Malformed identifier
// text is the caller's fault; a missing block is 404; anything the store
// itself reports is a gateway problem.
func loadStatus(err error) int {
	switch {
	case errors.Is(err, typedcontent.ErrMalformedIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, typedcontent.ErrBlockNotFound):
		return http.StatusNotFound
	}
	var storeErr *typedcontent.StoreError
	if errors.As(err, &storeErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
