// Package api provides HTTP handlers for the catalog bridge admin API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hive-bridge/internal/domain"
	"hive-bridge/internal/hive"
	"hive-bridge/internal/middleware"
)

// Handler serves the catalog operations over HTTP.
type Handler struct {
	catalog domain.Catalog
	logger  *slog.Logger
}

// NewHandler creates an API handler over a catalog.
func NewHandler(catalog domain.Catalog, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// Router builds the chi router for the admin API.
func (h *Handler) Router(rateLimit middleware.RateLimitConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RateLimiter(rateLimit))

	r.Get("/health", h.health)
	r.Route("/v1/databases", func(r chi.Router) {
		r.Get("/", h.listDatabases)
		r.Post("/", h.createDatabase)
		r.Route("/{database}/tables", func(r chi.Router) {
			r.Get("/", h.listTables)
			r.Post("/", h.createTable)
			r.Get("/{table}", h.getTable)
			r.Get("/{table}/exists", h.tableExists)
			r.Delete("/{table}", h.dropTable)
		})
	})
	return r
}

// === DTOs ===

type columnDTO struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     int    `json:"size,omitempty"`
	Scale    int    `json:"scale,omitempty"`
	Nullable bool   `json:"nullable"`
}

type tableDTO struct {
	Database string      `json:"database"`
	Name     string      `json:"name"`
	Kind     string      `json:"kind"`
	Columns  []columnDTO `json:"columns"`
}

type createDatabaseRequest struct {
	Name           string `json:"name"`
	IgnoreIfExists bool   `json:"ignore_if_exists"`
}

type createTableRequest struct {
	Name           string      `json:"name"`
	Columns        []columnDTO `json:"columns"`
	IgnoreIfExists bool        `json:"ignore_if_exists"`
}

func tableToAPI(t *domain.CatalogTable) tableDTO {
	dto := tableDTO{
		Database: t.Identifier.Database,
		Name:     t.Identifier.Name,
		Kind:     t.Kind,
		Columns:  make([]columnDTO, 0, len(t.Schema)),
	}
	for _, f := range t.Schema {
		dto.Columns = append(dto.Columns, columnDTO{
			Name:     f.Name,
			Type:     hive.RenderTypeName(f.Type),
			Size:     f.Type.Size,
			Scale:    f.Type.Scale,
			Nullable: f.Nullable,
		})
	}
	return dto
}

// === Handlers ===

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listDatabases(w http.ResponseWriter, r *http.Request) {
	names, err := h.catalog.ListDatabases(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"databases": names})
}

func (h *Handler) createDatabase(w http.ResponseWriter, r *http.Request) {
	var req createDatabaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}
	if err := h.catalog.CreateDatabase(r.Context(), req.Name, req.IgnoreIfExists); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	database := chi.URLParam(r, "database")
	pattern := r.URL.Query().Get("pattern")

	var (
		names []string
		err   error
	)
	if pattern == "" {
		names, err = h.catalog.ListTables(r.Context(), database)
	} else {
		names, err = h.catalog.ListTablesPattern(r.Context(), database, pattern)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"tables": names})
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	database := chi.URLParam(r, "database")

	var req createTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body: %v", err))
		return
	}

	schema := make([]domain.SchemaField, 0, len(req.Columns))
	for _, col := range req.Columns {
		kind, ok := domain.ParseTypeKind(col.Type)
		if !ok {
			h.writeError(w, r, domain.ErrValidation("unknown column type %q", col.Type))
			return
		}
		schema = append(schema, domain.SchemaField{
			Name:     col.Name,
			Type:     domain.FieldType{Kind: kind, Size: col.Size, Scale: col.Scale},
			Nullable: col.Nullable,
		})
	}

	table := &domain.CatalogTable{
		Identifier: domain.TableIdentifier{Database: database, Name: req.Name},
		Kind:       domain.TableKindExternal,
		Schema:     schema,
	}
	if err := h.catalog.CreateTable(r.Context(), table, req.IgnoreIfExists); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tableToAPI(table))
}

func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	database := chi.URLParam(r, "database")
	table := chi.URLParam(r, "table")

	result, err := h.catalog.GetTable(r.Context(), database, table)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tableToAPI(result))
}

func (h *Handler) tableExists(w http.ResponseWriter, r *http.Request) {
	database := chi.URLParam(r, "database")
	table := chi.URLParam(r, "table")

	exists, err := h.catalog.TableExists(r.Context(), database, table)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) dropTable(w http.ResponseWriter, r *http.Request) {
	database := chi.URLParam(r, "database")
	table := chi.URLParam(r, "table")
	q := r.URL.Query()
	ignoreIfNotExists := q.Get("if_exists") == "true"
	purge := q.Get("purge") == "true"

	if err := h.catalog.DropTable(r.Context(), database, table, ignoreIfNotExists, purge); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err)
	}
	h.writeJSON(w, status, map[string]any{"code": status, "message": err.Error()})
}
