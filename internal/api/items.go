package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/najdeno/internal/feed"
	"github.com/erazemk/najdeno/internal/imaging"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// Accepted layouts for the datetime form field. HTML datetime-local inputs
// produce the first.
var foundAtLayouts = []string{"2006-01-02T15:04", time.RFC3339}

// List handles GET /items: the public feed of active items, with optional
// server-side search (q, category) and pagination (page, per_page).
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB, model.ItemStatusActive)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	h.respondFeed(w, r, items)
}

// ListMine handles GET /items/user/my: all of the caller's posted items,
// regardless of status, so claimed ones stay visible on the dashboard.
func (h *ItemsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	items, err := store.ListItemsByUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	h.respondFeed(w, r, items)
}

// respondFeed filters and optionally paginates items per query parameters.
func (h *ItemsHandler) respondFeed(w http.ResponseWriter, r *http.Request, items []model.Item) {
	query := r.URL.Query()

	filtered := feed.Search(items, query.Get("q"), query.Get("category"))
	if filtered == nil {
		filtered = []model.Item{}
	}

	resp := map[string]any{
		"data":       filtered,
		"categories": feed.Categories(items),
	}

	if pageStr := query.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid page")
			return
		}

		pageSize := feed.DefaultPageSize
		if v := query.Get("per_page"); v != "" {
			pageSize, err = strconv.Atoi(v)
			if err != nil || pageSize < 1 {
				jsonError(w, http.StatusBadRequest, "invalid per_page")
				return
			}
		}

		// Clamp before paginating; a stale page number from the client is
		// not worth an error page.
		totalPages := (len(filtered) + pageSize - 1) / pageSize
		page = feed.ClampPage(page, totalPages)

		pageItems, totalPages, err := feed.Paginate(filtered, pageSize, page)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to paginate items")
			return
		}

		resp["data"] = pageItems
		resp["page"] = page
		resp["totalPages"] = totalPages
	}

	jsonResponse(w, http.StatusOK, resp)
}

// Get handles GET /items/{id}. The response includes the hint question but
// never the hint answer.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil || item.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonData(w, http.StatusOK, item)
}

// Create handles POST /items (multipart form).
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	item := &model.Item{
		Name:         r.FormValue("itemName"),
		Category:     r.FormValue("category"),
		Description:  r.FormValue("description"),
		Place:        r.FormValue("place"),
		Phone:        r.FormValue("phone"),
		Notes:        r.FormValue("notes"),
		HintQuestion: r.FormValue("hintQuestion"),
		HintAnswer:   r.FormValue("hintAnswer"),
		FoundBy:      claims.UserID,
	}

	if item.Name == "" || item.Category == "" || item.Description == "" ||
		item.Place == "" || item.HintQuestion == "" {
		jsonError(w, http.StatusBadRequest, "itemName, category, place, datetime, description and hintQuestion are required")
		return
	}

	foundAt, err := parseFoundAt(r.FormValue("datetime"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid datetime")
		return
	}
	item.FoundAt = foundAt

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := store.CreateItem(r.Context(), h.DB, item, photo.Data, photo.MIME)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	slog.Info("item posted", "user", claims.Email, "item", created.Name, "place", created.Place)
	jsonData(w, http.StatusCreated, created)
}

// GetPhoto handles GET /items/{id}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemPhoto(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

func parseFoundAt(value string) (time.Time, error) {
	var err error
	for _, layout := range foundAtLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
