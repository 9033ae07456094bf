package tags

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stockroom/inventory/app/httputil"
	"github.com/stockroom/inventory/models"
)

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TagProvider interface {
	GetAllTags() ([]models.Tag, error)
	GetOrCreateTag(name string) (*models.Tag, error)
}

type TagHandler struct {
	repo TagProvider
}

func NewTagHandler(r TagProvider) *TagHandler {
	return &TagHandler{repo: r}
}

// HandleGetAll lists all tags, alphabetically.
func (h *TagHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	tags, err := h.repo.GetAllTags()
	if err != nil {
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch tags")
		return
	}

	response := make([]TagResponse, len(tags))
	for i, t := range tags {
		response[i] = TagResponse{
			ID:   t.ID,
			Name: t.Name,
		}
	}

	httputil.JSON(w, http.StatusOK, response)
}

// HandleCreate gets or creates a tag by name.
func (h *TagHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing name")
		return
	}

	tag, err := h.repo.GetOrCreateTag(name)
	if err != nil {
		httputil.Error(w, http.StatusInternalServerError, "Failed to create tag")
		return
	}

	httputil.JSON(w, http.StatusCreated, TagResponse{
		ID:   tag.ID,
		Name: tag.Name,
	})
}
