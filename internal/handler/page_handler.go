package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kondzio-p/ftbd-blt/internal/db"
	"github.com/kondzio-p/ftbd-blt/internal/service"
)

const msgPageNotFound = "Page not found"

type pageSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListPages returns id, name and slug of every page for client-side routing.
func (a *API) ListPages(c *gin.Context) {
	pages := a.pages.All()
	summaries := make([]pageSummary, 0, len(pages))
	for _, page := range pages {
		summaries = append(summaries, pageSummary{ID: page.ID, Name: page.Name, Slug: page.Slug})
	}
	c.JSON(http.StatusOK, summaries)
}

// GetPageBySlug returns the page whose slug matches the query exactly.
func (a *API) GetPageBySlug(c *gin.Context) {
	slug, ok := c.GetQuery("slug")
	if !ok || slug == "" {
		respondError(c, http.StatusBadRequest, "Slug is required")
		return
	}

	page, err := a.pages.GetPageData(slug)
	if err != nil {
		respondError(c, http.StatusNotFound, msgPageNotFound)
		return
	}
	c.JSON(http.StatusOK, page)
}

// AdminListPages returns every full record in display order.
func (a *API) AdminListPages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pages": a.pages.All()})
}

// AdminGetPage returns one record by id.
func (a *API) AdminGetPage(c *gin.Context) {
	page, err := a.pages.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, msgPageNotFound)
		return
	}
	c.JSON(http.StatusOK, page)
}

// respondPageError maps page service errors to responses.
func (a *API) respondPageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound):
		respondError(c, http.StatusNotFound, msgPageNotFound)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, http.StatusConflict, "Slug is already used by another page")
	case errors.Is(err, service.ErrPageNameMissing):
		respondError(c, http.StatusBadRequest, "Page name is required")
	case errors.Is(err, service.ErrPageSlugMissing):
		respondError(c, http.StatusBadRequest, "Slug must start with / and name a subpage")
	case errors.Is(err, service.ErrHomePageProtected):
		respondError(c, http.StatusBadRequest, "Home page slug cannot change")
	case errors.Is(err, service.ErrUnknownField),
		errors.Is(err, service.ErrUnknownArray),
		errors.Is(err, service.ErrIndexOutOfRange),
		errors.Is(err, service.ErrInvalidValue),
		errors.Is(err, service.ErrUnknownEditOp):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		a.respondInternal(c, msgInternalError, err)
	}
}

// commitPage validates the slug, strips markup and stores page under id.
func (a *API) commitPage(c *gin.Context, id string, page db.PageRecord) {
	if err := a.pages.CheckSlug(id, page.Slug); err != nil {
		a.respondPageError(c, err)
		return
	}
	if !a.pages.UpdatePageData(id, service.SanitizePageText(page)) {
		respondError(c, http.StatusNotFound, msgPageNotFound)
		return
	}

	saved, err := a.pages.GetByID(id)
	if err != nil {
		a.respondPageError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// UpdatePage replaces a whole record.
func (a *API) UpdatePage(c *gin.Context) {
	var page db.PageRecord
	if !bindJSON(c, &page, msgInvalidBody) {
		return
	}
	a.commitPage(c, c.Param("id"), page)
}

type editPageRequest struct {
	Edits []service.PageEdit `json:"edits"`
}

// EditPage applies a batch of field-path edits to a working copy and
// commits it once. Nothing is stored when any edit fails.
func (a *API) EditPage(c *gin.Context) {
	var payload editPageRequest
	if !bindJSON(c, &payload, msgInvalidBody) {
		return
	}
	if len(payload.Edits) == 0 {
		respondError(c, http.StatusBadRequest, "No edits provided")
		return
	}

	id := c.Param("id")
	editor := service.NewPageEditor(a.pages)
	if err := editor.Open(id); err != nil {
		a.respondPageError(c, err)
		return
	}

	for i, edit := range payload.Edits {
		if err := editor.Apply(edit); err != nil {
			a.respondPageError(c, fmt.Errorf("edit %d: %w", i, err))
			return
		}
	}

	page, _ := editor.Current()
	a.commitPage(c, id, page)
}

type createPageRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreatePage adds a subpage seeded from the home page content.
func (a *API) CreatePage(c *gin.Context) {
	var payload createPageRequest
	if !bindJSON(c, &payload, msgInvalidBody) {
		return
	}

	name, slug, err := a.pages.PrepareSubPage(payload.Name, payload.Slug)
	if err != nil {
		a.respondPageError(c, err)
		return
	}

	page := a.pages.AddNewSubPage(name, slug)
	c.JSON(http.StatusCreated, page)
}

// DeletePage removes a subpage. The home page cannot be removed.
func (a *API) DeletePage(c *gin.Context) {
	id := c.Param("id")
	page, err := a.pages.GetByID(id)
	if err != nil {
		a.respondPageError(c, err)
		return
	}
	if page.IsHome() {
		respondError(c, http.StatusBadRequest, "Home page cannot be removed")
		return
	}

	if !a.pages.RemoveSubPage(id) {
		respondError(c, http.StatusNotFound, msgPageNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PreviewSlug returns the slug a page name would get.
func (a *API) PreviewSlug(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	c.JSON(http.StatusOK, gin.H{"slug": service.GenerateSlugFromName(name)})
}
