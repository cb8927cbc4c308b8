package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kondzio-p/ftbd-blt/internal/db"
	"github.com/kondzio-p/ftbd-blt/internal/service"
)

// ListMedia returns the media library, newest first.
func (a *API) ListMedia(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": a.media.List()})
}

type registerMediaRequest struct {
	Path string `json:"path"`
}

// RegisterMedia adds a library entry for an existing path.
func (a *API) RegisterMedia(c *gin.Context) {
	var payload registerMediaRequest
	if !bindJSON(c, &payload, msgInvalidBody) {
		return
	}

	item, err := a.media.Register(payload.Path)
	if err != nil {
		if errors.Is(err, service.ErrMediaPathMissing) {
			respondError(c, http.StatusBadRequest, "Path is required")
			return
		}
		a.respondInternal(c, "Failed to add media", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UploadMedia stores a file like UploadFile and registers it in the library.
func (a *API) UploadMedia(c *gin.Context) {
	result, ok := a.receiveUpload(c)
	if !ok {
		return
	}

	item, err := a.media.Add(db.MediaItem{
		Name:    result.Filename,
		Type:    service.ClassifyUpload(result.Filename, result.MIME),
		Path:    result.Path,
		Preview: result.Path,
	})
	if err != nil {
		a.respondInternal(c, "Failed to add media", err)
		return
	}

	payload := uploadPayload(result)
	payload["item"] = item
	c.JSON(http.StatusCreated, payload)
}

// DeleteMedia removes a library entry. Pages referencing its path are left
// untouched and the file stays on disk.
func (a *API) DeleteMedia(c *gin.Context) {
	if err := a.media.Remove(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			respondError(c, http.StatusNotFound, "Media item not found")
			return
		}
		a.respondInternal(c, "Failed to remove media", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
