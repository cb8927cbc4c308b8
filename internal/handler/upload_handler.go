package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kondzio-p/ftbd-blt/internal/service"
)

// multipartOverhead is the slack allowed on top of MaxUploadSize for
// boundaries and the companion form fields.
const multipartOverhead = 512 << 10

const (
	msgNoFile          = "No file uploaded"
	msgExtension       = "Only .webp and .webm files are allowed"
	msgTooLarge        = "File too large. Maximum size is 50MB."
	msgInvalidCategory = "Invalid category"
	msgInvalidPath     = "Invalid path"
	msgUploadFailed    = "Failed to upload file"
)

// receiveUpload parses the multipart body and stores its "file" part. On
// failure the response has already been written.
func (a *API) receiveUpload(c *gin.Context) (service.UploadResult, bool) {
	limit := service.MaxUploadSize + multipartOverhead
	if c.Request.ContentLength > limit {
		respondError(c, http.StatusBadRequest, msgTooLarge)
		return service.UploadResult{}, false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondError(c, http.StatusBadRequest, msgTooLarge)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			respondError(c, http.StatusBadRequest, msgNoFile)
		default:
			a.respondInternal(c, msgUploadFailed, err)
		}
		return service.UploadResult{}, false
	}

	result, err := a.assets.Save(c.PostForm("mediaType"), c.PostForm("category"), header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFileUploaded):
			respondError(c, http.StatusBadRequest, msgNoFile)
		case errors.Is(err, service.ErrExtensionNotAllowed):
			respondError(c, http.StatusBadRequest, msgExtension)
		case errors.Is(err, service.ErrFileTooLarge):
			respondError(c, http.StatusBadRequest, msgTooLarge)
		case errors.Is(err, service.ErrInvalidCategory):
			respondError(c, http.StatusBadRequest, msgInvalidCategory)
		default:
			a.respondInternal(c, msgUploadFailed, err)
		}
		return service.UploadResult{}, false
	}
	return result, true
}

func uploadPayload(result service.UploadResult) gin.H {
	payload := gin.H{
		"success":  true,
		"message":  "File uploaded successfully",
		"path":     result.Path,
		"filename": result.Filename,
		"size":     result.Size,
	}
	if result.Width > 0 && result.Height > 0 {
		payload["width"] = result.Width
		payload["height"] = result.Height
	}
	return payload
}

// UploadFile stores one .webp/.webm file under assets/{main|subpages}/{category}.
func (a *API) UploadFile(c *gin.Context) {
	result, ok := a.receiveUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, uploadPayload(result))
}

type createDirectoryRequest struct {
	Path string `json:"path"`
}

// CreateDirectory creates a directory relative to the server root.
func (a *API) CreateDirectory(c *gin.Context) {
	var payload createDirectoryRequest
	if !bindJSON(c, &payload, msgInvalidBody) {
		return
	}
	if strings.TrimSpace(payload.Path) == "" {
		respondError(c, http.StatusBadRequest, "Path is required")
		return
	}

	if err := a.assets.CreateDirectory(payload.Path); err != nil {
		if errors.Is(err, service.ErrInvalidPath) {
			respondError(c, http.StatusBadRequest, msgInvalidPath)
			return
		}
		a.respondInternal(c, "Failed to create directory", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Directory created: " + payload.Path,
	})
}

// ListFiles lists the stored media of one scope and category.
func (a *API) ListFiles(c *gin.Context) {
	files, err := a.assets.ListFiles(c.Param("mediaType"), c.Param("category"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			respondError(c, http.StatusBadRequest, msgInvalidCategory)
			return
		}
		a.respondInternal(c, "Failed to list files", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

type deleteFileRequest struct {
	FilePath string `json:"filePath"`
}

// DeleteFile removes a file addressed relative to the public directory.
func (a *API) DeleteFile(c *gin.Context) {
	var payload deleteFileRequest
	if !bindJSON(c, &payload, msgInvalidBody) {
		return
	}

	if err := a.assets.DeleteFile(payload.FilePath); err != nil {
		switch {
		case errors.Is(err, service.ErrAssetNotFound):
			respondError(c, http.StatusNotFound, "File not found")
		case errors.Is(err, service.ErrInvalidPath):
			respondError(c, http.StatusBadRequest, msgInvalidPath)
		default:
			a.respondInternal(c, "Failed to delete file", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}
