package handler

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

func TestUploadFileReturnsPublicPath(t *testing.T) {
	api, root := setupTestAPI(t)

	req := uploadRequest(t, "/api/upload-file", "photo.webp", []byte("RIFF-fake-webp"), map[string]string{
		"mediaType": "main",
		"category":  "images",
	})
	w := call(api.UploadFile, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[uploadResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "File uploaded successfully", resp.Message)
	assert.Equal(t, "/assets/main/images/photo.webp", resp.Path)
	assert.Equal(t, "photo.webp", resp.Filename)
	assert.Equal(t, int64(14), resp.Size)
	assert.FileExists(t, filepath.Join(root, "public", "assets", "main", "images", "photo.webp"))
}

func TestUploadFileNonMainGoesToSubpages(t *testing.T) {
	api, _ := setupTestAPI(t)

	req := uploadRequest(t, "/api/upload-file", "promo.webm", []byte("webm"), map[string]string{
		"mediaType": "subpages-indicator",
		"category":  "videos",
	})
	w := call(api.UploadFile, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/assets/subpages/videos/promo.webm", decode[uploadResponse](t, w).Path)
}

func TestUploadFileRejectsDisallowedExtension(t *testing.T) {
	api, root := setupTestAPI(t)

	req := uploadRequest(t, "/api/upload-file", "clip.mp4", []byte("mp4"), map[string]string{
		"mediaType": "main",
		"category":  "videos",
	})
	w := call(api.UploadFile, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only .webp and .webm files are allowed", errorMessage(t, w))
	assert.NoDirExists(t, filepath.Join(root, "public", "assets", "main", "videos"))
}

func TestUploadFileRejectsOversizeFile(t *testing.T) {
	api, root := setupTestAPI(t)

	content := bytes.Repeat([]byte{0}, 51<<20)
	req := uploadRequest(t, "/api/upload-file", "huge.webm", content, map[string]string{
		"mediaType": "main",
		"category":  "videos",
	})
	w := call(api.UploadFile, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File too large. Maximum size is 50MB.", errorMessage(t, w))
	assert.NoDirExists(t, filepath.Join(root, "public", "assets"))
}

func TestUploadFileWithoutFile(t *testing.T) {
	api, _ := setupTestAPI(t)

	req := uploadRequest(t, "/api/upload-file", "", nil, map[string]string{"mediaType": "main", "category": "images"})
	w := call(api.UploadFile, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", errorMessage(t, w))

	w = call(api.UploadFile, jsonRequest(t, http.MethodPost, "/api/upload-file", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", errorMessage(t, w))
}

func TestUploadFileRejectsBadCategory(t *testing.T) {
	api, _ := setupTestAPI(t)

	req := uploadRequest(t, "/api/upload-file", "a.webp", []byte("x"), map[string]string{
		"mediaType": "main",
		"category":  "../../etc",
	})
	w := call(api.UploadFile, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFilesMissingDirectory(t *testing.T) {
	api, _ := setupTestAPI(t)

	w := call(api.ListFiles, jsonRequest(t, http.MethodGet, "/api/list-files/main/nothing", nil),
		gin.Param{Key: "mediaType", Value: "main"},
		gin.Param{Key: "category", Value: "nothing"},
	)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"files":[]}`, w.Body.String())
}

func TestListFilesAfterUpload(t *testing.T) {
	api, _ := setupTestAPI(t)
	req := uploadRequest(t, "/api/upload-file", "b.webp", []byte("bb"), map[string]string{"mediaType": "main", "category": "images"})
	require.Equal(t, http.StatusOK, call(api.UploadFile, req).Code)

	w := call(api.ListFiles, jsonRequest(t, http.MethodGet, "/api/list-files/main/images", nil),
		gin.Param{Key: "mediaType", Value: "main"},
		gin.Param{Key: "category", Value: "images"},
	)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Files []struct {
			Name     string `json:"name"`
			Path     string `json:"path"`
			Size     int64  `json:"size"`
			Modified string `json:"modified"`
		} `json:"files"`
	}](t, w)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "b.webp", resp.Files[0].Name)
	assert.Equal(t, "/assets/main/images/b.webp", resp.Files[0].Path)
	assert.Equal(t, int64(2), resp.Files[0].Size)
	assert.NotEmpty(t, resp.Files[0].Modified)
}

func TestDeleteFile(t *testing.T) {
	api, root := setupTestAPI(t)
	req := uploadRequest(t, "/api/upload-file", "gone.webp", []byte("x"), map[string]string{"mediaType": "main", "category": "images"})
	require.Equal(t, http.StatusOK, call(api.UploadFile, req).Code)

	w := call(api.DeleteFile, jsonRequest(t, http.MethodDelete, "/api/delete-file", map[string]string{
		"filePath": "/assets/main/images/gone.webp",
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"File deleted successfully"}`, w.Body.String())
	_, err := os.Stat(filepath.Join(root, "public", "assets", "main", "images", "gone.webp"))
	assert.True(t, os.IsNotExist(err))

	w = call(api.DeleteFile, jsonRequest(t, http.MethodDelete, "/api/delete-file", map[string]string{
		"filePath": "/assets/main/images/gone.webp",
	}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found", errorMessage(t, w))

	w = call(api.DeleteFile, jsonRequest(t, http.MethodDelete, "/api/delete-file", map[string]string{
		"filePath": "../../secret.webp",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDirectory(t *testing.T) {
	api, root := setupTestAPI(t)

	w := call(api.CreateDirectory, jsonRequest(t, http.MethodPost, "/api/create-directory", map[string]string{
		"path": "public/assets/main/events",
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Directory created: public/assets/main/events"}`, w.Body.String())
	assert.DirExists(t, filepath.Join(root, "public", "assets", "main", "events"))

	w = call(api.CreateDirectory, jsonRequest(t, http.MethodPost, "/api/create-directory", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(api.CreateDirectory, jsonRequest(t, http.MethodPost, "/api/create-directory", map[string]string{"path": "../x"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
