package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyWebP is a lossless WebP header describing a 3x2 image.
var tinyWebP = []byte{
	'R', 'I', 'F', 'F', 18, 0, 0, 0, 'W', 'E', 'B', 'P',
	'V', 'P', '8', 'L', 6, 0, 0, 0,
	0x2f, 0x02, 0x40, 0x00, 0x00, 0x00,
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func setupAssets(t *testing.T) (*AssetService, string) {
	t.Helper()
	root := t.TempDir()
	return NewAssetService(root, "public", nil), root
}

func TestSaveStoresUnderScopedCategory(t *testing.T) {
	assets, root := setupAssets(t)

	result, err := assets.Save("main", "images", fileHeader(t, "photo.webp", tinyWebP))
	require.NoError(t, err)
	assert.Equal(t, "/assets/main/images/photo.webp", result.Path)
	assert.Equal(t, "photo.webp", result.Filename)
	assert.Equal(t, int64(len(tinyWebP)), result.Size)
	assert.Equal(t, "image/webp", result.MIME)
	assert.Equal(t, 3, result.Width)
	assert.Equal(t, 2, result.Height)

	stored, err := os.ReadFile(filepath.Join(root, "public", "assets", "main", "images", "photo.webp"))
	require.NoError(t, err)
	assert.Equal(t, tinyWebP, stored)
}

func TestSaveTreatsUnknownMediaTypeAsSubpages(t *testing.T) {
	assets, root := setupAssets(t)

	result, err := assets.Save("subpages-indicator", "videos", fileHeader(t, "Clip.WEBM", []byte("webm")))
	require.NoError(t, err)
	assert.Equal(t, "/assets/subpages/videos/Clip.WEBM", result.Path)
	assert.Zero(t, result.Width)
	assert.FileExists(t, filepath.Join(root, "public", "assets", "subpages", "videos", "Clip.WEBM"))
}

func TestSaveOverwritesSameFilename(t *testing.T) {
	assets, root := setupAssets(t)

	_, err := assets.Save("main", "videos", fileHeader(t, "a.webm", []byte("first")))
	require.NoError(t, err)
	_, err = assets.Save("main", "videos", fileHeader(t, "a.webm", []byte("second")))
	require.NoError(t, err)

	dir := filepath.Join(root, "public", "assets", "main", "videos")
	stored, err := os.ReadFile(filepath.Join(dir, "a.webm"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(stored))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	assets, root := setupAssets(t)

	_, err := assets.Save("main", "videos", fileHeader(t, "clip.mp4", []byte("mp4")))
	assert.ErrorIs(t, err, ErrExtensionNotAllowed)
	assert.NoDirExists(t, filepath.Join(root, "public", "assets", "main", "videos"))
}

func TestSaveRejectsOversizeHeader(t *testing.T) {
	assets, root := setupAssets(t)

	header := &multipart.FileHeader{Filename: "big.webm", Size: 51 << 20}
	_, err := assets.Save("main", "videos", header)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.NoDirExists(t, filepath.Join(root, "public", "assets"))
}

func TestSaveValidatesInput(t *testing.T) {
	assets, _ := setupAssets(t)

	_, err := assets.Save("main", "images", nil)
	assert.ErrorIs(t, err, ErrNoFileUploaded)

	for _, category := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := assets.Save("main", category, fileHeader(t, "x.webp", tinyWebP))
		assert.ErrorIs(t, err, ErrInvalidCategory, "category %q", category)
	}
}

func TestListFiles(t *testing.T) {
	assets, root := setupAssets(t)

	files, err := assets.ListFiles("main", "missing")
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)

	dir := filepath.Join(root, "public", "assets", "subpages", "images")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.webp"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.webp"), []byte("aa"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.WEBM"), []byte("bbb"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.png"), []byte("c"), 0o644))

	files, err = assets.ListFiles("anything", "images")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.webp", files[0].Name)
	assert.Equal(t, "/assets/subpages/images/a.webp", files[0].Path)
	assert.Equal(t, int64(2), files[0].Size)
	assert.False(t, files[0].Modified.IsZero())
	assert.Equal(t, "b.WEBM", files[1].Name)

	_, err = assets.ListFiles("main", "..")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestDeleteFile(t *testing.T) {
	assets, root := setupAssets(t)
	_, err := assets.Save("main", "images", fileHeader(t, "photo.webp", tinyWebP))
	require.NoError(t, err)

	require.NoError(t, assets.DeleteFile("/assets/main/images/photo.webp"))
	assert.NoFileExists(t, filepath.Join(root, "public", "assets", "main", "images", "photo.webp"))

	assert.ErrorIs(t, assets.DeleteFile("assets/main/images/photo.webp"), ErrAssetNotFound)
	assert.ErrorIs(t, assets.DeleteFile("assets/main/images"), ErrInvalidPath)
	assert.ErrorIs(t, assets.DeleteFile("../outside.webp"), ErrInvalidPath)
	assert.ErrorIs(t, assets.DeleteFile(""), ErrInvalidPath)
}

func TestCreateDirectory(t *testing.T) {
	assets, root := setupAssets(t)

	require.NoError(t, assets.CreateDirectory("public/assets/main/extra"))
	assert.DirExists(t, filepath.Join(root, "public", "assets", "main", "extra"))
	require.NoError(t, assets.CreateDirectory("public/assets/main/extra"))

	assert.ErrorIs(t, assets.CreateDirectory("../../etc"), ErrInvalidPath)
	assert.ErrorIs(t, assets.CreateDirectory(" "), ErrInvalidPath)
}

func TestEnsureDefaultDirs(t *testing.T) {
	assets, root := setupAssets(t)
	require.NoError(t, assets.EnsureDefaultDirs())

	for _, scope := range []string{"main", "subpages"} {
		for _, category := range []string{"images", "videos"} {
			assert.DirExists(t, filepath.Join(root, "public", "assets", scope, category))
		}
	}
}

func TestScope(t *testing.T) {
	assert.Equal(t, "main", Scope("main"))
	assert.Equal(t, "subpages", Scope("subpages"))
	assert.Equal(t, "subpages", Scope("subpages-indicator"))
	assert.Equal(t, "subpages", Scope(""))
}
