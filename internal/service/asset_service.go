package service

import (
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	_ "golang.org/x/image/webp" // registers the webp decoder for image.DecodeConfig
)

// MaxUploadSize is the largest accepted upload, in bytes.
const MaxUploadSize int64 = 50 << 20

const (
	ScopeMain     = "main"
	ScopeSubpages = "subpages"
)

var (
	ErrNoFileUploaded      = errors.New("no file uploaded")
	ErrExtensionNotAllowed = errors.New("only .webp and .webm files are allowed")
	ErrFileTooLarge        = errors.New("file too large")
	ErrInvalidCategory     = errors.New("category must be a single path segment")
	ErrInvalidPath         = errors.New("path is invalid")
	ErrAssetNotFound       = errors.New("file not found")
)

var allowedAssetExtensions = map[string]bool{
	".webp": true,
	".webm": true,
}

// DefaultCategories are created under every scope at startup.
var DefaultCategories = []string{"images", "videos"}

// UploadResult describes a stored upload.
type UploadResult struct {
	Path     string
	Filename string
	Size     int64
	MIME     string
	Width    int
	Height   int
}

// AssetFile is one entry of a directory listing.
type AssetFile struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// AssetService stores uploaded media under the public asset tree.
type AssetService struct {
	rootDir   string
	publicDir string
	log       *zap.Logger
}

// NewAssetService creates an AssetService. A relative publicDir is resolved
// against rootDir.
func NewAssetService(rootDir, publicDir string, log *zap.Logger) *AssetService {
	if rootDir == "" {
		rootDir = "."
	}
	if publicDir == "" {
		publicDir = "public"
	}
	if !filepath.IsAbs(publicDir) {
		publicDir = filepath.Join(rootDir, publicDir)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AssetService{
		rootDir:   filepath.Clean(rootDir),
		publicDir: filepath.Clean(publicDir),
		log:       log,
	}
}

// PublicDir returns the directory static assets are served from.
func (s *AssetService) PublicDir() string {
	return s.publicDir
}

// Scope maps a requested media type to its directory; anything other than
// "main" belongs to the subpages tree.
func Scope(mediaType string) string {
	if mediaType == ScopeMain {
		return ScopeMain
	}
	return ScopeSubpages
}

// AllowedAsset reports whether filename carries an accepted extension.
func AllowedAsset(filename string) bool {
	return allowedAssetExtensions[strings.ToLower(filepath.Ext(filename))]
}

func validCategory(category string) bool {
	if category == "" || category == "." || category == ".." {
		return false
	}
	return !strings.ContainsAny(category, `/\`)
}

func (s *AssetService) assetDir(mediaType, category string) (string, string, error) {
	if !validCategory(category) {
		return "", "", ErrInvalidCategory
	}
	scope := Scope(mediaType)
	return filepath.Join(s.publicDir, "assets", scope, category), scope, nil
}

// Save validates and stores an uploaded file under
// assets/{scope}/{category}/{original filename}, replacing any existing file
// with the same name.
func (s *AssetService) Save(mediaType, category string, header *multipart.FileHeader) (UploadResult, error) {
	if header == nil {
		return UploadResult{}, ErrNoFileUploaded
	}

	filename := filepath.Base(filepath.FromSlash(header.Filename))
	if filename == "." || filename == ".." || filename == string(filepath.Separator) {
		return UploadResult{}, ErrNoFileUploaded
	}
	if !AllowedAsset(filename) {
		return UploadResult{}, ErrExtensionNotAllowed
	}
	if header.Size > MaxUploadSize {
		return UploadResult{}, ErrFileTooLarge
	}

	dir, scope, err := s.assetDir(mediaType, category)
	if err != nil {
		return UploadResult{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return UploadResult{}, fmt.Errorf("create asset directory: %w", err)
	}

	src, err := header.Open()
	if err != nil {
		return UploadResult{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	target := filepath.Join(dir, filename)
	size, err := writeAtomically(target, src)
	if err != nil {
		return UploadResult{}, err
	}

	result := UploadResult{
		Path:     path.Join("/assets", scope, category, filename),
		Filename: filename,
		Size:     size,
	}
	if mtype, err := mimetype.DetectFile(target); err == nil {
		result.MIME = mtype.String()
	}
	if strings.EqualFold(filepath.Ext(filename), ".webp") {
		result.Width, result.Height = probeDimensions(target)
	}

	s.log.Info("asset stored",
		zap.String("path", result.Path),
		zap.Int64("size", size),
		zap.String("mime", result.MIME),
	)
	return result, nil
}

// writeAtomically copies src into a temp file next to target and renames it
// into place. Nothing is left behind when the copy fails or exceeds
// MaxUploadSize.
func writeAtomically(target string, src io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	size, err := io.Copy(tmp, io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		cleanup()
		return 0, fmt.Errorf("write upload: %w", err)
	}
	if size > MaxUploadSize {
		cleanup()
		return 0, ErrFileTooLarge
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("close upload: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("chmod upload: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("move upload into place: %w", err)
	}
	return size, nil
}

func probeDimensions(file string) (int, int) {
	f, err := os.Open(file)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// ListFiles returns the .webp/.webm files stored for a scope and category.
// A missing directory yields an empty list.
func (s *AssetService) ListFiles(mediaType, category string) ([]AssetFile, error) {
	dir, scope, err := s.assetDir(mediaType, category)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []AssetFile{}, nil
		}
		return nil, err
	}

	files := make([]AssetFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !AllowedAsset(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files = append(files, AssetFile{
			Name:     entry.Name(),
			Path:     path.Join("/assets", scope, category, entry.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	return files, nil
}

// DeleteFile removes a file addressed relative to the public directory.
func (s *AssetService) DeleteFile(relPath string) error {
	full, err := resolveWithin(s.publicDir, relPath)
	if err != nil {
		return err
	}

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrAssetNotFound
		}
		return err
	}
	if info.IsDir() {
		return ErrInvalidPath
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrAssetNotFound
		}
		return err
	}

	s.log.Info("asset deleted", zap.String("path", relPath))
	return nil
}

// CreateDirectory creates relPath, relative to the server root, with parents.
func (s *AssetService) CreateDirectory(relPath string) error {
	full, err := resolveWithin(s.rootDir, relPath)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, 0o755)
}

// EnsureDefaultDirs creates assets/{main,subpages}/{images,videos}.
func (s *AssetService) EnsureDefaultDirs() error {
	for _, scope := range []string{ScopeMain, ScopeSubpages} {
		for _, category := range DefaultCategories {
			dir := filepath.Join(s.publicDir, "assets", scope, category)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
	}
	return nil
}

// resolveWithin joins relPath onto base and rejects results outside base.
func resolveWithin(base, relPath string) (string, error) {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" {
		return "", ErrInvalidPath
	}

	full := filepath.Join(base, filepath.FromSlash(trimmed))
	rel, err := filepath.Rel(base, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
