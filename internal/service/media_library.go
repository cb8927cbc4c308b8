package service

import (
	"encoding/json"
	"errors"
	"path"
	"strings"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/kondzio-p/ftbd-blt/internal/db"
	"github.com/kondzio-p/ftbd-blt/internal/kvstore"
	"go.uber.org/zap"
)

var (
	ErrMediaNotFound    = errors.New("media item not found")
	ErrMediaPathMissing = errors.New("media path is required")
)

var (
	imageExtensions = map[string]bool{
		".webp": true, ".png": true, ".jpg": true, ".jpeg": true,
		".gif": true, ".svg": true, ".avif": true,
	}
	videoExtensions = map[string]bool{
		".webm": true, ".mp4": true, ".mov": true, ".ogv": true, ".m4v": true,
	}
)

// ClassifyMedia derives a media type from the extension of name.
func ClassifyMedia(name string) db.MediaType {
	ext := strings.ToLower(path.Ext(name))
	switch {
	case imageExtensions[ext]:
		return db.MediaTypeImage
	case videoExtensions[ext]:
		return db.MediaTypeVideo
	default:
		return db.MediaTypeOther
	}
}

// ClassifyUpload prefers a sniffed MIME type and falls back to the extension.
func ClassifyUpload(name, mime string) db.MediaType {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return db.MediaTypeImage
	case strings.HasPrefix(mime, "video/"):
		return db.MediaTypeVideo
	default:
		return ClassifyMedia(name)
	}
}

// MediaLibrary is the locally persisted list of registered assets, newest
// first. Items are immutable once added.
type MediaLibrary struct {
	mu     sync.Mutex
	kv     kvstore.Store
	log    *zap.Logger
	items  []db.MediaItem
	loaded bool
}

// NewMediaLibrary returns a library backed by kv.
func NewMediaLibrary(kv kvstore.Store, log *zap.Logger) *MediaLibrary {
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaLibrary{kv: kv, log: log}
}

// Load hydrates the list; missing or corrupt data yields an empty library.
func (l *MediaLibrary) Load() []db.MediaItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = l.readPersisted()
	l.loaded = true
	return l.snapshot()
}

func (l *MediaLibrary) readPersisted() []db.MediaItem {
	raw, err := l.kv.Get(kvstore.KeyMediaLibrary)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			l.log.Warn("reading media library failed, starting empty", zap.Error(err))
		}
		return []db.MediaItem{}
	}

	var items []db.MediaItem
	if err := json.Unmarshal(raw, &items); err != nil {
		l.log.Warn("media library is corrupt, starting empty", zap.Error(err))
		return []db.MediaItem{}
	}
	if items == nil {
		items = []db.MediaItem{}
	}
	return items
}

func (l *MediaLibrary) ensureLoaded() {
	if !l.loaded {
		l.items = l.readPersisted()
		l.loaded = true
	}
}

func (l *MediaLibrary) save() {
	raw, err := json.Marshal(l.items)
	if err != nil {
		l.log.Warn("serializing media library failed", zap.Error(err))
		return
	}
	if err := l.kv.Set(kvstore.KeyMediaLibrary, raw); err != nil {
		l.log.Warn("persisting media library failed, keeping in-memory copy", zap.Error(err))
	}
}

func (l *MediaLibrary) snapshot() []db.MediaItem {
	return append([]db.MediaItem{}, l.items...)
}

// List returns all items, newest first.
func (l *MediaLibrary) List() []db.MediaItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureLoaded()
	return l.snapshot()
}

// Add prepends item and persists. A missing id, name or type is filled in.
func (l *MediaLibrary) Add(item db.MediaItem) (db.MediaItem, error) {
	item.Path = strings.TrimSpace(item.Path)
	if item.Path == "" {
		return db.MediaItem{}, ErrMediaPathMissing
	}
	if item.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return db.MediaItem{}, err
		}
		item.ID = id
	}
	if item.Name == "" {
		item.Name = path.Base(item.Path)
	}
	if item.Type == "" {
		item.Type = ClassifyMedia(item.Name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureLoaded()

	l.items = append([]db.MediaItem{item}, l.items...)
	l.save()
	return item, nil
}

// Register adds an item for an existing file given only its public path.
func (l *MediaLibrary) Register(publicPath string) (db.MediaItem, error) {
	trimmed := strings.TrimSpace(publicPath)
	if trimmed == "" {
		return db.MediaItem{}, ErrMediaPathMissing
	}
	name := path.Base(trimmed)
	return l.Add(db.MediaItem{
		Name: name,
		Type: ClassifyMedia(name),
		Path: trimmed,
	})
}

// Remove deletes the item with the given id.
func (l *MediaLibrary) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureLoaded()

	for i, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.save()
			return nil
		}
	}
	return ErrMediaNotFound
}
