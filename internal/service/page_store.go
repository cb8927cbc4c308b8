package service

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/kondzio-p/ftbd-blt/internal/db"
	"github.com/kondzio-p/ftbd-blt/internal/kvstore"
	"go.uber.org/zap"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrSlugTaken    = errors.New("slug already in use")
)

// PageStore owns the in-memory page collection and mirrors it to the
// key-value store after every mutation. The in-memory copy is authoritative;
// persistence is best effort.
type PageStore struct {
	mu     sync.Mutex
	kv     kvstore.Store
	log    *zap.Logger
	pages  []db.PageRecord
	loaded bool
}

// NewPageStore returns a store backed by kv. Nothing is read until Load or
// the first accessor call.
func NewPageStore(kv kvstore.Store, log *zap.Logger) *PageStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageStore{kv: kv, log: log}
}

// Load hydrates the collection from the key-value store. Missing or corrupt
// data is replaced by the built-in home record; Load never fails.
func (s *PageStore) Load() []db.PageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages = s.readPersisted()
	s.loaded = true
	return db.ClonePages(s.pages)
}

func (s *PageStore) readPersisted() []db.PageRecord {
	raw, err := s.kv.Get(kvstore.KeyPages)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.log.Warn("reading persisted pages failed, using defaults", zap.Error(err))
		}
		return DefaultPages()
	}

	var pages []db.PageRecord
	if err := json.Unmarshal(raw, &pages); err != nil {
		s.log.Warn("persisted pages are corrupt, using defaults", zap.Error(err))
		return DefaultPages()
	}

	for _, page := range pages {
		if page.IsHome() {
			return pages
		}
	}
	s.log.Warn("persisted pages have no home record, restoring default home")
	return append(DefaultPages(), pages...)
}

func (s *PageStore) ensureLoaded() {
	if !s.loaded {
		s.pages = s.readPersisted()
		s.loaded = true
	}
}

// save writes the whole collection. Failures are logged and swallowed.
func (s *PageStore) save() {
	raw, err := json.Marshal(s.pages)
	if err != nil {
		s.log.Warn("serializing pages failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(kvstore.KeyPages, raw); err != nil {
		s.log.Warn("persisting pages failed, keeping in-memory copy", zap.Error(err))
	}
}

// All returns a copy of the collection in insertion order.
func (s *PageStore) All() []db.PageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return db.ClonePages(s.pages)
}

// GetPageData returns the record whose slug equals slug exactly.
func (s *PageStore) GetPageData(slug string) (db.PageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	for _, page := range s.pages {
		if page.Slug == slug {
			return page.Clone(), nil
		}
	}
	return db.PageRecord{}, ErrPageNotFound
}

// GetByID returns the record with the given id.
func (s *PageStore) GetByID(id string) (db.PageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	if idx := s.indexOf(id); idx >= 0 {
		return s.pages[idx].Clone(), nil
	}
	return db.PageRecord{}, ErrPageNotFound
}

// SlugExists reports whether any record uses slug.
func (s *PageStore) SlugExists(slug string) bool {
	_, err := s.GetPageData(slug)
	return err == nil
}

// UpdatePageData replaces the record with the given id and persists. An
// unknown id is ignored; the return value reports whether a record changed.
// The stored id always stays id, whatever record carries.
func (s *PageStore) UpdatePageData(id string, record db.PageRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	updated := record.Clone()
	updated.ID = id
	s.pages[idx] = updated
	s.save()
	return true
}

// AddNewSubPage appends a subpage seeded from independent copies of the
// home record's content. rawSlug gets a leading "/" when missing. Slug
// uniqueness is the caller's responsibility.
func (s *PageStore) AddNewSubPage(name, rawSlug string) db.PageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	base := DefaultHomePage()
	for _, page := range s.pages {
		if page.IsHome() {
			base = page.Clone()
			break
		}
	}

	page := db.PageRecord{
		ID:             uuid.NewString(),
		Name:           name,
		Slug:           NormalizeSlug(rawSlug),
		Navigation:     base.Navigation,
		Videos:         base.Videos,
		WelcomeSection: base.WelcomeSection,
		Stats:          base.Stats,
		Gallery:        base.Gallery,
		Locations:      base.Locations,
		Footer:         base.Footer,
	}

	s.pages = append(s.pages, page)
	s.save()
	return page.Clone()
}

// RemoveSubPage deletes the record with the given id unless it is the home
// page. It reports whether a record was removed.
func (s *PageStore) RemoveSubPage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	for i, page := range s.pages {
		if page.ID == id && !page.IsHome() {
			s.pages = append(s.pages[:i], s.pages[i+1:]...)
			s.save()
			return true
		}
	}
	return false
}

func (s *PageStore) indexOf(id string) int {
	for i, page := range s.pages {
		if page.ID == id {
			return i
		}
	}
	return -1
}

// NormalizeSlug prefixes slug with "/" when it does not start with one.
func NormalizeSlug(slug string) string {
	if strings.HasPrefix(slug, "/") {
		return slug
	}
	return "/" + slug
}
