package service

import (
	"errors"
	"html"
	"strings"

	"github.com/kondzio-p/ftbd-blt/internal/db"
	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrPageNameMissing   = errors.New("page name is required")
	ErrPageSlugMissing   = errors.New("page slug is required")
	ErrHomePageProtected = errors.New("home page is protected")
)

var textPolicy = bluemonday.StrictPolicy()

// PrepareSubPage validates input for a new subpage. The name loses any
// markup and an empty slug is derived from it. The returned slug starts with
// "/" and is not yet used.
func (s *PageStore) PrepareSubPage(name, rawSlug string) (string, string, error) {
	name = strings.TrimSpace(plainText(name))
	if name == "" {
		return "", "", ErrPageNameMissing
	}

	rawSlug = strings.TrimSpace(rawSlug)
	if rawSlug == "" {
		rawSlug = GenerateSlugFromName(name)
	}
	slug := NormalizeSlug(rawSlug)
	if slug == db.HomeSlug {
		return "", "", ErrPageSlugMissing
	}
	if s.SlugExists(slug) {
		return "", "", ErrSlugTaken
	}
	return name, slug, nil
}

// CheckSlug validates the slug a full update would give record id: the home
// page keeps "/", subpages keep a unique "/"-prefixed slug.
func (s *PageStore) CheckSlug(id, slug string) error {
	current, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if current.IsHome() {
		if slug != db.HomeSlug {
			return ErrHomePageProtected
		}
		return nil
	}

	if slug == "" || slug == db.HomeSlug || !strings.HasPrefix(slug, "/") {
		return ErrPageSlugMissing
	}
	other, err := s.GetPageData(slug)
	if err == nil && other.ID != id {
		return ErrSlugTaken
	}
	return nil
}

// SanitizePageText strips markup from every free-text field. Links and
// media paths are left as entered.
func SanitizePageText(page db.PageRecord) db.PageRecord {
	out := page.Clone()
	out.Name = plainText(out.Name)
	out.WelcomeSection.WelcomeText = plainText(out.WelcomeSection.WelcomeText)
	out.WelcomeSection.Subtitle = plainText(out.WelcomeSection.Subtitle)
	out.Stats.ClientsCount = plainText(out.Stats.ClientsCount)
	out.Stats.YearsOnMarket = plainText(out.Stats.YearsOnMarket)
	out.Stats.SmilesCount = plainText(out.Stats.SmilesCount)
	out.Footer.FacebookText = plainText(out.Footer.FacebookText)
	out.Footer.InstagramText = plainText(out.Footer.InstagramText)
	out.Footer.PhoneNumber = plainText(out.Footer.PhoneNumber)
	for i := range out.Videos {
		out.Videos[i].Alt = plainText(out.Videos[i].Alt)
	}
	for i := range out.Gallery.Images {
		out.Gallery.Images[i].Alt = plainText(out.Gallery.Images[i].Alt)
	}
	for i := range out.Locations.Cities {
		out.Locations.Cities[i] = plainText(out.Locations.Cities[i])
	}
	return out
}

// plainText removes tags; entities are unescaped again since the value is
// stored as text, not HTML.
func plainText(value string) string {
	if !strings.ContainsAny(value, "<>") {
		return value
	}
	return html.UnescapeString(textPolicy.Sanitize(value))
}
