package db

// HomeSlug is the slug reserved for the home page.
const HomeSlug = "/"

// Navigation holds the header's external link targets.
type Navigation struct {
	FacebookURL  string `json:"facebookUrl"`
	InstagramURL string `json:"instagramUrl"`
}

// Video is one entry of the page's video strip. StartTime is the second
// the player seeks to on load and replay.
type Video struct {
	Src       string   `json:"src"`
	Alt       string   `json:"alt"`
	StartTime *float64 `json:"startTime,omitempty"`
}

// WelcomeSection is the headline block.
type WelcomeSection struct {
	WelcomeText string `json:"welcomeText"`
	Subtitle    string `json:"subtitle"`
}

// Stats are display strings, not numbers ("200+", "5 lat", "∞").
type Stats struct {
	ClientsCount  string `json:"clientsCount"`
	YearsOnMarket string `json:"yearsOnMarket"`
	SmilesCount   string `json:"smilesCount"`
}

// Image is a gallery picture.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Gallery wraps the ordered gallery images.
type Gallery struct {
	Images []Image `json:"images"`
}

// Locations wraps the ordered list of served cities.
type Locations struct {
	Cities []string `json:"cities"`
}

// Footer holds contact details shown at the bottom of every page.
type Footer struct {
	FacebookURL   string `json:"facebookUrl"`
	FacebookText  string `json:"facebookText"`
	InstagramURL  string `json:"instagramUrl"`
	InstagramText string `json:"instagramText"`
	PhoneNumber   string `json:"phoneNumber"`
}

// PageRecord is the full content of one site page, either the home page or
// a city subpage.
type PageRecord struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	Navigation     Navigation     `json:"navigation"`
	Videos         []Video        `json:"videos"`
	WelcomeSection WelcomeSection `json:"welcomeSection"`
	Stats          Stats          `json:"stats"`
	Gallery        Gallery        `json:"gallery"`
	Locations      Locations      `json:"locations"`
	Footer         Footer         `json:"footer"`
}

// IsHome reports whether the record is the home page.
func (p PageRecord) IsHome() bool {
	return p.Slug == HomeSlug
}

// Clone returns a deep copy; slices and start times are not shared with p.
func (p PageRecord) Clone() PageRecord {
	out := p
	out.Videos = cloneVideos(p.Videos)
	out.Gallery.Images = append([]Image(nil), p.Gallery.Images...)
	out.Locations.Cities = append([]string(nil), p.Locations.Cities...)
	if p.Gallery.Images != nil && out.Gallery.Images == nil {
		out.Gallery.Images = []Image{}
	}
	if p.Locations.Cities != nil && out.Locations.Cities == nil {
		out.Locations.Cities = []string{}
	}
	return out
}

func cloneVideos(in []Video) []Video {
	if in == nil {
		return nil
	}
	out := make([]Video, len(in))
	for i, v := range in {
		out[i] = v
		if v.StartTime != nil {
			start := *v.StartTime
			out[i].StartTime = &start
		}
	}
	return out
}

// ClonePages deep-copies a whole collection.
func ClonePages(pages []PageRecord) []PageRecord {
	out := make([]PageRecord, len(pages))
	for i, p := range pages {
		out[i] = p.Clone()
	}
	return out
}
