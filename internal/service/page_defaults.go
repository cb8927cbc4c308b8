package service

import "github.com/kondzio-p/ftbd-blt/internal/db"

// HomePageID is the id of the built-in home record.
const HomePageID = "main"

func startAt(seconds float64) *float64 {
	return &seconds
}

// DefaultHomePage returns the built-in home record used whenever nothing
// usable is persisted.
func DefaultHomePage() db.PageRecord {
	return db.PageRecord{
		ID:   HomePageID,
		Name: "Strona główna",
		Slug: db.HomeSlug,
		Navigation: db.Navigation{
			FacebookURL:  "https://www.facebook.com/profile.php?id=61553668165091",
			InstagramURL: "https://www.instagram.com/og.eventspot/",
		},
		Videos: []db.Video{
			{Src: "/assets/main/videos/film1.webm", Alt: "Event video 1", StartTime: startAt(7)},
			{Src: "/assets/main/videos/film2.webm", Alt: "Event video 2", StartTime: startAt(3)},
			{Src: "/assets/main/videos/film1.webm", Alt: "Event video 3", StartTime: startAt(2)},
			{Src: "/assets/main/videos/film2.webm", Alt: "Event video 4", StartTime: startAt(4)},
		},
		WelcomeSection: db.WelcomeSection{
			WelcomeText: "Fotobudka OG Event Spot!",
			Subtitle:    "Dopełniamy, by na Twoim wydarzeniu nie zabrakło Atrakcji!",
		},
		Stats: db.Stats{
			ClientsCount:  "200+",
			YearsOnMarket: "5 lat",
			SmilesCount:   "∞",
		},
		Gallery: db.Gallery{Images: []db.Image{
			{Src: "/assets/main/images/360.png", Alt: "Gallery image 1"},
			{Src: "/assets/main/images/mirror.jpg", Alt: "Gallery image 2"},
			{Src: "/assets/main/images/heavysmoke.jpg", Alt: "Gallery image 3"},
			{Src: "/assets/main/images/fountain.jpg", Alt: "Gallery image 4"},
			{Src: "/assets/main/images/neons.jpg", Alt: "Gallery image 5"},
		}},
		Locations: db.Locations{Cities: []string{
			"Chojnice", "Gdańsk", "Sopot", "Gdynia", "Bytów", "Kartuzy", "Kościerzyna", "Słupsk",
			"Lębork", "Ustka", "Malbork", "Tczew", "Wejherowo", "Puck", "Hel", "Starogard Gdański",
		}},
		Footer: db.Footer{
			FacebookURL:   "https://www.facebook.com/profile.php?id=61553668165091",
			FacebookText:  "@OG Eventspot",
			InstagramURL:  "https://www.instagram.com/og.eventspot/",
			InstagramText: "@og.eventspot",
			PhoneNumber:   "576 934 594",
		},
	}
}

// DefaultPages is the collection used when nothing is persisted.
func DefaultPages() []db.PageRecord {
	return []db.PageRecord{DefaultHomePage()}
}
