package db

// MediaType classifies a registered asset.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeOther MediaType = "other"
)

// MediaItem is a media library entry. It only references an asset by path;
// pages copy the path into their own fields and are never updated when the
// item is removed.
type MediaItem struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    MediaType `json:"type"`
	Path    string    `json:"path"`
	Preview string    `json:"preview,omitempty"`
}
