package author

import "time"

// Author is a credited writer or artist. Comics reference authors by id.
type Author struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	NameAlt   []string   `json:"name_alt"`
	Bio       *string    `json:"bio,omitempty"`
	ImageURL  *string    `json:"image_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Filter narrows an author listing.
type Filter struct {
	Query string // case-insensitive match on name or any alternate name
}

const (
	FieldID       = "id"
	FieldName     = "name"
	FieldNameAlt  = "name_alt"
	FieldBio      = "bio"
	FieldImageURL = "image_url"
)
