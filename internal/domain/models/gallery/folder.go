package gallery

import (
	"time"
)

// DefaultFolderName is used when a folder is created without a name.
const DefaultFolderName = "New Folder"

// Folder is one node of a gallery's folder tree. Folders are stored as
// flat rows keyed by ID with a parent_id back-reference; children and
// photo lists are derived by query, never stored on the row.
type Folder struct {
	ID           string     `json:"id" db:"id"`
	GalleryID    string     `json:"gallery_id" db:"gallery_id"`
	ParentID     *string    `json:"parent_id" db:"parent_id"` // NULL = root folder
	Name         string     `json:"name" db:"name"`
	CoverPhotoID *string    `json:"cover_photo_id" db:"cover_photo_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
