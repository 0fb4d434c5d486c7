package gallery

import "time"

// Tree represents a gallery's full folder tree: root folders only at the
// top level, each recursively expanded to arbitrary depth.
type Tree struct {
	GalleryID string            `json:"gallery_id"`
	Folders   []*FolderTreeNode `json:"folders"`
}

// FolderTreeNode is a folder in the tree with nested children
type FolderTreeNode struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ParentID     *string           `json:"parent_id"`
	CoverPhotoID *string           `json:"cover_photo_id"`
	CreatedAt    time.Time         `json:"created_at"`
	Folders      []*FolderTreeNode `json:"folders"` // Pointers for proper nesting
	Photos       []PhotoTreeNode   `json:"photos"`
}

// PhotoTreeNode is a photo in the tree (metadata only, no binary data)
type PhotoTreeNode struct {
	ID       string     `json:"id"`
	FileName string     `json:"file_name"`
	FolderID string     `json:"folder_id"`
	TakenAt  *time.Time `json:"taken_at"`
}
