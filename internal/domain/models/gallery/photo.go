package gallery

import "time"

// Photo is the slice of the photo record the folder subsystem needs:
// folder membership plus the timestamps used for ordering. Upload,
// storage and transcoding live elsewhere.
type Photo struct {
	ID        string     `json:"id" db:"id"`
	FolderID  string     `json:"folder_id" db:"folder_id"`
	FileName  string     `json:"file_name" db:"file_name"`
	TakenAt   *time.Time `json:"taken_at" db:"taken_at"` // capture time from EXIF, when known
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
