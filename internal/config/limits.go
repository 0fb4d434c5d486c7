package config

const (
	// MaxGalleryNameLength is the maximum length for gallery names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxGalleryNameLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same as gallery names for consistency.
	MaxFolderNameLength = 255

	// MaxPhotoFileNameLength is the maximum length for photo file names.
	MaxPhotoFileNameLength = 255

	// MaxLogFiles is how many rotated server log files to keep when
	// file logging is enabled.
	MaxLogFiles = 10
)
