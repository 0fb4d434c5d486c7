package gallery

import "time"

type Gallery struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	IsPublic  bool      `json:"is_public" db:"is_public"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Summary is the compact gallery representation embedded in folder
// responses, so clients can show which gallery a folder belongs to
// without a second request.
type Summary struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id"`
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

// Summarize converts a full gallery record into its summary form.
func (g *Gallery) Summarize() *Summary {
	return &Summary{
		ID:       g.ID,
		OwnerID:  g.OwnerID,
		Name:     g.Name,
		IsPublic: g.IsPublic,
	}
}
