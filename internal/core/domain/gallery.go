package domain

import "time"

// GalleryItem is an uploaded image owned by its uploader. The image bytes
// live in the blob store; only the URL is persisted here.
type GalleryItem struct {
	ID           string    `json:"id"`
	ImageURL     string    `json:"image_url"`
	UploadedByID string    `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnerID satisfies policy.Resource.
func (g *GalleryItem) OwnerID() string { return g.UploadedByID }
