package domain

import "time"

// Event is a club event members can register for. The creator owns the
// event; only the creator or an admin may mutate it.
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	DateTime      time.Time `json:"date_time"`
	Venue         string    `json:"venue"`
	IsPaid        bool      `json:"is_paid"`
	Price         int       `json:"price"`
	Capacity      int       `json:"capacity"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	CreatedByID   string    `json:"created_by_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OwnerID satisfies policy.Resource.
func (e *Event) OwnerID() string { return e.CreatedByID }
