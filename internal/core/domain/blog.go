package domain

import "time"

// BlogPost is an article owned by its author.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID satisfies policy.Resource.
func (p *BlogPost) OwnerID() string { return p.AuthorID }
