package model

import "time"

// Version is one entry of a record's history. Histories are stored newest-first
// and index 0 is the current version.
type Version struct {
	Version   string    `json:"version"`
	Content   string    `json:"content,omitempty"`
	Changes   string    `json:"changes,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

type PublishStatus string

const (
	StatusPublished PublishStatus = "published"
	StatusDraft     PublishStatus = "draft"
)
