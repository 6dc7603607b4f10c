package model

import (
	"time"
)

// DefaultOperator is recorded in audit fields when a request carries no operator token
const DefaultOperator = "admin"

// BaseModel handles the record ID, insertion order and the audit trail shown on every panel
type BaseModel struct {
	ID  string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Seq int64  `gorm:"index" json:"-"` // insertion order

	// Timestamps are set by the services, not by gorm
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`

	// Audit User Tracking
	CreatedBy string `gorm:"type:varchar(100)" json:"created_by"`
	UpdatedBy string `gorm:"type:varchar(100)" json:"updated_by"`
}

func (base *BaseModel) GetID() string {
	return base.ID
}

func (base *BaseModel) SetID(id string) {
	base.ID = id
}

func (base *BaseModel) SetSeq(seq int64) {
	base.Seq = seq
}

// StampCreated fills both audit pairs for a freshly created record
func (base *BaseModel) StampCreated(actor string, at time.Time) {
	base.CreatedAt = at
	base.UpdatedAt = at
	base.CreatedBy = actor
	base.UpdatedBy = actor
}

// StampUpdated refreshes the update audit pair
func (base *BaseModel) StampUpdated(actor string, at time.Time) {
	base.UpdatedAt = at
	base.UpdatedBy = actor
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
}

// seeded returns a BaseModel for mock data with a fixed id and audit trail
func seeded(id, actor string, created, updated time.Time) BaseModel {
	return BaseModel{
		ID:        id,
		CreatedAt: created,
		UpdatedAt: updated,
		CreatedBy: actor,
		UpdatedBy: actor,
	}
}
