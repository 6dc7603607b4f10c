package model

import "time"

type MappingRole string

const (
	MappingPrimary   MappingRole = "primary"
	MappingSecondary MappingRole = "secondary"
	MappingSupport   MappingRole = "support"
)

// UserSystemMapping assigns a user to a system in a role.
// The same (user, system) pair may appear more than once.
type UserSystemMapping struct {
	BaseModel
	UserID     string      `gorm:"type:varchar(64);index" json:"user_id" validate:"required"`
	SystemID   string      `gorm:"type:varchar(64);index" json:"system_id" validate:"required"`
	Role       MappingRole `gorm:"type:varchar(20)" json:"role" validate:"required,oneof=primary secondary support"`
	AssignedAt time.Time   `json:"assigned_at"`
}

func (UserSystemMapping) TableName() string {
	return "user_system_mappings"
}

var DefaultMappings = []UserSystemMapping{
	{BaseModel: seeded("m1", "system", date(2024, 1, 10), date(2024, 1, 10)), UserID: "u1", SystemID: "s1", Role: MappingPrimary, AssignedAt: date(2024, 1, 10)},
	{BaseModel: seeded("m2", "system", date(2024, 1, 10), date(2024, 1, 10)), UserID: "u1", SystemID: "s4", Role: MappingSecondary, AssignedAt: date(2024, 1, 10)},
	{BaseModel: seeded("m3", "system", date(2024, 1, 16), date(2024, 1, 16)), UserID: "u2", SystemID: "s4", Role: MappingPrimary, AssignedAt: date(2024, 1, 16)},
	{BaseModel: seeded("m4", "system", date(2024, 1, 16), date(2024, 1, 16)), UserID: "u2", SystemID: "s2", Role: MappingSupport, AssignedAt: date(2024, 1, 16)},
	{BaseModel: seeded("m5", "system", date(2024, 2, 2), date(2024, 2, 2)), UserID: "u3", SystemID: "s1", Role: MappingSecondary, AssignedAt: date(2024, 2, 2)},
	{BaseModel: seeded("m6", "system", date(2024, 2, 13), date(2024, 2, 13)), UserID: "u4", SystemID: "s2", Role: MappingPrimary, AssignedAt: date(2024, 2, 13)},
}
