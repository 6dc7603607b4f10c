package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleManager  UserRole = "manager"
	UserRoleOperator UserRole = "operator"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// User is a console account listed on the user management panel
type User struct {
	BaseModel
	Name        string     `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Email       string     `gorm:"type:varchar(255);index" json:"email" validate:"required,email"`
	Department  string     `gorm:"type:varchar(100)" json:"department"`
	Role        UserRole   `gorm:"type:varchar(20)" json:"role" validate:"required,oneof=admin manager operator"`
	Status      UserStatus `gorm:"type:varchar(20)" json:"status" validate:"required,oneof=active inactive"`
	Password    string     `gorm:"type:varchar(255)" json:"-"` // Hidden from JSON
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash.
// Accounts seeded without a password can never log in.
func (u *User) CheckPassword(password string) bool {
	if u.Password == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) IsActive() bool {
	return u.Status == UserActive
}

// DefaultUsers seeds the user management panel
var DefaultUsers = []User{
	{
		BaseModel:  seeded("u1", "system", date(2024, 1, 10), date(2024, 3, 2)),
		Name:       "김관리",
		Email:      "admin@aiworker.local",
		Department: "IT운영팀",
		Role:       UserRoleAdmin,
		Status:     UserActive,
	},
	{
		BaseModel:  seeded("u2", "system", date(2024, 1, 15), date(2024, 2, 20)),
		Name:       "이운영",
		Email:      "lee.ops@aiworker.local",
		Department: "IT운영팀",
		Role:       UserRoleOperator,
		Status:     UserActive,
	},
	{
		BaseModel:  seeded("u3", "system", date(2024, 2, 1), date(2024, 2, 1)),
		Name:       "박매니저",
		Email:      "park.mgr@aiworker.local",
		Department: "경영지원팀",
		Role:       UserRoleManager,
		Status:     UserActive,
	},
	{
		BaseModel:  seeded("u4", "system", date(2024, 2, 12), date(2024, 4, 5)),
		Name:       "최지원",
		Email:      "choi.support@aiworker.local",
		Department: "인프라팀",
		Role:       UserRoleOperator,
		Status:     UserInactive,
	},
}
