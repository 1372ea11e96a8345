package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// swagger:model User
type User struct {
	BaseModel
	Username string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email    string     `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password string     `gorm:"size:100;not null" json:"-"`
	Role     UserRole   `gorm:"type:varchar(16);default:'user'" json:"role"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return invalid("username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return invalid("email is required")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if !u.Role.Valid() {
		return invalid("role must be one of user, admin")
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	return u.Validate()
}
