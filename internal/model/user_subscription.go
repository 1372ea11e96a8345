package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// swagger:model UserSubscription
type UserSubscription struct {
	BaseModel
	UserID        uint        `gorm:"index;not null" json:"userId"`
	ContentType   ContentType `gorm:"type:varchar(16)" json:"contentType,omitempty"`
	ContentID     *uint       `gorm:"index" json:"contentId,omitempty"`
	HasFullAccess bool        `gorm:"default:false" json:"hasFullAccess"`
	IsActive      bool        `gorm:"not null;index" json:"isActive"`
	StartDate     time.Time   `json:"startDate"`
	EndDate       *time.Time  `json:"endDate"`
	// ActiveKey is set only while active; its unique index stands in for a
	// partial unique index on (user, item) / (user, full access).
	ActiveKey *string `gorm:"size:191;uniqueIndex" json:"-"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

// ActiveAt reports whether the subscription grants access at t.
func (s *UserSubscription) ActiveAt(t time.Time) bool {
	if !s.IsActive {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(t)
}

// Covers reports whether this (item-specific) subscription references the item.
func (s *UserSubscription) Covers(t ContentType, id uint) bool {
	return !s.HasFullAccess && s.ContentType == t && s.ContentID != nil && *s.ContentID == id
}

func (s *UserSubscription) key() string {
	if s.HasFullAccess {
		return fmt.Sprintf("u:%d:full", s.UserID)
	}
	return fmt.Sprintf("u:%d:%s:%d", s.UserID, s.ContentType, *s.ContentID)
}

// SyncActiveKey recomputes ActiveKey from the other fields.
func (s *UserSubscription) SyncActiveKey() {
	if !s.IsActive {
		s.ActiveKey = nil
		return
	}
	k := s.key()
	s.ActiveKey = &k
}

func (s *UserSubscription) Validate() error {
	if s.UserID == 0 {
		return invalid("subscription userId is required")
	}
	if s.HasFullAccess {
		if s.ContentID != nil || s.ContentType != "" {
			return invalid("a full-access subscription cannot reference a content item")
		}
	} else {
		if s.ContentID == nil || !s.ContentType.Valid() {
			return invalid("subscription must reference an essay or exam, or grant full access")
		}
	}
	if s.EndDate != nil && !s.EndDate.After(s.StartDate) {
		return invalid("endDate must be after startDate")
	}
	return nil
}

func (s *UserSubscription) BeforeSave(tx *gorm.DB) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.SyncActiveKey()
	return nil
}
