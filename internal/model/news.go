package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// swagger:model News
type News struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Summary     string     `gorm:"type:text" json:"summary"`
	Content     string     `gorm:"type:longtext" json:"content"`
	ImageURL    string     `gorm:"size:500" json:"imageUrl"`
	IsPublished bool       `gorm:"default:false;index" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

func (News) TableName() string {
	return "news"
}

func (n *News) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(n.Title) == "" {
		return invalid("news title is required")
	}
	if n.IsPublished && n.PublishedAt == nil {
		now := time.Now()
		n.PublishedAt = &now
	}
	return nil
}

// swagger:model Notice
type Notice struct {
	BaseModel
	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Priority int    `gorm:"default:0" json:"priority"`
	IsActive bool   `gorm:"not null;index" json:"isActive"`
}

func (Notice) TableName() string {
	return "notices"
}

func (n *Notice) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(n.Title) == "" {
		return invalid("notice title is required")
	}
	return nil
}
