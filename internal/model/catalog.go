package model

import (
	"strings"

	"gorm.io/gorm"
)

// swagger:model Category
type Category struct {
	BaseModel
	Name        string `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("category name is required")
	}
	return nil
}

// swagger:model Topic
type Topic struct {
	BaseModel
	CategoryID  uint   `gorm:"index;not null" json:"categoryId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Slug        string `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

func (Topic) TableName() string {
	return "topics"
}

func (t *Topic) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("topic title is required")
	}
	if t.CategoryID == 0 {
		return invalid("topic categoryId is required")
	}
	return nil
}
