package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"grove/internal/utils"
)

// ErrEmptySlug is returned when a group title yields no usable slug.
var ErrEmptySlug = errors.New("group: cannot derive slug from title")

type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;unique" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Slug        string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate derives the slug from the title when none was given.
// A slug set explicitly is kept as-is, and later title edits never
// rewrite it.
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.Slug == "" {
		g.Slug = utils.Slugify(g.Title, 100)
	}
	if g.Slug == "" {
		return ErrEmptySlug
	}
	return nil
}
