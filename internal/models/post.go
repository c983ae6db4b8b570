package models

import (
	"time"
)

type Post struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Text    string    `gorm:"type:text;not null" json:"text"`
	PubDate time.Time `gorm:"autoCreateTime;index" json:"pub_date"` // server-assigned, never updated
	UserID  uint      `gorm:"not null;index" json:"user_id"`
	User    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	GroupID *uint     `gorm:"index" json:"group_id"` // nullable, cleared when the group is deleted
	Group   *Group    `json:"group"`
	Image   string    `json:"image"` // optional path under the uploads dir

	// Not a database column, filled in by list queries.
	CommentCount int `gorm:"-" json:"comment_count"`
}
