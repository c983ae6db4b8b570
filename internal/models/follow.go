package models

import (
	"time"
)

// Follow is a directed edge: user follows author. The schema carries no
// uniqueness constraint; the follow action writes through find-or-create,
// which keeps the edge idempotent.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
