// Package feed builds the ordered post listings behind each view: the
// global feed, a group's feed, an author's feed and the personalized
// follow feed. Every listing is strict reverse-chronological; pagination
// is the caller's job.
package feed

import (
	"errors"

	"gorm.io/gorm"

	"grove/internal/models"
)

// PerPage is the fixed page size for every feed.
const PerPage = 10

// ErrNotFound reports an unresolved group slug or username.
var ErrNotFound = errors.New("feed: not found")

// Global returns all posts, newest first.
func Global(db *gorm.DB) ([]models.Post, error) {
	var posts []models.Post
	err := db.Preload("User").Preload("Group").
		Order("pub_date DESC").
		Find(&posts).Error
	return posts, err
}

// ByGroup resolves slug to a group and returns its posts, newest first.
func ByGroup(db *gorm.DB, slug string) (models.Group, []models.Post, error) {
	var group models.Group
	if err := db.Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return group, nil, ErrNotFound
		}
		return group, nil, err
	}

	var posts []models.Post
	err := db.Preload("User").Preload("Group").
		Where("group_id = ?", group.ID).
		Order("pub_date DESC").
		Find(&posts).Error
	return group, posts, err
}

// ByAuthor resolves username to a user and returns their posts, newest
// first.
func ByAuthor(db *gorm.DB, username string) (models.User, []models.Post, error) {
	var author models.User
	if err := db.Where("username = ?", username).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return author, nil, ErrNotFound
		}
		return author, nil, err
	}

	var posts []models.Post
	err := db.Preload("User").Preload("Group").
		Where("user_id = ?", author.ID).
		Order("pub_date DESC").
		Find(&posts).Error
	return author, posts, err
}

// Following returns posts by every author the viewer follows, newest
// first. Viewers with no follow edges get an empty feed.
func Following(db *gorm.DB, viewerID uint) ([]models.Post, error) {
	authors := db.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", viewerID)

	var posts []models.Post
	err := db.Preload("User").Preload("Group").
		Where("user_id IN (?)", authors).
		Order("pub_date DESC").
		Find(&posts).Error
	return posts, err
}

// IsFollowing reports whether the viewer has a follow edge to the author.
func IsFollowing(db *gorm.DB, viewerID, authorID uint) bool {
	var count int64
	db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", viewerID, authorID).
		Count(&count)
	return count > 0
}

// FillCommentCounts batch-fills CommentCount for a page of posts.
func FillCommentCounts(db *gorm.DB, posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}
