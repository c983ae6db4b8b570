package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"grove/internal/db"
	"grove/internal/db/testdb"
	"grove/internal/handlers"
	"grove/internal/models"
)

func followCount(userID, authorID uint) int64 {
	var count int64
	db.DB.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count)
	return count
}

func TestFollowIsIdempotent(t *testing.T) {
	db.DB = testdb.Open(t)
	alice := createUser(t, db.DB, "alice")
	bob := createUser(t, db.DB, "bob")

	h := handlers.NewFollowHandler()
	r := setupRouter(&bob)
	r.GET("/follow/:username", h.Follow)

	for i := 0; i < 2; i++ {
		w := get(r, "/follow/alice")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/u/alice", w.Header().Get("Location"))
	}

	assert.EqualValues(t, 1, followCount(bob.ID, alice.ID), "repeated follows must not stack edges")
}

func TestSelfFollowCreatesNoEdge(t *testing.T) {
	db.DB = testdb.Open(t)
	alice := createUser(t, db.DB, "alice")

	h := handlers.NewFollowHandler()
	r := setupRouter(&alice)
	r.GET("/follow/:username", h.Follow)

	w := get(r, "/follow/alice")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/u/alice", w.Header().Get("Location"))

	assert.EqualValues(t, 0, followCount(alice.ID, alice.ID))
}

func TestUnfollowRestoresFollowCount(t *testing.T) {
	db.DB = testdb.Open(t)
	alice := createUser(t, db.DB, "alice")
	bob := createUser(t, db.DB, "bob")

	h := handlers.NewFollowHandler()
	r := setupRouter(&bob)
	r.GET("/follow/:username", h.Follow)
	r.GET("/unfollow/:username", h.Unfollow)

	before := followCount(bob.ID, alice.ID)

	get(r, "/follow/alice")
	assert.EqualValues(t, before+1, followCount(bob.ID, alice.ID))

	w := get(r, "/unfollow/alice")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.EqualValues(t, before, followCount(bob.ID, alice.ID))
}

func TestFollowUnknownUser404(t *testing.T) {
	db.DB = testdb.Open(t)
	bob := createUser(t, db.DB, "bob")

	h := handlers.NewFollowHandler()
	r := setupRouter(&bob)
	r.GET("/follow/:username", h.Follow)

	w := get(r, "/follow/nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
