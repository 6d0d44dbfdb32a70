package services

import (
	"testing"

	"peerlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTrustRejectsDuplicate(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)

	ok, err := reg.AddTrust("alice", "carol")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reg.AddTrust("alice", "carol")
	require.NoError(t, err)
	assert.False(t, ok, "duplicate trust is rejected, not silently ignored")

	var edges int64
	g.Model(&models.TrustEdge{}).Count(&edges)
	assert.Equal(t, int64(1), edges)
}

func TestRemoveTrust(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)

	_, err := reg.AddTrust("alice", "carol")
	require.NoError(t, err)

	ok, err := reg.RemoveTrust("alice", "carol")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reg.RemoveTrust("alice", "carol")
	require.NoError(t, err)
	assert.False(t, ok, "nothing left to remove")
}

func TestSetWeightRejectsNegative(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)

	ok, err := reg.SetWeight("alice", "carol", -1)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrConstraint)

	var rows int64
	g.Model(&models.WeightEdge{}).Count(&rows)
	assert.Zero(t, rows, "rejected weight writes nothing")
}

func TestSetWeightUpserts(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)

	ok, err := reg.SetWeight("alice", "carol", 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reg.SetWeight("alice", "carol", 9)
	require.NoError(t, err)
	assert.True(t, ok)

	var edges []models.WeightEdge
	require.NoError(t, g.Find(&edges).Error)
	require.Len(t, edges, 1, "upsert updates in place")
	assert.Equal(t, 9, edges[0].Weight)
}

func TestSetRatingUpserts(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)

	ok, err := reg.SetRating("alice", "carol", -2)
	require.NoError(t, err)
	assert.True(t, ok, "ratings accept any integer")

	ok, err = reg.SetRating("alice", "carol", 4)
	require.NoError(t, err)
	assert.True(t, ok)

	var edges []models.RatingEdge
	require.NoError(t, g.Find(&edges).Error)
	require.Len(t, edges, 1)
	assert.Equal(t, 4, edges[0].Rating)
}

func TestTrustedReviewsEmptyTrustSet(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)
	reviews := NewReviewService(g)
	post := seedPost(t, g, "alice", "Question")

	_, _, err := reviews.Create(models.TargetPost, post.ID, "carol", "untrusted take")
	require.NoError(t, err)

	got, err := reg.TrustedReviews(models.TargetPost, post.ID, "alice")
	require.NoError(t, err)
	assert.Empty(t, got, "empty trust set yields no reviews, not all of them")
}

func TestTrustedReviewsFilterByTrustSet(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)
	reviews := NewReviewService(g)
	post := seedPost(t, g, "alice", "Question")

	trusted, _, err := reviews.Create(models.TargetPost, post.ID, "carol", "trusted take")
	require.NoError(t, err)
	_, _, err = reviews.Create(models.TargetPost, post.ID, "dave", "other take")
	require.NoError(t, err)

	_, err = reg.AddTrust("alice", "carol")
	require.NoError(t, err)

	got, err := reg.TrustedReviews(models.TargetPost, post.ID, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, trusted.ID, got[0].ID)
}

func TestRankedByWeight(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)
	reviews := NewReviewService(g)
	post := seedPost(t, g, "alice", "Question")

	low, _, err := reviews.Create(models.TargetPost, post.ID, "bob", "weight-2 review")
	require.NoError(t, err)
	high, _, err := reviews.Create(models.TargetPost, post.ID, "carol", "weight-5 review")
	require.NoError(t, err)
	unweighted, _, err := reviews.Create(models.TargetPost, post.ID, "dave", "no weight entry")
	require.NoError(t, err)

	_, err = reg.SetWeight("alice", "bob", 2)
	require.NoError(t, err)
	_, err = reg.SetWeight("alice", "carol", 5)
	require.NoError(t, err)

	got, err := reg.RankedByWeight(models.TargetPost, post.ID, "alice")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, high.ID, got[0].ID)
	assert.Equal(t, low.ID, got[1].ID)
	assert.Equal(t, unweighted.ID, got[2].ID, "missing weight ranks as zero")
}

func TestRankedByWeightTiesKeepInsertionOrder(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)
	reviews := NewReviewService(g)
	post := seedPost(t, g, "alice", "Question")

	first, _, err := reviews.Create(models.TargetPost, post.ID, "bob", "first equal review")
	require.NoError(t, err)
	second, _, err := reviews.Create(models.TargetPost, post.ID, "carol", "second equal review")
	require.NoError(t, err)

	_, err = reg.SetWeight("alice", "bob", 3)
	require.NoError(t, err)
	_, err = reg.SetWeight("alice", "carol", 3)
	require.NoError(t, err)

	got, err := reg.RankedByWeight(models.TargetPost, post.ID, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestRankedByWeightIsPerStudent(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)
	reviews := NewReviewService(g)
	post := seedPost(t, g, "alice", "Question")

	bobs, _, err := reviews.Create(models.TargetPost, post.ID, "bob", "bob's review")
	require.NoError(t, err)
	carols, _, err := reviews.Create(models.TargetPost, post.ID, "carol", "carol's review")
	require.NoError(t, err)

	_, err = reg.SetWeight("alice", "carol", 10)
	require.NoError(t, err)
	_, err = reg.SetWeight("zoe", "bob", 10)
	require.NoError(t, err)

	got, err := reg.RankedByWeight(models.TargetPost, post.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, carols.ID, got[0].ID)

	got, err = reg.RankedByWeight(models.TargetPost, post.ID, "zoe")
	require.NoError(t, err)
	assert.Equal(t, bobs.ID, got[0].ID)
}

func TestRankedByRating(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)
	reviews := NewReviewService(g)
	post := seedPost(t, g, "alice", "Question")

	lowRated, _, err := reviews.Create(models.TargetPost, post.ID, "bob", "rated 1")
	require.NoError(t, err)
	highRated, _, err := reviews.Create(models.TargetPost, post.ID, "carol", "rated 5")
	require.NoError(t, err)

	_, err = reg.SetRating("alice", "bob", 1)
	require.NoError(t, err)
	_, err = reg.SetRating("alice", "carol", 5)
	require.NoError(t, err)

	got, err := reg.RankedByRating(models.TargetPost, post.ID, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, highRated.ID, got[0].ID)
	assert.Equal(t, lowRated.ID, got[1].ID)
}

func TestRankedByRatingTieBreaksOnFeedbackCount(t *testing.T) {
	g := newTestDB(t)
	reg := NewRegistryService(g)
	reviews := NewReviewService(g)
	post := seedPost(t, g, "alice", "Question")

	quiet, _, err := reviews.Create(models.TargetPost, post.ID, "bob", "no feedback yet")
	require.NoError(t, err)
	busy, _, err := reviews.Create(models.TargetPost, post.ID, "carol", "busy thread")
	require.NoError(t, err)
	_, _, err = reviews.AddFeedback(busy.ID, "alice", "good point here")
	require.NoError(t, err)
	_, _, err = reviews.AddFeedback(busy.ID, "carol", "glad it helps")
	require.NoError(t, err)

	// Both reviewers unrated: tie on rating 0, feedback count decides.
	got, err := reg.RankedByRating(models.TargetPost, post.ID, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, busy.ID, got[0].ID)
	assert.Equal(t, quiet.ID, got[1].ID)
}
