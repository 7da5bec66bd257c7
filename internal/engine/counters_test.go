package engine

import (
	"context"
	"sync"
	"testing"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/gallery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeCountMatchesLikeRows(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Still Life"})
	require.NoError(t, err)

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		m := newMember(t, e, name)
		liked, err := e.ToggleLike(ctx, art.ID, m.ID, nil)
		require.NoError(t, err)
		assert.True(t, liked)
	}

	count, err := e.LikeCount(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	var rows int64
	require.NoError(t, e.db.Model(&engagement.ArtworkLike{}).
		Where("artwork_id = ?", art.ID).Count(&rows).Error)
	assert.Equal(t, rows, count)

	// recount from scratch must agree with the maintained value
	require.NoError(t, e.RecountArtwork(ctx, art.ID))
	count, err = e.LikeCount(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUnlikeDecrementsCount(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	fan := newMember(t, e, "Fan")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Sketch"})
	require.NoError(t, err)

	liked, err := e.ToggleLike(ctx, art.ID, fan.ID, nil)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = e.ToggleLike(ctx, art.ID, fan.ID, nil)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err := e.LikeCount(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestConcurrentLikesNoLostUpdate(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Mural"})
	require.NoError(t, err)

	const n = 8
	fans := make([]uint, n)
	for i := 0; i < n; i++ {
		fans[i] = newMember(t, e, "Fan"+string(rune('A'+i))).ID
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.ToggleLike(ctx, art.ID, fans[i], nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	count, err := e.LikeCount(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}

func TestCritiqueCounterRollsBackWithCritique(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	other := newMember(t, e, "Other")
	critic := newMember(t, e, "Critic")

	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Portrait"})
	require.NoError(t, err)
	foreign, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: other.ID, Title: "Landscape"})
	require.NoError(t, err)

	foreignVersion, err := e.CreateVersion(ctx, foreign.ID, other.ID, "", "v2")
	require.NoError(t, err)

	// invariant check fails mid-transaction; neither the critique row
	// nor the counter may survive
	_, err = e.SubmitCritique(ctx, SubmitCritiqueInput{
		ArtworkID: art.ID,
		AuthorID:  critic.ID,
		Content:   "strong values",
		VersionID: &foreignVersion.ID,
	})
	require.ErrorIs(t, err, ErrVersionMismatch)

	var got gallery.Artwork
	require.NoError(t, e.db.First(&got, "id = ?", art.ID).Error)
	assert.Equal(t, int64(0), got.CritiqueCount)

	var critiques int64
	require.NoError(t, e.db.Model(&engagement.Critique{}).
		Where("artwork_id = ?", art.ID).Count(&critiques).Error)
	assert.Equal(t, int64(0), critiques)
}

func TestRecountReactions(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Study"})
	require.NoError(t, err)

	critic := newMember(t, e, "Critic")
	cr, err := e.SubmitCritique(ctx, SubmitCritiqueInput{
		ArtworkID: art.ID, AuthorID: critic.ID, Content: "nice light",
	})
	require.NoError(t, err)

	for _, kind := range []string{"insightful", "agree"} {
		_, err := e.PostReaction(ctx, PostReactionInput{
			AuthorID:   owner.ID,
			TargetType: engagement.ReactionTargetCritique,
			TargetID:   cr.ID,
			Kind:       kind,
		})
		require.NoError(t, err)
	}

	require.NoError(t, e.RecountReactions(ctx, engagement.ReactionTargetCritique, cr.ID))

	var got engagement.Critique
	require.NoError(t, e.db.First(&got, "id = ?", cr.ID).Error)
	assert.Equal(t, int64(2), got.ReactionCount)
}
