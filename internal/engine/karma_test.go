package engine

import (
	"context"
	"testing"

	"critiquehub/internal/domain/karma"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKarmaAwardedForReceivedEngagement(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	critic := newMember(t, e, "Critic")
	fan := newMember(t, e, "Fan")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Aquatint"})
	require.NoError(t, err)

	_, err = e.SubmitCritique(ctx, SubmitCritiqueInput{
		ArtworkID: art.ID, AuthorID: critic.ID, Content: "tonal range",
	})
	require.NoError(t, err)

	_, err = e.AddComment(ctx, AddCommentInput{ArtworkID: art.ID, AuthorID: fan.ID, Content: "wow"})
	require.NoError(t, err)

	_, err = e.ToggleLike(ctx, art.ID, fan.ID, nil)
	require.NoError(t, err)

	total, err := e.KarmaTotal(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(karmaCritiqueReceived+karmaCommentReceived+karmaLikeReceived), total)
}

func TestNoKarmaForSelfEngagement(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Drypoint"})
	require.NoError(t, err)

	_, err = e.AddComment(ctx, AddCommentInput{ArtworkID: art.ID, AuthorID: owner.ID, Content: "wip"})
	require.NoError(t, err)
	_, err = e.ToggleLike(ctx, art.ID, owner.ID, nil)
	require.NoError(t, err)

	total, err := e.KarmaTotal(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUnlikeAppendsNegativeEntry(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	fan := newMember(t, e, "Fan")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Monotype"})
	require.NoError(t, err)

	_, err = e.ToggleLike(ctx, art.ID, fan.ID, nil)
	require.NoError(t, err)
	_, err = e.ToggleLike(ctx, art.ID, fan.ID, nil)
	require.NoError(t, err)

	// the ledger is append-only: the take-back is a second entry, not
	// a deletion
	history, err := e.KarmaHistory(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, karmaLikeReceived, history[0].Amount)
	assert.Equal(t, -karmaLikeReceived, history[1].Amount)

	total, err := e.KarmaTotal(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestKarmaTotalEqualsReplaySum(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Silkscreen"})
	require.NoError(t, err)

	for _, name := range []string{"A1", "B2", "C3", "D4"} {
		m := newMember(t, e, name)
		_, err := e.ToggleLike(ctx, art.ID, m.ID, nil)
		require.NoError(t, err)
		_, err = e.AddComment(ctx, AddCommentInput{ArtworkID: art.ID, AuthorID: m.ID, Content: "nice"})
		require.NoError(t, err)
	}

	history, err := e.KarmaHistory(ctx, owner.ID)
	require.NoError(t, err)

	// replay in any order: the sum is order-independent
	var replay int64
	for i := len(history) - 1; i >= 0; i-- {
		replay += int64(history[i].Amount)
	}

	total, err := e.KarmaTotal(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, replay, total)
	assert.Equal(t, int64(4*(karmaLikeReceived+karmaCommentReceived)), total)
}

func TestKarmaFailureDoesNotFailAction(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	fan := newMember(t, e, "Fan")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Batik"})
	require.NoError(t, err)

	// sabotage the ledger table; the like itself must still commit
	require.NoError(t, e.db.Migrator().DropTable(&karma.KarmaEvent{}))

	liked, err := e.ToggleLike(ctx, art.ID, fan.ID, nil)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := e.LikeCount(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
