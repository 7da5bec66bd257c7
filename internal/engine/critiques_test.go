package engine

import (
	"context"
	"testing"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/gallery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionNumbersMonotonic(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Charcoal"})
	require.NoError(t, err)

	// CreateArtwork snapshots version 1
	v2, err := e.CreateVersion(ctx, art.ID, owner.ID, "", "reworked shadows")
	require.NoError(t, err)
	v3, err := e.CreateVersion(ctx, art.ID, owner.ID, "", "final pass")
	require.NoError(t, err)

	assert.Equal(t, 2, v2.VersionNo)
	assert.Equal(t, 3, v3.VersionNo)

	var versions []gallery.ArtworkVersion
	require.NoError(t, e.db.Where("artwork_id = ?", art.ID).
		Order("version_no ASC").Find(&versions).Error)
	require.Len(t, versions, 3)
	for i, v := range versions {
		assert.Equal(t, i+1, v.VersionNo)
	}
}

func TestSubmitCritiquePinnedToVersion(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	critic := newMember(t, e, "Critic")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Oil"})
	require.NoError(t, err)
	v2, err := e.CreateVersion(ctx, art.ID, owner.ID, "", "v2")
	require.NoError(t, err)

	cr, err := e.SubmitCritique(ctx, SubmitCritiqueInput{
		ArtworkID: art.ID, AuthorID: critic.ID,
		Content: "composition improved", VersionID: &v2.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, cr.ArtworkVersionID)
	assert.Equal(t, v2.ID, *cr.ArtworkVersionID)

	var got gallery.Artwork
	require.NoError(t, e.db.First(&got, "id = ?", art.ID).Error)
	assert.Equal(t, int64(1), got.CritiqueCount)
}

func TestSubmitCritiqueUnpinnedIsValid(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	critic := newMember(t, e, "Critic")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Pastel"})
	require.NoError(t, err)

	cr, err := e.SubmitCritique(ctx, SubmitCritiqueInput{
		ArtworkID: art.ID, AuthorID: critic.ID, Content: "about the whole piece",
	})
	require.NoError(t, err)
	assert.Nil(t, cr.ArtworkVersionID)
}

func TestBindCritiqueVersionMismatch(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	critic := newMember(t, e, "Critic")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Ink"})
	require.NoError(t, err)
	foreign, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Wash"})
	require.NoError(t, err)
	foreignVersion, err := e.CreateVersion(ctx, foreign.ID, owner.ID, "", "")
	require.NoError(t, err)

	cr, err := e.SubmitCritique(ctx, SubmitCritiqueInput{
		ArtworkID: art.ID, AuthorID: critic.ID, Content: "line weight",
	})
	require.NoError(t, err)

	err = e.BindCritiqueToVersion(ctx, cr.ID, foreignVersion.ID, critic.ID)
	require.ErrorIs(t, err, ErrVersionMismatch)

	// still unbound
	var got engagement.Critique
	require.NoError(t, e.db.First(&got, "id = ?", cr.ID).Error)
	assert.Nil(t, got.ArtworkVersionID)
}

func TestRebindWithinSameArtwork(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	critic := newMember(t, e, "Critic")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Gouache"})
	require.NoError(t, err)
	v2, err := e.CreateVersion(ctx, art.ID, owner.ID, "", "v2")
	require.NoError(t, err)
	v3, err := e.CreateVersion(ctx, art.ID, owner.ID, "", "v3")
	require.NoError(t, err)

	cr, err := e.SubmitCritique(ctx, SubmitCritiqueInput{
		ArtworkID: art.ID, AuthorID: critic.ID, Content: "texture", VersionID: &v2.ID,
	})
	require.NoError(t, err)

	require.NoError(t, e.BindCritiqueToVersion(ctx, cr.ID, v3.ID, critic.ID))

	var got engagement.Critique
	require.NoError(t, e.db.First(&got, "id = ?", cr.ID).Error)
	require.NotNil(t, got.ArtworkVersionID)
	assert.Equal(t, v3.ID, *got.ArtworkVersionID)
}

func TestDeleteCritiqueDecrementsCounter(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	critic := newMember(t, e, "Critic")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Relief"})
	require.NoError(t, err)

	cr, err := e.SubmitCritique(ctx, SubmitCritiqueInput{
		ArtworkID: art.ID, AuthorID: critic.ID, Content: "depth",
	})
	require.NoError(t, err)

	require.NoError(t, e.DeleteCritique(ctx, cr.ID, critic.ID, false))

	var got gallery.Artwork
	require.NoError(t, e.db.First(&got, "id = ?", art.ID).Error)
	assert.Equal(t, int64(0), got.CritiqueCount)
}

func TestDuplicateReactionConflicts(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	owner := newMember(t, e, "Owner")
	critic := newMember(t, e, "Critic")
	art, err := e.CreateArtwork(ctx, CreateArtworkInput{AuthorID: owner.ID, Title: "Litho"})
	require.NoError(t, err)

	cr, err := e.SubmitCritique(ctx, SubmitCritiqueInput{
		ArtworkID: art.ID, AuthorID: critic.ID, Content: "contrast",
	})
	require.NoError(t, err)

	in := PostReactionInput{
		AuthorID:   owner.ID,
		TargetType: engagement.ReactionTargetCritique,
		TargetID:   cr.ID,
		Kind:       "insightful",
	}
	_, err = e.PostReaction(ctx, in)
	require.NoError(t, err)

	_, err = e.PostReaction(ctx, in)
	require.ErrorIs(t, err, ErrConflict)

	// a different kind from the same author is fine
	in.Kind = "agree"
	_, err = e.PostReaction(ctx, in)
	require.NoError(t, err)

	var got engagement.Critique
	require.NoError(t, e.db.First(&got, "id = ?", cr.ID).Error)
	assert.Equal(t, int64(2), got.ReactionCount)
}
