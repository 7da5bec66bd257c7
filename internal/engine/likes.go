package engine

import (
	"context"
	"errors"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/gallery"
	"critiquehub/internal/domain/notifications"

	"gorm.io/gorm"
)

// ToggleLike flips the member's like on an artwork. The like row and
// the like_count column move in the same transaction; the counter
// update is an atomic column expression, so concurrent toggles on the
// same artwork never lose updates.
func (e *Engine) ToggleLike(ctx context.Context, artworkID string, memberID uint, dedupKey *string) (liked bool, err error) {
	var artworkAuthor uint
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var art gallery.Artwork
		if err := tx.First(&art, "id = ?", artworkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		artworkAuthor = art.AuthorID

		var existing engagement.ArtworkLike
		findErr := tx.First(&existing,
			"artwork_id = ? AND member_id = ?", artworkID, memberID).Error

		switch {
		case findErr == nil:
			// unlike
			if err := tx.Delete(&engagement.ArtworkLike{}, existing.ID).Error; err != nil {
				return err
			}
			liked = false
			return applyCounterDelta(tx, artworkCounter(artworkID, counterLikes), -1)

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			row := engagement.ArtworkLike{ArtworkID: artworkID, MemberID: memberID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			if err := applyCounterDelta(tx, artworkCounter(artworkID, counterLikes), +1); err != nil {
				return err
			}
			liked = true
			return e.fanOut(tx, Event{
				ActorID:  memberID,
				Kind:     notifications.EventNewLike,
				Target:   TargetRef{Type: notifications.TargetArtwork, ID: artworkID},
				DedupKey: dedupKey,
			})
		default:
			return findErr
		}
	})
	if err != nil {
		return false, err
	}

	if artworkAuthor != memberID {
		amount := karmaLikeReceived
		if !liked {
			amount = -karmaLikeReceived
		}
		e.recordKarma(ctx, artworkAuthor, amount, string(notifications.TargetArtwork), artworkID)
	}
	return liked, nil
}

// LikeCount reads the committed counter for an artwork.
func (e *Engine) LikeCount(ctx context.Context, artworkID string) (int64, error) {
	var art gallery.Artwork
	err := e.db.WithContext(ctx).
		Select("like_count").
		First(&art, "id = ?", artworkID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return art.LikeCount, nil
}
