package engine

import (
	"context"
	"errors"
	"strings"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/gallery"
	"critiquehub/internal/domain/notifications"

	"gorm.io/gorm"
)

type SubmitCritiqueInput struct {
	ArtworkID string
	AuthorID  uint
	Content   string
	// VersionID optionally pins the critique to one version of the
	// same artwork.
	VersionID *string
	DedupKey  *string
}

// SubmitCritique creates a critique, bumps the artwork's critique
// counter and fans out the notification, all in one transaction.
// A foreign artwork's version is rejected with ErrVersionMismatch.
func (e *Engine) SubmitCritique(ctx context.Context, in SubmitCritiqueInput) (*engagement.Critique, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	var out engagement.Critique
	var artworkAuthor uint
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var art gallery.Artwork
		if err := tx.First(&art, "id = ?", in.ArtworkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		artworkAuthor = art.AuthorID

		if in.VersionID != nil {
			if err := checkVersionBinding(tx, in.ArtworkID, *in.VersionID); err != nil {
				return err
			}
		}

		out = engagement.Critique{
			ArtworkID:        in.ArtworkID,
			AuthorID:         in.AuthorID,
			Content:          in.Content,
			ArtworkVersionID: in.VersionID,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		if err := applyCounterDelta(tx, artworkCounter(in.ArtworkID, counterCritiques), +1); err != nil {
			return err
		}

		return e.fanOut(tx, Event{
			ActorID:  in.AuthorID,
			Kind:     notifications.EventNewCritique,
			Target:   TargetRef{Type: notifications.TargetCritique, ID: out.ID},
			DedupKey: in.DedupKey,
		})
	})
	if err != nil {
		return nil, err
	}

	if artworkAuthor != in.AuthorID {
		e.recordKarma(ctx, artworkAuthor, karmaCritiqueReceived, string(notifications.TargetCritique), out.ID)
	}
	return &out, nil
}

// BindCritiqueToVersion re-pins a critique to another version of the
// same artwork. Binding never clears implicitly; rebinding across
// artworks fails with ErrVersionMismatch.
func (e *Engine) BindCritiqueToVersion(ctx context.Context, critiqueID, versionID string, actorID uint) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cr engagement.Critique
		if err := tx.First(&cr, "id = ?", critiqueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if cr.AuthorID != actorID {
			return ErrNotFound
		}

		if err := checkVersionBinding(tx, cr.ArtworkID, versionID); err != nil {
			return err
		}

		return tx.Model(&engagement.Critique{}).
			Where("id = ?", critiqueID).
			Update("artwork_version_id", versionID).Error
	})
}

func checkVersionBinding(tx *gorm.DB, artworkID, versionID string) error {
	var v gallery.ArtworkVersion
	if err := tx.First(&v, "id = ?", versionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if v.ArtworkID != artworkID {
		return ErrVersionMismatch
	}
	return nil
}

// UpdateCritiqueContent lets the author edit their critique body.
func (e *Engine) UpdateCritiqueContent(ctx context.Context, critiqueID string, actorID uint, content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	res := e.db.WithContext(ctx).Model(&engagement.Critique{}).
		Where("id = ? AND author_id = ?", critiqueID, actorID).
		Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCritique removes a critique plus its reactions and decrements
// the artwork's critique counter.
func (e *Engine) DeleteCritique(ctx context.Context, id string, actorID uint, moderator bool) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cr engagement.Critique
		if err := tx.First(&cr, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if cr.AuthorID != actorID && !moderator {
			return ErrNotFound
		}

		if err := tx.Where("target_type = ? AND target_id = ?",
			engagement.ReactionTargetCritique, id).
			Delete(&engagement.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&engagement.Critique{}, "id = ?", id).Error; err != nil {
			return err
		}
		return applyCounterDelta(tx, artworkCounter(cr.ArtworkID, counterCritiques), -1)
	})
}
