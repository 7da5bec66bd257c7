package engine

import (
	"context"
	"errors"
	"strings"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/notifications"

	"gorm.io/gorm"
)

type PostReactionInput struct {
	AuthorID   uint
	TargetType engagement.ReactionTarget
	TargetID   string
	Kind       string
	DedupKey   *string
}

// PostReaction records a typed reaction on a critique or comment.
// A second reaction with the same (author, target, kind) fails with
// ErrConflict. Reaction row, target's reaction counter and the
// notification commit together.
func (e *Engine) PostReaction(ctx context.Context, in PostReactionInput) (*engagement.Reaction, error) {
	if strings.TrimSpace(in.Kind) == "" {
		return nil, &ValidationError{Field: "kind", Reason: "must not be empty"}
	}
	if in.TargetType != engagement.ReactionTargetCritique &&
		in.TargetType != engagement.ReactionTargetComment {
		return nil, &ValidationError{Field: "target_type", Reason: "must be critique or comment"}
	}

	var out engagement.Reaction
	var targetAuthor uint
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter counterTarget
		switch in.TargetType {
		case engagement.ReactionTargetCritique:
			var cr engagement.Critique
			if err := tx.First(&cr, "id = ?", in.TargetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			targetAuthor = cr.AuthorID
			counter = critiqueCounter(in.TargetID)
		case engagement.ReactionTargetComment:
			var c engagement.Comment
			if err := tx.First(&c, "id = ?", in.TargetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			targetAuthor = c.AuthorID
			counter = commentCounter(in.TargetID, counterReactions)
		}

		var dup engagement.Reaction
		dupErr := tx.First(&dup,
			"author_id = ? AND target_type = ? AND target_id = ? AND kind = ?",
			in.AuthorID, in.TargetType, in.TargetID, in.Kind).Error
		if dupErr == nil {
			return ErrConflict
		}
		if !errors.Is(dupErr, gorm.ErrRecordNotFound) {
			return dupErr
		}

		out = engagement.Reaction{
			AuthorID:   in.AuthorID,
			TargetType: in.TargetType,
			TargetID:   in.TargetID,
			Kind:       in.Kind,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		if err := applyCounterDelta(tx, counter, +1); err != nil {
			return err
		}

		return e.fanOut(tx, Event{
			ActorID:  in.AuthorID,
			Kind:     notifications.EventNewReaction,
			Target:   TargetRef{Type: notifications.TargetReaction, ID: out.ID},
			DedupKey: in.DedupKey,
		})
	})
	if err != nil {
		return nil, err
	}

	if targetAuthor != in.AuthorID {
		e.recordKarma(ctx, targetAuthor, karmaReactionReceived, string(notifications.TargetReaction), out.ID)
	}
	return &out, nil
}

// RemoveReaction deletes the author's own reaction and decrements the
// target's counter.
func (e *Engine) RemoveReaction(ctx context.Context, id string, actorID uint) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r engagement.Reaction
		if err := tx.First(&r, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if r.AuthorID != actorID {
			return ErrNotFound
		}

		if err := tx.Delete(&engagement.Reaction{}, "id = ?", id).Error; err != nil {
			return err
		}

		var counter counterTarget
		switch r.TargetType {
		case engagement.ReactionTargetCritique:
			counter = critiqueCounter(r.TargetID)
		case engagement.ReactionTargetComment:
			counter = commentCounter(r.TargetID, counterReactions)
		default:
			return nil
		}
		err := applyCounterDelta(tx, counter, -1)
		if errors.Is(err, ErrNotFound) {
			return nil // target already cascade-deleted
		}
		return err
	})
}
