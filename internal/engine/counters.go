package engine

import (
	"context"
	"errors"
	"fmt"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/gallery"

	"gorm.io/gorm"
)

type counterKind string

const (
	counterLikes     counterKind = "likes"
	counterCritiques counterKind = "critiques"
	counterReplies   counterKind = "replies"
	counterReactions counterKind = "reactions"
)

type counterTarget struct {
	model  interface{}
	id     string
	column string
}

func artworkCounter(id string, kind counterKind) counterTarget {
	col := "like_count"
	if kind == counterCritiques {
		col = "critique_count"
	}
	return counterTarget{model: &gallery.Artwork{}, id: id, column: col}
}

func commentCounter(id string, kind counterKind) counterTarget {
	col := "reaction_count"
	if kind == counterReplies {
		col = "reply_count"
	}
	return counterTarget{model: &engagement.Comment{}, id: id, column: col}
}

func critiqueCounter(id string) counterTarget {
	return counterTarget{model: &engagement.Critique{}, id: id, column: "reaction_count"}
}

// applyCounterDelta bumps a derived counter with an atomic column
// expression. It must run inside the same transaction as the relation
// write so that either both commit or neither does.
func applyCounterDelta(tx *gorm.DB, target counterTarget, delta int) error {
	res := tx.Model(target.model).
		Where("id = ?", target.id).
		UpdateColumn(target.column, gorm.Expr(target.column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("counter target %T %s: %w", target.model, target.id, ErrNotFound)
	}
	return nil
}

// RecountArtwork re-derives an artwork's like and critique counts
// from the underlying relations and writes them back. The re-derived
// values must always equal the incrementally maintained ones.
func (e *Engine) RecountArtwork(ctx context.Context, artworkID string) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var art gallery.Artwork
		if err := tx.First(&art, "id = ?", artworkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var likes, critiques int64
		if err := tx.Model(&engagement.ArtworkLike{}).
			Where("artwork_id = ?", artworkID).Count(&likes).Error; err != nil {
			return err
		}
		if err := tx.Model(&engagement.Critique{}).
			Where("artwork_id = ?", artworkID).Count(&critiques).Error; err != nil {
			return err
		}

		return tx.Model(&gallery.Artwork{}).
			Where("id = ?", artworkID).
			UpdateColumns(map[string]interface{}{
				"like_count":     likes,
				"critique_count": critiques,
			}).Error
	})
}

// RecountReactions re-derives the reaction count of a critique or
// comment from the reaction rows.
func (e *Engine) RecountReactions(ctx context.Context, targetType engagement.ReactionTarget, targetID string) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&engagement.Reaction{}).
			Where("target_type = ? AND target_id = ?", targetType, targetID).
			Count(&n).Error; err != nil {
			return err
		}

		var target counterTarget
		switch targetType {
		case engagement.ReactionTargetCritique:
			target = critiqueCounter(targetID)
		case engagement.ReactionTargetComment:
			target = commentCounter(targetID, counterReactions)
		default:
			return &ValidationError{Field: "target_type", Reason: "unknown reaction target"}
		}

		res := tx.Model(target.model).
			Where("id = ?", target.id).
			UpdateColumn(target.column, n)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
