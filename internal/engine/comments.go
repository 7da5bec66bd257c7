package engine

import (
	"context"
	"errors"
	"iter"
	"strings"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/gallery"
	"critiquehub/internal/domain/notifications"

	"gorm.io/gorm"
)

// AddCommentInput carries one addComment call. DedupKey is optional;
// see Event.
type AddCommentInput struct {
	ArtworkID string
	AuthorID  uint
	Content   string
	ParentID  *string
	DedupKey  *string
}

// AddComment attaches a comment to an artwork, optionally as a reply.
// The parent must exist and belong to the same artwork, otherwise
// ErrInvalidParent. Comment row, reply counter and notifications
// commit together or not at all.
func (e *Engine) AddComment(ctx context.Context, in AddCommentInput) (*engagement.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	var out engagement.Comment
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

		kind := notifications.EventNewComment
		if in.ParentID != nil {
			var parent engagement.Comment
			err := tx.First(&parent, "id = ?", *in.ParentID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidParent
			}
			if err != nil {
				return err
			}
			if parent.ArtworkID != in.ArtworkID {
				return ErrInvalidParent
			}
			kind = notifications.EventNewReply
		}

		out = engagement.Comment{
			ArtworkID: in.ArtworkID,
			AuthorID:  in.AuthorID,
			Content:   in.Content,
			ParentID:  in.ParentID,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		if in.ParentID != nil {
			if err := applyCounterDelta(tx, commentCounter(*in.ParentID, counterReplies), +1); err != nil {
				return err
			}
		}

		return e.fanOut(tx, Event{
			ActorID:  in.AuthorID,
			Kind:     kind,
			Target:   TargetRef{Type: notifications.TargetComment, ID: out.ID},
			DedupKey: in.DedupKey,
		})
	})
	if err != nil {
		return nil, err
	}

	if artworkAuthor != in.AuthorID {
		e.recordKarma(ctx, artworkAuthor, karmaCommentReceived, string(notifications.TargetComment), out.ID)
	}
	return &out, nil
}

// ThreadEntry is one comment in a flattened thread view, with its
// nesting depth.
type ThreadEntry struct {
	Comment engagement.Comment
	Depth   int
}

// GetThread loads an artwork's comments and returns a restartable
// sequence over the tree, newest first at every level. The tree is
// walked over parent-id edges on the flat rows; nothing is nested in
// storage.
func (e *Engine) GetThread(ctx context.Context, artworkID string) (iter.Seq[ThreadEntry], error) {
	var exists int64
	if err := e.db.WithContext(ctx).Model(&gallery.Artwork{}).
		Where("id = ?", artworkID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var rows []engagement.Comment
	if err := e.db.WithContext(ctx).
		Where("artwork_id = ?", artworkID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	// Arena: children keyed by parent id, already newest-first from
	// the query. Roots live under the empty key.
	children := make(map[string][]engagement.Comment)
	for _, c := range rows {
		key := ""
		if c.ParentID != nil {
			key = *c.ParentID
		}
		children[key] = append(children[key], c)
	}

	return func(yield func(ThreadEntry) bool) {
		var walk func(parent string, depth int) bool
		walk = func(parent string, depth int) bool {
			for _, c := range children[parent] {
				if !yield(ThreadEntry{Comment: c, Depth: depth}) {
					return false
				}
				if !walk(c.ID, depth+1) {
					return false
				}
			}
			return true
		}
		walk("", 0)
	}, nil
}

// UpdateCommentContent lets the author edit their comment body.
func (e *Engine) UpdateCommentContent(ctx context.Context, commentID string, actorID uint, content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	res := e.db.WithContext(ctx).Model(&engagement.Comment{}).
		Where("id = ? AND author_id = ?", commentID, actorID).
		Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment removes a comment and its whole reply subtree, along
// with reactions targeting any comment in it. Only the author (or a
// caller passing moderator=true) may delete.
func (e *Engine) DeleteComment(ctx context.Context, id string, actorID uint, moderator bool) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c engagement.Comment
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if c.AuthorID != actorID && !moderator {
			return ErrNotFound
		}

		ids, err := collectSubtree(tx, c)
		if err != nil {
			return err
		}

		if err := tx.Where("target_type = ? AND target_id IN ?",
			engagement.ReactionTargetComment, ids).
			Delete(&engagement.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", ids).Delete(&engagement.Comment{}).Error; err != nil {
			return err
		}

		if c.ParentID != nil {
			return applyCounterDelta(tx, commentCounter(*c.ParentID, counterReplies), -1)
		}
		return nil
	})
}

// collectSubtree gathers the comment and all transitive replies by
// breadth-first walk over parent edges. The parent chain is finite,
// so this terminates.
func collectSubtree(tx *gorm.DB, root engagement.Comment) ([]string, error) {
	ids := []string{root.ID}
	frontier := []string{root.ID}
	for len(frontier) > 0 {
		var next []engagement.Comment
		if err := tx.Where("parent_id IN ?", frontier).Find(&next).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, c := range next {
			ids = append(ids, c.ID)
			frontier = append(frontier, c.ID)
		}
	}
	return ids, nil
}
