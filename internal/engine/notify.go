package engine

import (
	"context"
	"errors"
	"fmt"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/gallery"
	"critiquehub/internal/domain/members"
	"critiquehub/internal/domain/notifications"

	"gorm.io/gorm"
)

// TargetRef is the polymorphic reference an event (and the resulting
// notifications) carries: a type tag plus an identifier.
type TargetRef struct {
	Type notifications.TargetType
	ID   string
}

// Event is one engagement action to fan out. DedupKey is an optional
// caller-supplied idempotency token; without one a retried request
// may produce duplicate notifications.
type Event struct {
	ActorID  uint
	Kind     notifications.EventKind
	Target   TargetRef
	DedupKey *string
}

// fanOut resolves the recipients for an event and writes one
// notification per distinct recipient, never to the actor itself.
// It runs inside the caller's transaction.
func (e *Engine) fanOut(tx *gorm.DB, ev Event) error {
	recipients, artworkID, err := resolveRecipients(tx, ev)
	if err != nil {
		return err
	}

	var actor members.Member
	if err := tx.First(&actor, "id = ?", ev.ActorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	seen := map[uint]bool{}
	for _, rcpt := range recipients {
		if rcpt == ev.ActorID || seen[rcpt] {
			continue
		}
		seen[rcpt] = true

		if ev.DedupKey != nil {
			var existing notifications.Notification
			err := tx.First(&existing,
				"dedup_key = ? AND recipient_id = ?", *ev.DedupKey, rcpt).Error
			if err == nil {
				continue // already delivered for this key
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		n := notifications.Notification{
			RecipientID: rcpt,
			Message:     eventMessage(actor.Name, ev.Kind),
			TargetType:  ev.Target.Type,
			TargetID:    ev.Target.ID,
			URL:         e.targetURL(artworkID, ev.Target),
			DedupKey:    ev.DedupKey,
		}
		if err := tx.Create(&n).Error; err != nil {
			return err
		}
	}
	return nil
}

// resolveRecipients applies the recipient rules in order. A reply
// notifies the parent comment's author and the artwork's author when
// distinct; other kinds resolve a single recipient. The actor is
// filtered out by fanOut. Also returns the artwork id the target
// hangs off, for URL building.
func resolveRecipients(tx *gorm.DB, ev Event) ([]uint, string, error) {
	switch ev.Kind {
	case notifications.EventNewReply:
		var c engagement.Comment
		if err := tx.First(&c, "id = ?", ev.Target.ID).Error; err != nil {
			return nil, "", err
		}
		if c.ParentID == nil {
			return nil, "", fmt.Errorf("reply event for comment without parent")
		}
		var parent engagement.Comment
		if err := tx.First(&parent, "id = ?", *c.ParentID).Error; err != nil {
			return nil, "", err
		}
		var art gallery.Artwork
		if err := tx.First(&art, "id = ?", c.ArtworkID).Error; err != nil {
			return nil, "", err
		}
		return []uint{parent.AuthorID, art.AuthorID}, art.ID, nil

	case notifications.EventNewComment:
		var c engagement.Comment
		if err := tx.First(&c, "id = ?", ev.Target.ID).Error; err != nil {
			return nil, "", err
		}
		var art gallery.Artwork
		if err := tx.First(&art, "id = ?", c.ArtworkID).Error; err != nil {
			return nil, "", err
		}
		return []uint{art.AuthorID}, art.ID, nil

	case notifications.EventNewCritique:
		var cr engagement.Critique
		if err := tx.First(&cr, "id = ?", ev.Target.ID).Error; err != nil {
			return nil, "", err
		}
		var art gallery.Artwork
		if err := tx.First(&art, "id = ?", cr.ArtworkID).Error; err != nil {
			return nil, "", err
		}
		return []uint{art.AuthorID}, art.ID, nil

	case notifications.EventNewLike:
		var art gallery.Artwork
		if err := tx.First(&art, "id = ?", ev.Target.ID).Error; err != nil {
			return nil, "", err
		}
		return []uint{art.AuthorID}, art.ID, nil

	case notifications.EventNewReaction:
		var r engagement.Reaction
		if err := tx.First(&r, "id = ?", ev.Target.ID).Error; err != nil {
			return nil, "", err
		}
		author, artworkID, err := reactionTargetAuthor(tx, r)
		if err != nil {
			return nil, "", err
		}
		return []uint{author}, artworkID, nil
	}
	return nil, "", &ValidationError{Field: "kind", Reason: "unknown event kind"}
}

func reactionTargetAuthor(tx *gorm.DB, r engagement.Reaction) (uint, string, error) {
	switch r.TargetType {
	case engagement.ReactionTargetCritique:
		var cr engagement.Critique
		if err := tx.First(&cr, "id = ?", r.TargetID).Error; err != nil {
			return 0, "", err
		}
		return cr.AuthorID, cr.ArtworkID, nil
	case engagement.ReactionTargetComment:
		var c engagement.Comment
		if err := tx.First(&c, "id = ?", r.TargetID).Error; err != nil {
			return 0, "", err
		}
		return c.AuthorID, c.ArtworkID, nil
	}
	return 0, "", &ValidationError{Field: "target_type", Reason: "unknown reaction target"}
}

func eventMessage(actorName string, kind notifications.EventKind) string {
	switch kind {
	case notifications.EventNewCritique:
		return fmt.Sprintf("%s critiqued your artwork", actorName)
	case notifications.EventNewComment:
		return fmt.Sprintf("%s commented on your artwork", actorName)
	case notifications.EventNewReply:
		return fmt.Sprintf("%s replied to a comment on your artwork", actorName)
	case notifications.EventNewLike:
		return fmt.Sprintf("%s liked your artwork", actorName)
	case notifications.EventNewReaction:
		return fmt.Sprintf("%s reacted to your post", actorName)
	}
	return actorName
}

func (e *Engine) targetURL(artworkID string, target TargetRef) string {
	base := e.siteURL
	switch target.Type {
	case notifications.TargetArtwork:
		return fmt.Sprintf("%s/artworks/%s", base, target.ID)
	case notifications.TargetCritique:
		return fmt.Sprintf("%s/artworks/%s#critique-%s", base, artworkID, target.ID)
	case notifications.TargetComment:
		return fmt.Sprintf("%s/artworks/%s#comment-%s", base, artworkID, target.ID)
	case notifications.TargetReaction:
		return fmt.Sprintf("%s/artworks/%s", base, artworkID)
	}
	return base
}

// ------------------------------
// Read side
// ------------------------------

// ListForRecipient returns a recipient's notifications newest first.
func (e *Engine) ListForRecipient(ctx context.Context, recipientID uint, unreadOnly bool) ([]notifications.Notification, error) {
	q := e.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC")
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var out []notifications.Notification
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount reports how many unread notifications a recipient has.
func (e *Engine) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var n int64
	err := e.db.WithContext(ctx).Model(&notifications.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&n).Error
	return n, err
}

// GetForRecipient loads one notification, scoped to its recipient.
func (e *Engine) GetForRecipient(ctx context.Context, id string, recipientID uint) (*notifications.Notification, error) {
	var n notifications.Notification
	err := e.db.WithContext(ctx).
		First(&n, "id = ? AND recipient_id = ?", id, recipientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead flips a notification to read. ErrNotFound when the row
// does not exist or belongs to another recipient.
func (e *Engine) MarkRead(ctx context.Context, id string, recipientID uint) error {
	res := e.db.WithContext(ctx).Model(&notifications.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead flips every unread notification of a recipient.
func (e *Engine) MarkAllRead(ctx context.Context, recipientID uint) error {
	return e.db.WithContext(ctx).Model(&notifications.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

// ResolvedTarget is what a notification's weak reference points at
// right now. Deleting the target never corrupts the notification;
// it just resolves as unavailable.
type ResolvedTarget struct {
	Type      notifications.TargetType `json:"type"`
	ID        string                   `json:"id"`
	Available bool                     `json:"available"`
	ArtworkID string                   `json:"artwork_id,omitempty"`
	Excerpt   string                   `json:"excerpt,omitempty"`
}

// ResolveTarget dispatches over the notification's type tag and looks
// the target up.
func (e *Engine) ResolveTarget(ctx context.Context, n notifications.Notification) (ResolvedTarget, error) {
	out := ResolvedTarget{Type: n.TargetType, ID: n.TargetID}
	db := e.db.WithContext(ctx)

	var err error
	switch n.TargetType {
	case notifications.TargetArtwork:
		var art gallery.Artwork
		if err = db.First(&art, "id = ?", n.TargetID).Error; err == nil {
			out.Available = true
			out.ArtworkID = art.ID
			out.Excerpt = art.Title
		}
	case notifications.TargetCritique:
		var cr engagement.Critique
		if err = db.First(&cr, "id = ?", n.TargetID).Error; err == nil {
			out.Available = true
			out.ArtworkID = cr.ArtworkID
			out.Excerpt = excerpt(cr.Content)
		}
	case notifications.TargetComment:
		var c engagement.Comment
		if err = db.First(&c, "id = ?", n.TargetID).Error; err == nil {
			out.Available = true
			out.ArtworkID = c.ArtworkID
			out.Excerpt = excerpt(c.Content)
		}
	case notifications.TargetReaction:
		var r engagement.Reaction
		if err = db.First(&r, "id = ?", n.TargetID).Error; err == nil {
			out.Available = true
			out.Excerpt = r.Kind
		}
	default:
		return out, &ValidationError{Field: "target_type", Reason: "unknown target type"}
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, nil // target gone: unavailable, not an error
		}
		return out, err
	}
	return out, nil
}

func excerpt(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
