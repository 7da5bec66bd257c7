package notifications

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TargetType tags the polymorphic reference a notification holds.
// Resolution dispatches over the tag; there is no dynamic type lookup.
type TargetType string

const (
	TargetArtwork  TargetType = "artwork"
	TargetCritique TargetType = "critique"
	TargetComment  TargetType = "comment"
	TargetReaction TargetType = "reaction"
)

type EventKind string

const (
	EventNewCritique EventKind = "new_critique"
	EventNewComment  EventKind = "new_comment"
	EventNewReply    EventKind = "new_reply"
	EventNewLike     EventKind = "new_like"
	EventNewReaction EventKind = "new_reaction"
)

// Notification is written only by the fan-out engine and mutated only
// by the recipient marking it read. The target reference is weak:
// deleting the target leaves the row intact and resolution reports the
// target as unavailable.
type Notification struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uint   `gorm:"not null;index:idx_notifications_recipient_created,priority:1;uniqueIndex:idx_notifications_dedup,priority:2" json:"recipient_id"`

	Message string `gorm:"type:text;not null" json:"message"`

	TargetType TargetType `gorm:"type:varchar(20);not null" json:"target_type"`
	TargetID   string     `gorm:"type:uuid;not null" json:"target_id"`
	URL        string     `json:"url"`

	// Caller-supplied idempotency token, unique per recipient.
	// Nullable: retried requests without one remain an accepted
	// duplicate risk.
	DedupKey *string `gorm:"type:uuid;uniqueIndex:idx_notifications_dedup,priority:1" json:"-"`

	IsRead bool `gorm:"not null;default:false;index" json:"is_read"`

	CreatedAt time.Time `gorm:"index:idx_notifications_recipient_created,priority:2,sort:desc" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
