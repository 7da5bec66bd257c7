package engagement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionTarget string

const (
	ReactionTargetCritique ReactionTarget = "critique"
	ReactionTargetComment  ReactionTarget = "comment"
)

// Reaction is a typed response to a critique or comment. The unique
// index enforces at most one reaction per (author, target, kind).
type Reaction struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;uniqueIndex:idx_reactions_author_target_kind,priority:1" json:"author_id"`

	TargetType ReactionTarget `gorm:"type:varchar(20);not null;uniqueIndex:idx_reactions_author_target_kind,priority:2" json:"target_type"`
	TargetID   string         `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_author_target_kind,priority:3;index" json:"target_id"`

	Kind string `gorm:"type:varchar(20);not null;uniqueIndex:idx_reactions_author_target_kind,priority:4" json:"kind"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
