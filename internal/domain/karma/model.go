package karma

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KarmaEvent is an append-only ledger entry. Rows are never updated
// or deleted; a member's total is the sum of their amounts.
type KarmaEvent struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID uint   `gorm:"not null;index" json:"member_id"`
	Amount   int    `gorm:"not null" json:"amount"`

	SourceType string `gorm:"type:varchar(20);not null" json:"source_type"`
	SourceID   string `gorm:"type:uuid;not null" json:"source_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *KarmaEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
