package engagement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Critique is structured feedback on an artwork, optionally pinned to
// one of its versions. ArtworkVersionID, when set, must reference a
// version of the same artwork.
type Critique struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID string `gorm:"type:uuid;not null;index" json:"artwork_id"`
	AuthorID  uint   `gorm:"not null;index" json:"author_id"`

	Content string `gorm:"type:text;not null" json:"content"`

	ArtworkVersionID *string `gorm:"type:uuid;index" json:"artwork_version_id,omitempty"`

	ReactionCount int64 `gorm:"not null;default:0" json:"reaction_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Critique) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
