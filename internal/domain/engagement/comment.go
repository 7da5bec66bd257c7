package engagement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a threaded remark on an artwork. The tree is stored
// arena style: flat rows keyed by id with parent-id edges, traversal
// walks edges instead of embedding nested structures.
type Comment struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID string `gorm:"type:uuid;not null;index" json:"artwork_id"`
	AuthorID  uint   `gorm:"not null;index" json:"author_id"`

	Content string `gorm:"type:text;not null" json:"content"`

	// ParentID, when set, must reference a comment on the same artwork.
	ParentID *string `gorm:"type:uuid;index" json:"parent_id,omitempty"`

	ReplyCount    int64 `gorm:"not null;default:0" json:"reply_count"`
	ReactionCount int64 `gorm:"not null;default:0" json:"reaction_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
