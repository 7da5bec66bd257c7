package gallery

import (
	"time"

	"critiquehub/internal/domain/media"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArtworkVersion is an immutable, numbered revision snapshot.
// VersionNo is unique per artwork and assigned max+1 inside the
// creating transaction.
type ArtworkVersion struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID string `gorm:"type:uuid;not null;uniqueIndex:idx_versions_artwork_no,priority:1" json:"-"`
	VersionNo int    `gorm:"not null;uniqueIndex:idx_versions_artwork_no,priority:2" json:"version_no"`

	ImageID *string      `gorm:"type:uuid" json:"image_id,omitempty"`
	Image   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image,omitempty"`

	Caption string `json:"caption,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (v *ArtworkVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
