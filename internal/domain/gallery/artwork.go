package gallery

import (
	"time"

	"critiquehub/internal/domain/media"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Artwork struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// AuthorID never changes after creation; updates go through
	// column allow-lists that exclude it.
	AuthorID uint    `gorm:"not null;index" json:"author_id"`
	FolderID *string `gorm:"type:uuid;index" json:"folder_id,omitempty"`

	Title    string `gorm:"not null" json:"title"`
	Medium   string `json:"medium,omitempty"`
	WidthCM  int    `gorm:"column:width_cm" json:"width_cm,omitempty"`
	HeightCM int    `gorm:"column:height_cm" json:"height_cm,omitempty"`

	ImageID *string      `gorm:"type:uuid" json:"image_id,omitempty"`
	Image   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image,omitempty"`

	// Derived aggregates, maintained atomically alongside the
	// underlying relation rows. Recount must always agree.
	LikeCount     int64 `gorm:"not null;default:0" json:"like_count"`
	CritiqueCount int64 `gorm:"not null;default:0" json:"critique_count"`

	Versions []ArtworkVersion `gorm:"constraint:OnDelete:CASCADE;" json:"versions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
