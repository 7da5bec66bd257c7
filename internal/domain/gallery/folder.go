package gallery

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder groups an owner's artworks. SortIndex is a total order
// within the owner's folder set.
type Folder struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uint   `gorm:"not null;index:idx_folders_owner_sort,priority:1" json:"owner_id"`
	Name      string `gorm:"not null" json:"name"`
	SortIndex int    `gorm:"not null;default:0;index:idx_folders_owner_sort,priority:2" json:"sort_index"`

	Items []Artwork `gorm:"foreignKey:FolderID;constraint:OnDelete:SET NULL;" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
