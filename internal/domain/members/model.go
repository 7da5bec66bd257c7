package members

import (
	"time"
)

type Member struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Email    string  `gorm:"not null;uniqueIndex:idx_members_email"`
	Password *string `gorm:""`
	Role     string  `gorm:"type:varchar(20);not null;default:'member'"`

	Bio       string `gorm:"type:text"`
	AvatarURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
