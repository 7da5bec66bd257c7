package engagement

import (
	"time"
)

// ArtworkLike is the member/artwork like relation. One row per
// (artwork, member); the artwork's like_count is maintained in the
// same transaction that inserts or deletes the row.
type ArtworkLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArtworkID string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_artwork_member,priority:1" json:"artwork_id"`
	MemberID  uint      `gorm:"not null;uniqueIndex:idx_likes_artwork_member,priority:2" json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
}
