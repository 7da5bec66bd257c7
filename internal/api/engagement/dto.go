package engagement

import (
	"time"

	"critiquehub/internal/engine"
)

type AddCommentRequest struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parent_id"`
	DedupKey *string `json:"dedup_key"`
}

type SubmitCritiqueRequest struct {
	Content   string  `json:"content" binding:"required"`
	VersionID *string `json:"version_id"`
	DedupKey  *string `json:"dedup_key"`
}

type PostReactionRequest struct {
	TargetType string  `json:"target_type" binding:"required"`
	TargetID   string  `json:"target_id" binding:"required"`
	Kind       string  `json:"kind" binding:"required"`
	DedupKey   *string `json:"dedup_key"`
}

type ThreadEntryDTO struct {
	ID            string    `json:"id"`
	AuthorID      uint      `json:"author_id"`
	Content       string    `json:"content"`
	ParentID      *string   `json:"parent_id,omitempty"`
	Depth         int       `json:"depth"`
	ReplyCount    int64     `json:"reply_count"`
	ReactionCount int64     `json:"reaction_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func toThreadEntryDTO(entry engine.ThreadEntry) ThreadEntryDTO {
	c := entry.Comment
	return ThreadEntryDTO{
		ID:            c.ID,
		AuthorID:      c.AuthorID,
		Content:       c.Content,
		ParentID:      c.ParentID,
		Depth:         entry.Depth,
		ReplyCount:    c.ReplyCount,
		ReactionCount: c.ReactionCount,
		CreatedAt:     c.CreatedAt,
	}
}
