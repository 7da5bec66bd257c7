package engine

import (
	"context"

	"critiquehub/internal/domain/karma"
)

// Karma awarded to the content's author when their work receives
// engagement. Negative amounts appended on take-backs (unlike).
const (
	karmaCritiqueReceived = 5
	karmaCommentReceived  = 1
	karmaLikeReceived     = 1
	karmaReactionReceived = 1
)

// recordKarma appends a ledger entry after the triggering action has
// committed. The ledger is fire-and-forget: a failure here never
// fails the engagement action, it is logged for reconciliation.
func (e *Engine) recordKarma(ctx context.Context, memberID uint, amount int, sourceType, sourceID string) {
	if amount == 0 || memberID == 0 {
		return
	}
	ev := karma.KarmaEvent{
		MemberID:   memberID,
		Amount:     amount,
		SourceType: sourceType,
		SourceID:   sourceID,
	}
	if err := e.db.WithContext(ctx).Create(&ev).Error; err != nil {
		e.log.Warn().
			Err(err).
			Uint("member_id", memberID).
			Int("amount", amount).
			Str("source_type", sourceType).
			Str("source_id", sourceID).
			Msg("karma ledger append failed, needs reconciliation")
	}
}

// KarmaTotal is the sum over the member's ledger entries. The same
// value must come out of a full replay regardless of append order.
func (e *Engine) KarmaTotal(ctx context.Context, memberID uint) (int64, error) {
	var total int64
	err := e.db.WithContext(ctx).Model(&karma.KarmaEvent{}).
		Where("member_id = ?", memberID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// KarmaHistory lists a member's ledger entries, oldest first.
func (e *Engine) KarmaHistory(ctx context.Context, memberID uint) ([]karma.KarmaEvent, error) {
	var out []karma.KarmaEvent
	err := e.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
