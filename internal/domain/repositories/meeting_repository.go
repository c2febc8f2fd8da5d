package repositories

import (
	"context"

	"github.com/haonguyen-dev/meeting-notes/internal/domain/entities"
)

// MeetingRepository defines persistence operations for processed meetings
type MeetingRepository interface {
	// Save inserts a new meeting document
	Save(ctx context.Context, m *entities.Meeting) error

	// FindByTag returns meetings whose auto_tags contain the given tag
	FindByTag(ctx context.Context, tag string) ([]*entities.Meeting, error)

	// FindByPurpose returns meetings with the given meeting purpose
	FindByPurpose(ctx context.Context, purpose string) ([]*entities.Meeting, error)

	// FindRecent returns up to limit meetings sorted by creation time descending
	FindRecent(ctx context.Context, limit int) ([]*entities.Meeting, error)

	// PurposeStats groups meetings by purpose with count and average
	// sentiment score (Positive=1, Neutral=0, Negative=-1), most frequent first
	PurposeStats(ctx context.Context) ([]entities.PurposeStat, error)
}
