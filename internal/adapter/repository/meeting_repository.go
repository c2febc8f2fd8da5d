package repository

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/haonguyen-dev/meeting-notes/internal/domain/entities"
	repo "github.com/haonguyen-dev/meeting-notes/internal/domain/repositories"
)

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repo.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Save(ctx context.Context, m *entities.Meeting) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to save meeting: %w", err)
	}
	return nil
}

func (r *meetingRepository) FindByTag(ctx context.Context, tag string) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where(datatypes.JSONArrayQuery("auto_tags").Contains(tag)).
		Order("created_at DESC").
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find meetings by tag: %w", err)
	}
	return meetings, nil
}

func (r *meetingRepository) FindByPurpose(ctx context.Context, purpose string) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("meeting_purpose = ?", purpose).
		Order("created_at DESC").
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find meetings by purpose: %w", err)
	}
	return meetings, nil
}

func (r *meetingRepository) FindRecent(ctx context.Context, limit int) ([]*entities.Meeting, error) {
	if limit <= 0 {
		limit = 10
	}
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent meetings: %w", err)
	}
	return meetings, nil
}

func (r *meetingRepository) PurposeStats(ctx context.Context) ([]entities.PurposeStat, error) {
	// Sentiment score mapping mirrors entities.Sentiment.Score
	q := `SELECT meeting_purpose,
	        COUNT(*) AS count,
	        AVG(CASE sentiment
	            WHEN 'Positive' THEN 1
	            WHEN 'Negative' THEN -1
	            ELSE 0
	        END) AS avg_sentiment
	    FROM meetings
	    GROUP BY meeting_purpose
	    ORDER BY count DESC`

	var stats []entities.PurposeStat
	if err := r.db.WithContext(ctx).Raw(q).Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate meeting stats: %w", err)
	}
	return stats, nil
}
