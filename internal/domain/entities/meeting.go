package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Sentiment is the overall tone of a meeting
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Valid reports whether s is one of the three known labels
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Score maps a sentiment to its numeric value used by aggregates
func (s Sentiment) Score() int {
	switch s {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	default:
		return 0
	}
}

// AnalysisRecord holds the four annotations derived from a transcript.
// Every field is always populated; normalization falls back to defaults.
type AnalysisRecord struct {
	Summary        string    `json:"summary"`
	Sentiment      Sentiment `json:"sentiment"`
	MeetingPurpose string    `json:"meeting_purpose"`
	AutoTags       []string  `json:"auto_tags"`

	// Legacy annotations, produced only when legacy extraction is enabled
	ActionItems []string `json:"action_items,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Meeting is the persisted unit: transcript plus analysis plus duration.
// Created once per processed upload, never updated afterwards.
type Meeting struct {
	ID             uuid.UUID                    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Transcript     string                       `json:"transcript" gorm:"type:text;not null"`
	Summary        string                       `json:"summary" gorm:"type:text;not null"`
	Sentiment      Sentiment                    `json:"sentiment" gorm:"type:varchar(20);not null;index"`
	Duration       string                       `json:"duration" gorm:"type:varchar(20);not null"`
	MeetingPurpose string                       `json:"meeting_purpose" gorm:"type:varchar(100);not null;index"`
	AutoTags       datatypes.JSONSlice[string]  `json:"auto_tags" gorm:"type:jsonb"`
	ActionItems    *datatypes.JSONSlice[string] `json:"action_items,omitempty" gorm:"type:jsonb"`
	Keywords       *datatypes.JSONSlice[string] `json:"keywords,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time                    `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time                    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a Meeting from a transcript, its analysis and duration
func NewMeeting(transcript string, record AnalysisRecord, duration string) *Meeting {
	m := &Meeting{
		ID:             uuid.New(),
		Transcript:     transcript,
		Summary:        record.Summary,
		Sentiment:      record.Sentiment,
		Duration:       duration,
		MeetingPurpose: record.MeetingPurpose,
		AutoTags:       datatypes.NewJSONSlice(record.AutoTags),
	}
	if len(record.ActionItems) > 0 {
		items := datatypes.NewJSONSlice(record.ActionItems)
		m.ActionItems = &items
	}
	if len(record.Keywords) > 0 {
		kw := datatypes.NewJSONSlice(record.Keywords)
		m.Keywords = &kw
	}
	return m
}

// PurposeStat is one row of the per-purpose meeting aggregate
type PurposeStat struct {
	MeetingPurpose string  `json:"meeting_purpose"`
	Count          int64   `json:"count"`
	AvgSentiment   float64 `json:"avg_sentiment"`
}
