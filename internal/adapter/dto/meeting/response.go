package meeting

import (
	"time"

	"github.com/haonguyen-dev/meeting-notes/internal/domain/entities"
)

// Response is the read-API shape of a stored meeting
type Response struct {
	ID             string    `json:"id"`
	Transcript     string    `json:"transcript"`
	Summary        string    `json:"summary"`
	Sentiment      string    `json:"sentiment"`
	Duration       string    `json:"duration"`
	MeetingPurpose string    `json:"meeting_purpose"`
	AutoTags       []string  `json:"auto_tags"`
	ActionItems    []string  `json:"action_items,omitempty"`
	Keywords       []string  `json:"keywords,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FromEntity converts a meeting entity to its response shape
func FromEntity(m *entities.Meeting) *Response {
	resp := &Response{
		ID:             m.ID.String(),
		Transcript:     m.Transcript,
		Summary:        m.Summary,
		Sentiment:      string(m.Sentiment),
		Duration:       m.Duration,
		MeetingPurpose: m.MeetingPurpose,
		AutoTags:       m.AutoTags,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.ActionItems != nil {
		resp.ActionItems = *m.ActionItems
	}
	if m.Keywords != nil {
		resp.Keywords = *m.Keywords
	}
	return resp
}

// FromEntities converts a list of meeting entities
func FromEntities(ms []*entities.Meeting) []*Response {
	out := make([]*Response, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromEntity(m))
	}
	return out
}
