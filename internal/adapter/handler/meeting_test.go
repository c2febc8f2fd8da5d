package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	apperrors "github.com/haonguyen-dev/meeting-notes/errors"
	"github.com/haonguyen-dev/meeting-notes/internal/domain/entities"
	"github.com/haonguyen-dev/meeting-notes/internal/usecase/analysis"
	pkgvalidator "github.com/haonguyen-dev/meeting-notes/pkg/validator"
)

type stubService struct {
	result *analysis.Result
	err    error
}

func (s *stubService) ProcessAudio(_ context.Context, _ analysis.Upload) (*analysis.Result, error) {
	return s.result, s.err
}

type stubMeetingRepo struct {
	meetings  []*entities.Meeting
	stats     []entities.PurposeStat
	lastLimit int
	lastTag   string
	lastPurpose   string
}

func (s *stubMeetingRepo) Save(context.Context, *entities.Meeting) error { return nil }

func (s *stubMeetingRepo) FindByTag(_ context.Context, tag string) ([]*entities.Meeting, error) {
	s.lastTag = tag
	return s.meetings, nil
}

func (s *stubMeetingRepo) FindByPurpose(_ context.Context, purpose string) ([]*entities.Meeting, error) {
	s.lastPurpose = purpose
	return s.meetings, nil
}

func (s *stubMeetingRepo) FindRecent(_ context.Context, limit int) ([]*entities.Meeting, error) {
	s.lastLimit = limit
	return s.meetings, nil
}

func (s *stubMeetingRepo) PurposeStats(context.Context) ([]entities.PurposeStat, error) {
	return s.stats, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	return e
}

func multipartAudio(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("fake audio bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return body, mw.FormDataContentType()
}

func TestProcessAudioMissingFile(t *testing.T) {
	e := newTestEcho()
	h := NewMeetingHandler(&stubService{}, &stubMeetingRepo{}, nil, nil)

	body, contentType := multipartAudio(t, "recording", "a.mp3")
	req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := h.ProcessAudio(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "No audio file uploaded" {
		t.Fatalf("unexpected error message %q", resp["error"])
	}
}

func TestProcessAudioSuccess(t *testing.T) {
	e := newTestEcho()
	svc := &stubService{result: &analysis.Result{
		Transcript:     "hello team",
		Summary:        "A short sync.",
		Sentiment:      entities.SentimentPositive,
		Duration:       "2:05",
		MeetingPurpose: "Team Sync",
		AutoTags:       []string{"Sync"},
	}}
	h := NewMeetingHandler(svc, &stubMeetingRepo{}, nil, nil)

	body, contentType := multipartAudio(t, "audio", "standup.mp3")
	req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := h.ProcessAudio(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"transcript", "summary", "sentiment", "duration", "meetingPurpose", "autoTags"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("response missing key %q: %v", key, resp)
		}
	}
	if resp["duration"] != "2:05" {
		t.Fatalf("unexpected duration %v", resp["duration"])
	}
}

func TestProcessAudioPipelineFailure(t *testing.T) {
	e := newTestEcho()
	svc := &stubService{err: apperrors.ErrTranscriptionTimeout()}
	h := NewMeetingHandler(svc, &stubMeetingRepo{}, nil, nil)

	body, contentType := multipartAudio(t, "audio", "a.mp3")
	req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := h.ProcessAudio(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Audio transcription timed out" {
		t.Fatalf("unexpected error message %q", resp["error"])
	}
}

func TestListRecentDefaultLimit(t *testing.T) {
	e := newTestEcho()
	repo := &stubMeetingRepo{meetings: []*entities.Meeting{
		entities.NewMeeting("t", entities.AnalysisRecord{
			Summary:        "s",
			Sentiment:      entities.SentimentNeutral,
			MeetingPurpose: "Team Sync",
			AutoTags:       []string{"Sync"},
		}, "1:00"),
	}}
	h := NewMeetingHandler(&stubService{}, repo, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/meetings", nil)
	rec := httptest.NewRecorder()

	if err := h.ListRecent(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.lastLimit != 10 {
		t.Fatalf("expected default limit 10, got %d", repo.lastLimit)
	}

	var resp []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0]["meeting_purpose"] != "Team Sync" {
		t.Fatalf("unexpected body %v", resp)
	}
}

func TestListRecentRejectsInvalidLimit(t *testing.T) {
	e := newTestEcho()
	h := NewMeetingHandler(&stubService{}, &stubMeetingRepo{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/meetings?limit=500", nil)
	rec := httptest.NewRecorder()

	if err := h.ListRecent(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListByTag(t *testing.T) {
	e := newTestEcho()
	repo := &stubMeetingRepo{}
	h := NewMeetingHandler(&stubService{}, repo, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/meetings/by-tag/Design", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("tag")
	c.SetParamValues("Design")

	if err := h.ListByTag(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.lastTag != "Design" {
		t.Fatalf("expected tag Design, got %q", repo.lastTag)
	}
}

func TestStats(t *testing.T) {
	e := newTestEcho()
	repo := &stubMeetingRepo{stats: []entities.PurposeStat{
		{MeetingPurpose: "Team Sync", Count: 3, AvgSentiment: 0.5},
		{MeetingPurpose: "Project Review", Count: 1, AvgSentiment: -1},
	}}
	h := NewMeetingHandler(&stubService{}, repo, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/meetings/stats", nil)
	rec := httptest.NewRecorder()

	if err := h.Stats(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}
	if stats[0]["meeting_purpose"] != "Team Sync" {
		t.Fatalf("expected most frequent purpose first, got %v", stats[0])
	}
	if !strings.Contains(rec.Body.String(), "avg_sentiment") {
		t.Fatalf("stats row missing avg_sentiment: %s", rec.Body.String())
	}
}
