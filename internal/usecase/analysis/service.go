package analysis

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/haonguyen-dev/meeting-notes/errors"
	"github.com/haonguyen-dev/meeting-notes/internal/domain/entities"
	"github.com/haonguyen-dev/meeting-notes/internal/domain/repositories"
	pkgai "github.com/haonguyen-dev/meeting-notes/pkg/ai"
)

// Transcriber converts an audio stream into a transcript
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

// TransientStorage holds the uploaded payload for the lifetime of one request
type TransientStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetFile(ctx context.Context, objectName string) (io.ReadCloser, error)
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	RemoveFile(ctx context.Context, objectName string) error
}

// DurationEstimator produces the duration display string for a meeting
type DurationEstimator interface {
	Estimate(ctx context.Context, source, transcript string) string
}

// Upload is one inbound audio payload
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// Result is the combined outcome of one processed upload
type Result struct {
	Transcript     string             `json:"transcript"`
	Summary        string             `json:"summary"`
	Sentiment      entities.Sentiment `json:"sentiment"`
	Duration       string             `json:"duration"`
	MeetingPurpose string             `json:"meetingPurpose"`
	AutoTags       []string           `json:"autoTags"`
}

// Service runs the audio processing pipeline
type Service interface {
	ProcessAudio(ctx context.Context, upload Upload) (*Result, error)
}

type service struct {
	storage     TransientStorage
	transcriber Transcriber
	estimator   DurationEstimator
	aggregator  *Aggregator
	meetingRepo repositories.MeetingRepository
	logger      *zap.Logger
}

// NewService constructs the pipeline service
func NewService(
	storage TransientStorage,
	transcriber Transcriber,
	estimator DurationEstimator,
	aggregator *Aggregator,
	meetingRepo repositories.MeetingRepository,
	logger *zap.Logger,
) Service {
	return &service{
		storage:     storage,
		transcriber: transcriber,
		estimator:   estimator,
		aggregator:  aggregator,
		meetingRepo: meetingRepo,
		logger:      logger,
	}
}

// ProcessAudio runs the linear pipeline for one upload: stash the payload,
// transcribe, estimate duration, analyze, persist, respond. The transient
// object is released whatever the outcome.
func (s *service) ProcessAudio(ctx context.Context, upload Upload) (*Result, error) {
	objectName := fmt.Sprintf("uploads/%s%s", uuid.New().String(), filepath.Ext(upload.Filename))

	if err := s.storage.UploadFile(ctx, objectName, upload.Content, upload.Size, upload.ContentType); err != nil {
		return nil, apperrors.ErrStorageFailed("upload", err)
	}
	defer s.releaseUpload(objectName)

	if s.logger != nil {
		s.logger.Info("📂 Audio payload stored",
			zap.String("object_name", objectName),
			zap.String("filename", upload.Filename),
			zap.Int64("size", upload.Size),
		)
	}

	audio, err := s.storage.GetFile(ctx, objectName)
	if err != nil {
		return nil, apperrors.ErrStorageFailed("download", err)
	}

	transcript, err := s.transcriber.Transcribe(ctx, audio)
	audio.Close()
	if err != nil {
		if stdErrors.Is(err, pkgai.ErrPollTimeout) {
			return nil, apperrors.ErrTranscriptionTimeout()
		}
		return nil, apperrors.ErrTranscriptionFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("📝 Transcript ready",
			zap.String("object_name", objectName),
			zap.Int("text_length", len(transcript)),
		)
	}

	// A probe failure only demotes the estimate, so a missing URL does too
	source, err := s.storage.GetFileURL(ctx, objectName, 15*time.Minute)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Could not presign audio URL for probing", zap.Error(err))
		}
		source = ""
	}
	durationStr := s.estimator.Estimate(ctx, source, transcript)

	record := s.aggregator.Analyze(ctx, transcript)

	meeting := entities.NewMeeting(transcript, record, durationStr)
	if err := s.meetingRepo.Save(ctx, meeting); err != nil {
		return nil, apperrors.ErrDBQueryFailed("insert meeting", err)
	}

	if s.logger != nil {
		s.logger.Info("💾 Meeting saved",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("sentiment", string(record.Sentiment)),
			zap.String("meeting_purpose", record.MeetingPurpose),
			zap.String("duration", durationStr),
			zap.Int("tag_count", len(record.AutoTags)),
		)
	}

	return &Result{
		Transcript:     transcript,
		Summary:        record.Summary,
		Sentiment:      record.Sentiment,
		Duration:       durationStr,
		MeetingPurpose: record.MeetingPurpose,
		AutoTags:       record.AutoTags,
	}, nil
}

// releaseUpload removes the transient object best-effort; failures are
// logged, never surfaced
func (s *service) releaseUpload(objectName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.storage.RemoveFile(ctx, objectName); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to remove transient upload",
			zap.String("object_name", objectName),
			zap.Error(err),
		)
	}
}
