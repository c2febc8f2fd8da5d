package handler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/haonguyen-dev/meeting-notes/errors"
	dto "github.com/haonguyen-dev/meeting-notes/internal/adapter/dto/meeting"
	"github.com/haonguyen-dev/meeting-notes/internal/domain/repositories"
	"github.com/haonguyen-dev/meeting-notes/internal/infrastructure/cache"
	"github.com/haonguyen-dev/meeting-notes/internal/usecase/analysis"
)

const readCacheTTL = 30 * time.Second

// MeetingHandler handles the audio processing endpoint and the meeting read APIs
type MeetingHandler struct {
	svc         analysis.Service
	meetingRepo repositories.MeetingRepository
	cache       *cache.RedisClient
	logger      *zap.Logger
}

// NewMeetingHandler creates a new meeting handler. The cache may be nil;
// read APIs then always hit the database.
func NewMeetingHandler(svc analysis.Service, meetingRepo repositories.MeetingRepository, cache *cache.RedisClient, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{
		svc:         svc,
		meetingRepo: meetingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// ProcessAudio accepts a multipart audio upload, runs the full pipeline and
// returns the combined result.
// Response 200: {transcript, summary, sentiment, duration, meetingPurpose, autoTags}
// Response 400: {"error": "No audio file uploaded"}
// Response 500: {"error": <message>}
func (h *MeetingHandler) ProcessAudio(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrNoAudioFile())
	}

	if h.logger != nil {
		h.logger.Info("📥 Audio upload received",
			zap.String("filename", fileHeader.Filename),
			zap.Int64("size", fileHeader.Size),
		)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	defer src.Close()

	result, err := h.svc.ProcessAudio(c.Request().Context(), analysis.Upload{
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     src,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// ListRecent returns the most recent meetings, newest first
func (h *MeetingHandler) ListRecent(c echo.Context) error {
	req := dto.ListRecentRequest{Limit: 10}
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid query parameters"))
	}
	if req.Limit == 0 {
		req.Limit = 10
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("limit must be between 1 and 100"))
	}

	cacheKey := fmt.Sprintf("meetings:recent:%d", req.Limit)
	if body, ok := h.cached(c, cacheKey); ok {
		return c.JSONBlob(200, body)
	}

	meetings, err := h.meetingRepo.FindRecent(c.Request().Context(), req.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return h.respondCached(c, cacheKey, dto.FromEntities(meetings))
}

// ListByTag returns meetings whose auto tags contain the given tag
func (h *MeetingHandler) ListByTag(c echo.Context) error {
	tag := c.Param("tag")
	if tag == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("tag is required"))
	}

	meetings, err := h.meetingRepo.FindByTag(c.Request().Context(), tag)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.FromEntities(meetings))
}

// ListByPurpose returns meetings with the given meeting purpose
func (h *MeetingHandler) ListByPurpose(c echo.Context) error {
	purpose := c.Param("purpose")
	if purpose == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("purpose is required"))
	}

	meetings, err := h.meetingRepo.FindByPurpose(c.Request().Context(), purpose)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.FromEntities(meetings))
}

// Stats returns the per-purpose aggregate with the average sentiment score
func (h *MeetingHandler) Stats(c echo.Context) error {
	const cacheKey = "meetings:stats"
	if body, ok := h.cached(c, cacheKey); ok {
		return c.JSONBlob(200, body)
	}

	stats, err := h.meetingRepo.PurposeStats(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return h.respondCached(c, cacheKey, stats)
}

// cached looks up a read-API response body in the cache
func (h *MeetingHandler) cached(c echo.Context, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	val, ok := h.cache.Get(c.Request().Context(), key)
	if !ok {
		return nil, false
	}
	return []byte(val), true
}

// respondCached writes the response and stores it in the cache best-effort
func (h *MeetingHandler) respondCached(c echo.Context, key string, data interface{}) error {
	if h.cache != nil {
		if body, err := json.Marshal(data); err == nil {
			if err := h.cache.Set(c.Request().Context(), key, string(body), readCacheTTL); err != nil && h.logger != nil {
				h.logger.Warn("⚠️ Failed to cache response",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
	}
	return HandleSuccess(h.logger, c, data)
}
