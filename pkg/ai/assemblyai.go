package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/haonguyen-dev/meeting-notes/pkg/config"
)

// ErrPollTimeout is returned when the transcription job does not reach a
// terminal status within the configured polling deadline.
var ErrPollTimeout = errors.New("transcription polling deadline exceeded")

// AssemblyAIClient uploads audio to AssemblyAI and polls for the transcript
type AssemblyAIClient struct {
	client       *aai.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig, logger *zap.Logger) *AssemblyAIClient {
	return &AssemblyAIClient{
		client:       aai.NewClient(cfg.APIKey),
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		logger:       logger,
	}
}

// NewAssemblyAIClientWithBaseURL creates a client pointed at a custom API
// endpoint. Used by tests against a mock server.
func NewAssemblyAIClientWithBaseURL(cfg *config.AssemblyAIConfig, logger *zap.Logger, baseURL string) *AssemblyAIClient {
	return &AssemblyAIClient{
		client:       aai.NewClientWithOptions(aai.WithAPIKey(cfg.APIKey), aai.WithBaseURL(baseURL)),
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		logger:       logger,
	}
}

// Transcribe uploads the audio stream, submits a transcription job and polls
// until it completes, errors out, or the polling deadline passes.
// An empty transcript text is a valid result.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	var uploadURL string
	uploadFn := func() error {
		url, err := c.client.Upload(ctx, audio)
		if err != nil {
			return fmt.Errorf("failed to upload audio: %w", err)
		}
		uploadURL = url
		return nil
	}

	// The upload is the flaky part of the exchange; retry it briefly.
	// The audio reader cannot be rewound, so retries only cover transport
	// errors before any bytes were consumed.
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(uploadFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}

	if c.logger != nil {
		c.logger.Info("📤 Audio uploaded to AssemblyAI",
			zap.String("upload_url", uploadURL),
		)
	}

	transcript, err := c.client.Transcripts.SubmitFromURL(ctx, uploadURL, &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("failed to submit transcription job: %w", err)
	}
	if transcript.ID == nil {
		return "", fmt.Errorf("transcription job submitted without an ID")
	}
	jobID := *transcript.ID

	if c.logger != nil {
		c.logger.Info("🎙️ Transcription job submitted",
			zap.String("transcript_id", jobID),
			zap.Duration("poll_interval", c.pollInterval),
			zap.Duration("poll_timeout", c.pollTimeout),
		)
	}

	return c.pollTranscript(ctx, jobID)
}

// pollTranscript checks the job status at a fixed interval until a terminal
// status or the deadline.
func (c *AssemblyAIClient) pollTranscript(ctx context.Context, jobID string) (string, error) {
	started := time.Now()
	deadline := started.Add(c.pollTimeout)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		transcript, err := c.client.Transcripts.Get(ctx, jobID)
		if err != nil {
			return "", fmt.Errorf("failed to poll transcription status: %w", err)
		}

		switch transcript.Status {
		case aai.TranscriptStatusCompleted:
			if c.logger != nil {
				c.logger.Info("✅ Transcription completed",
					zap.String("transcript_id", jobID),
					zap.Duration("elapsed", time.Since(started)),
				)
			}
			if transcript.Text == nil {
				return "", nil
			}
			return *transcript.Text, nil

		case aai.TranscriptStatusError:
			msg := "unknown error"
			if transcript.Error != nil {
				msg = *transcript.Error
			}
			return "", fmt.Errorf("transcription failed: %s", msg)
		}

		if time.Now().After(deadline) {
			if c.logger != nil {
				c.logger.Error("❌ Transcription polling timed out",
					zap.String("transcript_id", jobID),
					zap.Duration("timeout", c.pollTimeout),
				)
			}
			return "", ErrPollTimeout
		}
	}
}
