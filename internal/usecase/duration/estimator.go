package duration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Unknown is returned when neither metadata nor transcript give any signal
const Unknown = "Unknown"

// wordsPerMinute is the assumed average speaking rate for the fallback estimate
const wordsPerMinute = 150

// ProbeFunc reads the duration embedded in an audio source's metadata
type ProbeFunc func(ctx context.Context, source string) (time.Duration, error)

// Estimator produces a display string for a meeting's duration.
// It prefers exact audio metadata and falls back to a word-count estimate.
type Estimator struct {
	probe  ProbeFunc
	logger *zap.Logger
}

// NewEstimator creates an estimator with the given metadata probe
func NewEstimator(probe ProbeFunc, logger *zap.Logger) *Estimator {
	return &Estimator{probe: probe, logger: logger}
}

// Estimate returns "M:SS" when metadata is readable, "~N min" from the
// transcript word count otherwise, or "Unknown" when both are unavailable.
// Probe failures are swallowed; they only demote the result to the fallback.
func (e *Estimator) Estimate(ctx context.Context, source, transcript string) string {
	if e.probe != nil && source != "" {
		d, err := e.probe(ctx, source)
		if err == nil {
			return FormatExact(d)
		}
		if e.logger != nil {
			e.logger.Debug("could not read audio duration from metadata",
				zap.String("source", source),
				zap.Error(err),
			)
		}
	}

	if words := len(strings.Fields(transcript)); words > 0 {
		minutes := (words + wordsPerMinute - 1) / wordsPerMinute
		return fmt.Sprintf("~%d min", minutes)
	}

	return Unknown
}

// FormatExact renders a metadata duration as minutes and zero-padded seconds
func FormatExact(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
