package analysis

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/haonguyen-dev/meeting-notes/internal/domain/entities"
)

// Generator is the generation capability: prompt in, free text out
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Aggregator derives the analysis record from a transcript by issuing one
// generation call per annotation and normalizing each response.
type Aggregator struct {
	generator    Generator
	legacyFields bool
	logger       *zap.Logger
}

// NewAggregator creates an aggregator. When legacyFields is true the old
// action-items and keywords extractions run as well.
func NewAggregator(generator Generator, legacyFields bool, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		generator:    generator,
		legacyFields: legacyFields,
		logger:       logger,
	}
}

// Analyze builds the complete analysis record for a transcript. The calls
// are independent and run concurrently; a fault on one call degrades that
// annotation to its default without affecting the others. Analyze itself
// never fails.
func (a *Aggregator) Analyze(ctx context.Context, transcript string) entities.AnalysisRecord {
	var record entities.AnalysisRecord
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if strings.TrimSpace(transcript) == "" {
			record.Summary = SummaryEmptyTranscript
			return
		}
		raw, err := a.generate(ctx, "summary", summaryPrompt(transcript))
		record.Summary = NormalizeSummary(raw, err)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		raw, err := a.generate(ctx, "sentiment", sentimentPrompt(transcript))
		record.Sentiment = NormalizeSentiment(raw, err)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		raw, err := a.generate(ctx, "purpose", purposePrompt(transcript))
		record.MeetingPurpose = NormalizePurpose(raw, err)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		raw, err := a.generate(ctx, "tags", tagsPrompt(transcript))
		record.AutoTags = NormalizeTags(raw, err)
	}()

	if a.legacyFields {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := a.generate(ctx, "action_items", actionItemsPrompt(transcript))
			record.ActionItems = NormalizeActionItems(raw, err)
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := a.generate(ctx, "keywords", keywordsPrompt(transcript))
			record.Keywords = NormalizeKeywords(raw, err)
		}()
	}

	wg.Wait()
	return record
}

// generate invokes the generation capability and logs faults; the caller
// converts a fault into the annotation's default
func (a *Aggregator) generate(ctx context.Context, kind, prompt string) (string, error) {
	raw, err := a.generator.Generate(ctx, prompt)
	if err != nil && a.logger != nil {
		a.logger.Warn("⚠️ Generation call failed, using default",
			zap.String("kind", kind),
			zap.Error(err),
		)
	}
	return raw, err
}
