package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/haonguyen-dev/meeting-notes/internal/domain/entities"
)

// Defaults applied when a generation call fails or its response does not
// validate. Every normalization path is total: it always returns a value
// that is safe to display and store.
const (
	// SummaryEmptyTranscript is used when there was nothing to summarize
	SummaryEmptyTranscript = "Transcript is empty. No summary generated."
	// SummaryUnavailable is used when the generation call itself failed
	SummaryUnavailable = "Summary not available."
	// DefaultPurpose replaces purposes that fail validation
	DefaultPurpose = "General Discussion"

	maxPurposeWords = 4
	maxTags         = 5
	maxTagLength    = 20
)

// DefaultTags replaces tag responses that cannot be parsed as a list
func DefaultTags() []string {
	return []string{"General", "Meeting"}
}

// DefaultActionItems replaces action item responses that cannot be parsed
func DefaultActionItems() []string {
	return []string{"No action items identified."}
}

// NormalizeSummary trims the model response, degrading to the unavailable
// sentinel on a generation fault
func NormalizeSummary(raw string, genErr error) string {
	if genErr != nil {
		return SummaryUnavailable
	}
	return strings.TrimSpace(raw)
}

// NormalizeSentiment maps the response onto the three-label enum.
// Anything that is not exactly Positive, Negative or Neutral after
// trimming and capitalizing becomes Neutral.
func NormalizeSentiment(raw string, genErr error) entities.Sentiment {
	if genErr != nil {
		return entities.SentimentNeutral
	}
	s := entities.Sentiment(capitalize(strings.TrimSpace(raw)))
	if !s.Valid() {
		return entities.SentimentNeutral
	}
	return s
}

// NormalizePurpose trims the response and replaces anything longer than
// four words with the default purpose
func NormalizePurpose(raw string, genErr error) string {
	if genErr != nil {
		return DefaultPurpose
	}
	purpose := strings.TrimSpace(raw)
	if purpose == "" || len(strings.Fields(purpose)) > maxPurposeWords {
		return DefaultPurpose
	}
	return purpose
}

// NormalizeTags parses the response as a JSON array (possibly wrapped in a
// markdown code fence), keeps at most the first five entries, trims each,
// and drops entries that are empty or longer than twenty characters.
// Any parse or generation fault yields the default tag pair.
func NormalizeTags(raw string, genErr error) []string {
	if genErr != nil {
		return DefaultTags()
	}

	var parsed []interface{}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return DefaultTags()
	}

	if len(parsed) > maxTags {
		parsed = parsed[:maxTags]
	}

	tags := make([]string, 0, len(parsed))
	for _, entry := range parsed {
		tag := strings.TrimSpace(fmt.Sprintf("%v", entry))
		if tag == "" || utf8.RuneCountInString(tag) > maxTagLength {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// actionItem is the response shape of the legacy action item extraction
type actionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	Due      string `json:"due"`
}

// NormalizeActionItems renders the legacy action item response into
// display strings, degrading to the default sentinel on any fault
func NormalizeActionItems(raw string, genErr error) []string {
	if genErr != nil {
		return DefaultActionItems()
	}

	var parsed []actionItem
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return DefaultActionItems()
	}

	items := make([]string, 0, len(parsed))
	for _, it := range parsed {
		if strings.TrimSpace(it.Task) == "" {
			continue
		}
		items = append(items, fmt.Sprintf("%s (Assigned to %s)", it.Task, it.Assignee))
	}
	if len(items) == 0 {
		return DefaultActionItems()
	}
	return items
}

// NormalizeKeywords parses the legacy keyword response, degrading to an
// empty list on any fault
func NormalizeKeywords(raw string, genErr error) []string {
	if genErr != nil {
		return []string{}
	}

	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "[") {
		return []string{}
	}
	var keywords []string
	if err := json.Unmarshal([]byte(text), &keywords); err != nil {
		return []string{}
	}
	return keywords
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

// capitalize uppercases the first rune and lowercases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
