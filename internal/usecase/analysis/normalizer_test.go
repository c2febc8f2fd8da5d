package analysis

import (
	"errors"
	"reflect"
	"testing"

	"github.com/haonguyen-dev/meeting-notes/internal/domain/entities"
)

func TestNormalizeSummary(t *testing.T) {
	if got := NormalizeSummary("  A short summary.  ", nil); got != "A short summary." {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := NormalizeSummary("ignored", errors.New("boom")); got != SummaryUnavailable {
		t.Fatalf("expected unavailable sentinel, got %q", got)
	}
}

func TestNormalizeSentiment(t *testing.T) {
	cases := []struct {
		raw  string
		want entities.Sentiment
	}{
		{"Positive", entities.SentimentPositive},
		{"  negative \n", entities.SentimentNegative},
		{"NEUTRAL", entities.SentimentNeutral},
		{"it was GREAT overall", entities.SentimentNeutral},
		{"", entities.SentimentNeutral},
	}
	for _, tc := range cases {
		if got := NormalizeSentiment(tc.raw, nil); got != tc.want {
			t.Fatalf("NormalizeSentiment(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
	if got := NormalizeSentiment("Positive", errors.New("boom")); got != entities.SentimentNeutral {
		t.Fatalf("fault should map to Neutral, got %q", got)
	}
}

func TestNormalizePurpose(t *testing.T) {
	if got := NormalizePurpose("  Sprint Planning \n", nil); got != "Sprint Planning" {
		t.Fatalf("unexpected purpose %q", got)
	}
	if got := NormalizePurpose("a really very long meeting purpose", nil); got != DefaultPurpose {
		t.Fatalf("long purpose should fall back to default, got %q", got)
	}
	if got := NormalizePurpose("", nil); got != DefaultPurpose {
		t.Fatalf("empty purpose should fall back to default, got %q", got)
	}
	if got := NormalizePurpose("Team Sync", errors.New("boom")); got != DefaultPurpose {
		t.Fatalf("fault should fall back to default, got %q", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain array", `["Design", "Sprint"]`, []string{"Design", "Sprint"}},
		{"json fence", "```json\n[\"Budget\", \"Client\"]\n```", []string{"Budget", "Client"}},
		{"bare fence", "```\n[\"Review\"]\n```", []string{"Review"}},
		{"not a list", `"just a string"`, DefaultTags()},
		{"prose response", "Here are some tags for you", DefaultTags()},
		{
			"truncated to five before filtering",
			`["a", "b", "c", "d", "", "f", "g"]`,
			[]string{"a", "b", "c", "d"},
		},
		{
			"overlong entries dropped",
			`["ok", "this tag is much longer than twenty characters"]`,
			[]string{"ok"},
		},
		{"whitespace trimmed", `["  Sprint  "]`, []string{"Sprint"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTags(tc.raw, nil); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeTags(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
	if got := NormalizeTags(`["Design"]`, errors.New("boom")); !reflect.DeepEqual(got, DefaultTags()) {
		t.Fatalf("fault should yield default tags, got %v", got)
	}
}

func TestNormalizeActionItems(t *testing.T) {
	raw := `[{"task": "Ship the report", "assignee": "Dana", "due": "2026-01-10"}, {"task": "", "assignee": "x"}]`
	want := []string{"Ship the report (Assigned to Dana)"}
	if got := NormalizeActionItems(raw, nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected items %v", got)
	}
	if got := NormalizeActionItems("not json", nil); !reflect.DeepEqual(got, DefaultActionItems()) {
		t.Fatalf("unparseable response should yield default, got %v", got)
	}
	if got := NormalizeActionItems(`[]`, nil); !reflect.DeepEqual(got, DefaultActionItems()) {
		t.Fatalf("empty list should yield default, got %v", got)
	}
}

func TestNormalizeKeywords(t *testing.T) {
	if got := NormalizeKeywords(`["roadmap", "budget"]`, nil); !reflect.DeepEqual(got, []string{"roadmap", "budget"}) {
		t.Fatalf("unexpected keywords %v", got)
	}
	if got := NormalizeKeywords("roadmap, budget", nil); len(got) != 0 {
		t.Fatalf("non-list response should yield empty slice, got %v", got)
	}
	if got := NormalizeKeywords(`["x"]`, errors.New("boom")); len(got) != 0 {
		t.Fatalf("fault should yield empty slice, got %v", got)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n[1]\n```": "[1]",
		"```\n[2]\n```":     "[2]",
		"  [3]  ":           "[3]",
	}
	for in, want := range cases {
		if got := extractJSON(in); got != want {
			t.Fatalf("extractJSON(%q) = %q, want %q", in, got, want)
		}
	}
}
