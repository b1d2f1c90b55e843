package enrichment

import (
	"strings"
	"testing"
)

func TestParseNoteAndSummary(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantNote    string
		wantSummary string
	}{
		{
			name:        "well formed",
			text:        "Augmented Note: Discuss hiring plans.\nLinkedIn Summary: Alice leads recruiting at Acme.",
			wantNote:    "Discuss hiring plans.",
			wantSummary: "Alice leads recruiting at Acme.",
		},
		{
			name:        "markdown bold labels",
			text:        "**Augmented Note:** Review the Q3 roadmap.\n**LinkedIn Summary:** Bob is a product manager.",
			wantNote:    "Review the Q3 roadmap.",
			wantSummary: "Bob is a product manager.",
		},
		{
			name:        "multiline note",
			text:        "Augmented Note: First point.\nSecond point.\nLinkedIn Summary: One liner.",
			wantNote:    "First point.\nSecond point.",
			wantSummary: "One liner.",
		},
		{
			name:     "note only",
			text:     "Augmented Note: Just a note, no summary section.",
			wantNote: "Just a note, no summary section.",
		},
		{
			name:        "summary only",
			text:        "LinkedIn Summary: Only the summary came back.",
			wantSummary: "Only the summary came back.",
		},
		{
			name:        "lowercase labels",
			text:        "augmented note: relaxed casing\nlinkedin summary: still matches",
			wantNote:    "relaxed casing",
			wantSummary: "still matches",
		},
		{
			name: "empty input",
			text: "",
		},
		{
			name: "unlabeled text",
			text: "The model ignored the format instructions entirely.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note, summary := parseNoteAndSummary(tt.text)
			if note != tt.wantNote {
				t.Errorf("note = %q, want %q", note, tt.wantNote)
			}
			if summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", summary, tt.wantSummary)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	answers := map[string]string{
		"What do you want to discuss?": "Hiring",
		"Company size?":                "40 people",
	}
	prompt := buildPrompt(answers, "https://linkedin.com/in/alice")

	if !strings.Contains(prompt, "LinkedIn URL: https://linkedin.com/in/alice") {
		t.Error("prompt missing LinkedIn URL line")
	}
	// Answers render in sorted question order so the prompt is stable.
	sizeIdx := strings.Index(prompt, "Company size?: 40 people")
	discussIdx := strings.Index(prompt, "What do you want to discuss?: Hiring")
	if sizeIdx == -1 || discussIdx == -1 {
		t.Fatalf("prompt missing answers:\n%s", prompt)
	}
	if sizeIdx > discussIdx {
		t.Error("answers not rendered in sorted order")
	}
	if !strings.Contains(prompt, "Augmented Note: ...") || !strings.Contains(prompt, "LinkedIn Summary: ...") {
		t.Error("prompt missing format instructions")
	}
}

func TestBuildPromptNoLinkedin(t *testing.T) {
	prompt := buildPrompt(map[string]string{"Topic?": "Sales"}, "")
	if !strings.Contains(prompt, "LinkedIn URL: N/A") {
		t.Error("missing LinkedIn URL should render as N/A")
	}
}
