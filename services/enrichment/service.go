package enrichment

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.0-flash"

// Service generates the host-facing augmented note and the attendee
// LinkedIn summary with Gemini. It is a constructed dependency: the
// orchestrator receives it (or a stub) rather than a package-level client.
type Service struct {
	client *genai.Client
}

func NewService(ctx context.Context) (*Service, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Service{client: client}, nil
}

// Generate returns a note of roughly 100 words for the host and a 50-word
// summary of the attendee. A malformed or empty model response degrades to
// empty strings; only transport failures return an error.
func (s *Service) Generate(ctx context.Context, answers map[string]string, linkedinURL string) (string, string, error) {
	prompt := buildPrompt(answers, linkedinURL)

	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	result, err := s.client.Models.GenerateContent(
		ctx,
		model,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.4)),
		},
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", "", nil
	}

	note, summary := parseNoteAndSummary(result.Candidates[0].Content.Parts[0].Text)
	return note, summary, nil
}

func buildPrompt(answers map[string]string, linkedinURL string) string {
	var answersText strings.Builder
	questions := make([]string, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Strings(questions)
	for _, q := range questions {
		answersText.WriteString(fmt.Sprintf("%s: %s\n", q, answers[q]))
	}

	if linkedinURL == "" {
		linkedinURL = "N/A"
	}

	return fmt.Sprintf(`You are an assistant for meeting preparation. Given the following LinkedIn profile URL and answers to custom questions, generate:

1. An "augmented note" (a concise, actionable summary for the meeting host, max 100 words).
2. A "LinkedIn summary" (a 1-2 sentence summary of the attendee, suitable for a LinkedIn intro, max 50 words).

LinkedIn URL: %s

Answers:
%s
Format:
Augmented Note: ...
LinkedIn Summary: ...`, linkedinURL, answersText.String())
}
