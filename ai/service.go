// Package ai is the generation collaborator: note summaries and deep-dive
// analyses. Without an API key it runs in a deterministic mock mode so the
// rest of the system behaves identically in development and tests.
package ai

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"media-journal/models"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
	defaultRetries = 2
)

// Service talks to the chat-completions API, or serves canned material in
// mock mode. Failed live calls retry a bounded number of times and then
// propagate the error; callers decide whether that failure matters.
type Service struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	client     *http.Client
	logger     *slog.Logger
}

func New(apiKey string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		maxRetries: defaultRetries,
		client:     &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// MockMode reports whether the service is running without a live model.
func (s *Service) MockMode() bool {
	return s.apiKey == ""
}

// hashIndex maps input deterministically onto [0, n).
func hashIndex(input string, n int) int {
	sum := md5.Sum([]byte(input))
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Summarize produces a short summary of a note's content. Mock mode is pure:
// the same content always selects the same canned summary.
func (s *Service) Summarize(ctx context.Context, content string) (string, error) {
	if s.MockMode() {
		return mockSummaries[hashIndex(content, len(mockSummaries))], nil
	}

	system := "You summarize a user's note about a media work (movie, anime, book, game or music) in at most 100 characters, capturing which aspects of the work they focused on and how they felt about it."
	return s.chat(ctx, system, content)
}

// DeepDive answers a question about a media item using the user's notes as
// context and proposes related works. Mock mode returns a fixed analysis
// varied deterministically by the question hash, plus two fixed works.
func (s *Service) DeepDive(ctx context.Context, question string, media *models.Media, notes []*models.Note) (string, []models.RelatedWorkInput, error) {
	if s.MockMode() {
		analysis := mockAnalysis
		switch hashIndex(question, 3) {
		case 0:
			analysis += "\n\n" + mockAnalysisSociety
		case 1:
			analysis += "\n\n" + mockAnalysisCraft
		}
		return analysis, mockRelatedWorks(), nil
	}

	system := s.deepDivePrompt(media, notes)
	raw, err := s.chat(ctx, system, question)
	if err != nil {
		return "", nil, err
	}

	var parsed struct {
		Analysis     string                    `json:"analysis"`
		RelatedWorks []models.RelatedWorkInput `json:"related_works"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		// The model ignored the format; keep the text, drop the works.
		s.logger.Warn("deep dive response was not structured", "error", err)
		return raw, nil, nil
	}
	return parsed.Analysis, parsed.RelatedWorks, nil
}

func (s *Service) deepDivePrompt(media *models.Media, notes []*models.Note) string {
	var b strings.Builder
	b.WriteString("You are an expert analyst of media works. Answer the user's question with a detailed analysis grounded in the work's themes, symbolism and characters.\n\n")
	fmt.Fprintf(&b, "Title: %s\nType: %s\n", media.Title, media.MediaType)
	if media.Creator != nil {
		fmt.Fprintf(&b, "Creator: %s\n", *media.Creator)
	}
	if media.ReleaseYear != nil {
		fmt.Fprintf(&b, "Year: %d\n", *media.ReleaseYear)
	}
	if len(media.Genres) > 0 {
		fmt.Fprintf(&b, "Genres: %s\n", strings.Join(media.Genres, ", "))
	}
	if media.Description != nil {
		fmt.Fprintf(&b, "Overview: %s\n", *media.Description)
	}
	if len(notes) > 0 {
		b.WriteString("\nThe user's notes:\n")
		for i, note := range notes {
			fmt.Fprintf(&b, "%d. %s\n", i+1, note.Content)
			if note.Rating != nil {
				fmt.Fprintf(&b, "   rating: %.1f/5\n", *note.Rating)
			}
			if note.Emotion != nil {
				fmt.Fprintf(&b, "   emotion: %s\n", *note.Emotion)
			}
			if note.AISummary != nil {
				fmt.Fprintf(&b, "   summary: %s\n", *note.AISummary)
			}
		}
	}
	b.WriteString("\nRespond with a JSON object: {\"analysis\": string, \"related_works\": [{\"title\", \"creator\", \"description\", \"url\"}]} with two or three related works.")
	return b.String()
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chat performs one completion with a bounded retry loop. No recursion, no
// unbounded backoff: after maxRetries+1 attempts the last error propagates.
func (s *Service) chat(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		text, err := s.doChat(ctx, system, user)
		if err == nil {
			return text, nil
		}
		lastErr = err
		s.logger.Warn("chat completion failed", "attempt", attempt+1, "error", err)
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("chat completion failed after %d attempts: %w", s.maxRetries+1, lastErr)
}

func (s *Service) doChat(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
