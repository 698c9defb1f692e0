package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"insight/internal/core"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 1024
	apiVersion       = "2023-06-01"
)

// Client calls the Anthropic messages API and parses the reply into
// advice entries.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client. Model and baseURL fall back to defaults
// when empty; baseURL is overridable so tests can point at a fake.
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Suggest implements Advisor.
func (c *Client) Suggest(ctx context.Context, summary Summary) ([]Advice, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: defaultMaxTokens,
		Messages:  []apiMessage{{Role: "user", Content: buildPrompt(summary)}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal advice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call advice API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("advice API returned status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode advice response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return nil, fmt.Errorf("advice response has no content")
	}

	advices, err := extractAdvice(parsed.Content[0].Text)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Advice generated",
		"model", c.model,
		"suggestions", len(advices))
	return advices, nil
}

// buildPrompt embeds the summary numbers in a fixed instruction. The
// categories are emitted in sorted order so identical summaries always
// produce the identical prompt (which also keys the advice cache).
func buildPrompt(summary Summary) string {
	var sb strings.Builder
	sb.WriteString("You are a personal budgeting assistant. Given a user's monthly income ")
	sb.WriteString("and their spending for the last month grouped by category, suggest ")
	sb.WriteString("concrete ways to spend less.\n\n")
	fmt.Fprintf(&sb, "Monthly income: %.2f\n\nSpending by category:\n", summary.Income)

	names := make([]string, 0, len(summary.Categories))
	for c := range summary.Categories {
		names = append(names, string(c))
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "- %s: %.2f\n", name, summary.Categories[core.Category(name)])
	}

	sb.WriteString("\nRespond with a JSON array only, no prose around it, in this shape:\n")
	sb.WriteString(`[{"advice": "short actionable suggestion", "estimate": 50}]` + "\n")
	sb.WriteString("where estimate is the whole amount per month the suggestion could save.\n")
	return sb.String()
}

// extractAdvice pulls the JSON array out of the model reply, tolerating
// prose or code fences around it.
func extractAdvice(text string) ([]Advice, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in advice response")
	}
	var advices []Advice
	if err := json.Unmarshal([]byte(text[start:end+1]), &advices); err != nil {
		return nil, fmt.Errorf("parse advice payload: %w", err)
	}
	return advices, nil
}
