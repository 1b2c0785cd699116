package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client calls the Gemini generateContent REST endpoint to draft reason
// texts. Every failure path returns a fallback string instead of an error
// so the portal's forms keep working without the generator.
type Client struct {
	apiURL  string
	apiKey  string
	model   string
	timeout time.Duration
	httpc   *http.Client
	logger  *slog.Logger
}

type Config struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewClient(config Config, logger *slog.Logger) *Client {
	model := config.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		apiURL:  strings.TrimRight(config.APIURL, "/"),
		apiKey:  config.APIKey,
		model:   model,
		timeout: timeout,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// RequestReason drafts a formal reason for an employee leave request.
func (c *Client) RequestReason(ctx context.Context, dto RequestReasonDTO) string {
	prompt := fmt.Sprintf(`Generate a formal and concise reason for an employee leave request.
Leave Type: %s
Context: %s
The tone should be professional and appropriate for a leave application.`,
		dto.LeaveType, dto.Context)

	return c.generate(ctx, prompt)
}

// RejectionReason drafts a polite explanation for rejecting a request.
func (c *Client) RejectionReason(ctx context.Context, dto RejectionReasonDTO) string {
	prompt := fmt.Sprintf(`Generate a polite and professional reason for rejecting a leave request.
Employee Name: %s
Leave Type: %s
Dates: %s to %s
Reason for rejection: %s
Keep it concise, empathetic, and clear. Suggest discussing alternative dates if possible.`,
		dto.UserName, dto.LeaveType, dto.StartDate, dto.EndDate, dto.Reason)

	return c.generate(ctx, prompt)
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) string {
	if c.apiKey == "" {
		return FallbackNotConfigured
	}

	payload := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("suggestion: failed to marshal request", "error", err)
		return FallbackUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.apiURL, c.model, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		c.logger.Error("suggestion: failed to create HTTP request", "error", err)
		return FallbackUnavailable
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		c.logger.Warn("suggestion: generation request failed", "model", c.model, "error", err)
		return FallbackUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("suggestion: generator returned non-OK status",
			"model", c.model,
			"status", resp.StatusCode,
			"body", string(body))
		return FallbackUnavailable
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Warn("suggestion: failed to decode response", "error", err)
		return FallbackUnavailable
	}

	text := out.Text()
	if text == "" {
		return FallbackUnavailable
	}
	return text
}

// Text flattens the first candidate's parts into a single string.
func (r generateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}
