// Package asr uploads recorded audio to the speech-to-text endpoint and
// extracts the transcript from the response.
package asr

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PieterBecking/whisper-app/internal/config"
	"github.com/PieterBecking/whisper-app/internal/jsonpath"
	"github.com/PieterBecking/whisper-app/internal/logging"
)

// RetryExhaustedError is returned when every upload attempt failed.
type RetryExhaustedError struct {
	Attempts     int
	MaxRetry     int
	LastResponse []byte
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("transcription failed after %d/%d attempts: %s",
		e.Attempts, e.MaxRetry, formatResponse(e.LastResponse))
}

// Client performs transcription uploads with exponential backoff retries.
type Client struct {
	endpoint   string
	token      string
	model      string
	language   string
	prompt     string
	textPath   string
	maxRetry   int
	baseDelay  time.Duration
	httpClient *http.Client
}

// New creates a transcription client from the runtime config.
func New(cfg config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second}
	}
	return &Client{
		endpoint:   cfg.APIEndpoint,
		token:      cfg.Token,
		model:      cfg.Model,
		language:   cfg.Language,
		prompt:     cfg.Prompt,
		textPath:   cfg.TextPath,
		maxRetry:   cfg.MaxRetry,
		baseDelay:  time.Duration(cfg.RetryBaseDelay * float64(time.Second)),
		httpClient: httpClient,
	}
}

// Transcribe uploads the audio file and returns the trimmed transcript.
// The context bounds the whole call including retries; expiry surfaces as
// an error, never a hang.
func (c *Client) Transcribe(ctx context.Context, filePath string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("API endpoint is empty")
	}

	delay := c.baseDelay
	var lastResp []byte

	for try := 1; ; try++ {
		ok, res := c.doUpload(ctx, filePath)
		lastResp = res
		if ok {
			return strings.TrimSpace(jsonpath.ExtractText(res, c.textPath)), nil
		}
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("transcription aborted: %w", err)
		}

		logging.Sugar.Debugw("upload attempt failed", "attempt", try, "response", formatResponse(res))
		if try >= c.maxRetry {
			return "", &RetryExhaustedError{Attempts: try, MaxRetry: c.maxRetry, LastResponse: lastResp}
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("transcription aborted: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func (c *Client) doUpload(ctx context.Context, filePath string) (bool, []byte) {
	f, err := os.Open(filePath)
	if err != nil {
		return false, []byte(fmt.Sprintf("open file error: %v", err))
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return false, []byte(fmt.Sprintf("create form file error: %v", err))
	}
	if _, err := io.Copy(part, f); err != nil {
		return false, []byte(fmt.Sprintf("copy file error: %v", err))
	}
	if c.model != "" {
		_ = writer.WriteField("model", c.model)
	}
	if c.language != "" {
		_ = writer.WriteField("language", c.language)
	}
	if c.prompt != "" {
		_ = writer.WriteField("prompt", c.prompt)
	}
	_ = writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return false, []byte(fmt.Sprintf("new request error: %v", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", "whisper-app/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, []byte(fmt.Sprintf("request error: %v", err))
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	logging.Sugar.Debugw("upload request done", "status", resp.StatusCode, "duration", time.Since(start))
	if resp.StatusCode != http.StatusOK {
		return false, respBody
	}
	return true, respBody
}

// formatResponse renders a response body for error messages. Text is
// truncated, anything that is not valid UTF-8 gets hex-dumped instead of
// leaking raw bytes into the log.
func formatResponse(b []byte) string {
	switch {
	case len(b) == 0:
		return "<empty>"
	case utf8.Valid(b):
		const limit = 1000
		if len(b) <= limit {
			return string(b)
		}
		return fmt.Sprintf("%s... (truncated, total %d bytes)", b[:limit], len(b))
	default:
		const limit = 256
		if len(b) <= limit {
			return fmt.Sprintf("<binary %d bytes, hex: %s>", len(b), hex.EncodeToString(b))
		}
		return fmt.Sprintf("<binary %d bytes, prefix hex: %s...>", len(b), hex.EncodeToString(b[:limit]))
	}
}
