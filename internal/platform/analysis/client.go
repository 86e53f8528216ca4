package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Upload is one file handed to the analysis service.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Client submits clinical-note files for analysis. One request, one full
// result: there is no retry, no cancellation beyond the timeout, and no
// partial-result handling — any failure surfaces as a single error and the
// caller returns to its idle state.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Analyze uploads the given files and decodes the per-patient results.
func (c *Client) Analyze(ctx context.Context, files []Upload) ([]PatientResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		var err error
		defer func() { pw.CloseWithError(err) }()
		for _, f := range files {
			var part io.Writer
			part, err = mw.CreateFormFile("files", f.Filename)
			if err != nil {
				return
			}
			if _, err = io.Copy(part, f.Content); err != nil {
				return
			}
		}
		err = mw.Close()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/raf/files", pr)
	if err != nil {
		return nil, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("analysis service returned error")
		return nil, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var patients []PatientResponse
	if err := json.NewDecoder(resp.Body).Decode(&patients); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}

	c.logger.Info().
		Int("patients", len(patients)).
		Dur("latency", time.Since(start)).
		Msg("analysis complete")
	return patients, nil
}
