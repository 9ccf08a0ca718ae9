package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labelproof/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client talks to a remote OCR inference service: POST an image, get back
// the recognized text blocks. The client is long-lived and safe for
// concurrent use; construct one per process and inject it.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	language    string
	rateLimiter *rate.Limiter
	debug       bool
}

// readTextRequest is the inference request payload
type readTextRequest struct {
	ImageB64 string `json:"image_base64"`
	Language string `json:"language"`
}

// recognizedBlock is one region of recognized text in the inference response
type recognizedBlock struct {
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	BBox       [][2]float64 `json:"bbox"`
}

// readTextResponse is the inference response payload
type readTextResponse struct {
	Results []recognizedBlock `json:"results"`
}

// NewClient creates a new OCR service client
func NewClient(apiKey, baseURL, language string) *Client {
	// Pace requests so a burst of submissions cannot saturate the
	// inference service: 2 req/sec sustained, burst of 5.
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	if language == "" {
		language = "en"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		language:    language,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// ReadText sends the image to the inference service and returns the
// recognized tokens. Transient failures are retried up to 3 times with
// exponential backoff. An empty token list is a valid response; the caller
// decides what zero tokens means.
func (c *Client) ReadText(ctx context.Context, image []byte) ([]domain.OCRToken, error) {
	payload, err := json.Marshal(readTextRequest{
		ImageB64: base64.StdEncoding.EncodeToString(image),
		Language: c.language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/ocr/readtext", c.baseURL)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL, payload)
		if err != nil {
			if c.debug {
				log.Printf("[OCR] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			if !sleepBackoff(ctx, attempt) {
				return nil, ctx.Err()
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[OCR] service error (attempt %d) - status: %d, body: %s",
					attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrOCRFailure, resp.StatusCode)
			if !sleepBackoff(ctx, attempt) {
				return nil, ctx.Err()
			}
			continue
		}

		var readResp readTextResponse
		if err := json.Unmarshal(body, &readResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		tokens := make([]domain.OCRToken, len(readResp.Results))
		for i, block := range readResp.Results {
			tokens[i] = domain.OCRToken{
				Text:       block.Text,
				Confidence: block.Confidence,
				BBox:       block.BBox,
			}
		}

		if c.debug {
			log.Printf("[OCR] recognized %d text blocks", len(tokens))
		}
		return tokens, nil
	}

	return nil, lastErr
}

// doRequest executes the POST with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "LabelProof/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
	}

	return resp, nil
}

// exponentialBackoff returns the wait before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// sleepBackoff waits out the backoff, honoring context cancellation.
// Returns false if the context expired during the wait.
func sleepBackoff(ctx context.Context, attempt int) bool {
	select {
	case <-time.After(exponentialBackoff(attempt)):
		return true
	case <-ctx.Done():
		return false
	}
}
