package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labelproof/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://ocr.example.com", "en")

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://ocr.example.com", client.baseURL)
	assert.Equal(t, "en", client.language)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestNewClient_DefaultLanguage(t *testing.T) {
	client := NewClient("", "https://ocr.example.com", "")
	assert.Equal(t, "en", client.language)
}

func TestSetDebug(t *testing.T) {
	client := NewClient("test-api-key", "https://ocr.example.com", "en")

	assert.False(t, client.debug)
	client.SetDebug(true)
	assert.True(t, client.debug)
	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestReadText_Success(t *testing.T) {
	image := []byte("fake-label-image-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ocr/readtext", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		var req readTextRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, base64.StdEncoding.EncodeToString(image), req.ImageB64)
		assert.Equal(t, "en", req.Language)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(readTextResponse{
			Results: []recognizedBlock{
				{Text: "OLD CROW", Confidence: 0.97},
				{Text: "750 ML", Confidence: 0.88},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "en")
	tokens, err := client.ReadText(context.Background(), image)

	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "OLD CROW", tokens[0].Text)
	assert.Equal(t, 0.97, tokens[0].Confidence)
	assert.Equal(t, "750 ML", tokens[1].Text)
}

func TestReadText_NoAuthHeaderWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(readTextResponse{})
	}))
	defer server.Close()

	client := NewClient("", server.URL, "en")
	tokens, err := client.ReadText(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestReadText_EmptyResultsIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(readTextResponse{Results: []recognizedBlock{}})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "en")
	tokens, err := client.ReadText(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestReadText_RetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(readTextResponse{
			Results: []recognizedBlock{{Text: "BOURBON", Confidence: 0.9}},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "en")
	tokens, err := client.ReadText(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	require.Len(t, tokens, 1)
	assert.Equal(t, "BOURBON", tokens[0].Text)
}

func TestReadText_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "en")
	tokens, err := client.ReadText(context.Background(), []byte("img"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOCRFailure))
	assert.Nil(t, tokens)
}

func TestReadText_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "en")
	_, err := client.ReadText(context.Background(), []byte("img"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
