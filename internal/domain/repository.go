package domain

import (
	"context"
	"time"
)

// OCRProvider defines the interface for the external text-recognition
// capability: given raw image bytes, produce the recognized tokens.
// Implementations are expected to be expensive per call, long-lived,
// and safe for concurrent use.
type OCRProvider interface {
	ReadText(ctx context.Context, image []byte) ([]OCRToken, error)
}

// TokenCache defines the interface for caching OCR token sequences
// keyed by an image digest, so re-submitting the same photo skips the
// recognition round-trip. Reports are never cached; extraction and
// comparison always re-run.
type TokenCache interface {
	Get(ctx context.Context, key string) ([]OCRToken, error)
	Set(ctx context.Context, key string, tokens []OCRToken, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
