package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/labelproof/backend/internal/domain"
)

// Accepted label image shape: data:image/<fmt>;base64,<payload>
var dataURIRegex = regexp.MustCompile(`^data:image/[^;]+;base64,(.*)$`)

// Field labels used in discrepancy messages
const (
	labelBrandName      = "Brand Name"
	labelProductClass   = "Product Class"
	labelAlcoholContent = "Alcohol Content"
	labelNetContents    = "Net Contents"
)

const healthWarningError = "Health Warning: Label does not contain required GOVERNMENT WARNING"

// VerificationServiceConfig holds configuration for the verification service
type VerificationServiceConfig struct {
	CacheTTL           time.Duration
	OCRTimeout         time.Duration
	EnableDebugLogging bool
}

// VerificationService reconciles self-reported label metadata against text
// recognized from the photographed label. It owns the full chain: data-URI
// parsing, image decode, OCR (via the injected provider, fronted by the
// token cache), field extraction, and the four field comparisons.
type VerificationService struct {
	ocr        domain.OCRProvider
	cache      domain.TokenCache
	cacheTTL   time.Duration
	ocrTimeout time.Duration
	debug      bool
}

// NewVerificationService creates a new verification service with dependencies
func NewVerificationService(
	ocr domain.OCRProvider,
	cache domain.TokenCache,
	config VerificationServiceConfig,
) *VerificationService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	ocrTimeout := config.OCRTimeout
	if ocrTimeout == 0 {
		ocrTimeout = 60 * time.Second
	}

	return &VerificationService{
		ocr:        ocr,
		cache:      cache,
		cacheTTL:   cacheTTL,
		ocrTimeout: ocrTimeout,
		debug:      config.EnableDebugLogging,
	}
}

// Verify processes one submission and always returns a report; failures at
// any stage become entries in the report's error list, never a returned
// error. With no image supplied, extraction and every check are skipped and
// the report is {nil, []} - absence of errors there means "not verifiable",
// not "verified".
func (s *VerificationService) Verify(ctx context.Context, req *domain.SubmitRequest) *domain.VerificationReport {
	report := &domain.VerificationReport{Errors: []string{}}

	var extracted *domain.ExtractionResult
	if req.LabelImage != "" {
		m := dataURIRegex.FindStringSubmatch(req.LabelImage)
		if m == nil {
			report.Errors = append(report.Errors, "Invalid base64 image format")
		} else {
			result, err := s.extractFromImage(ctx, m[1])
			if err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("Image extraction error: %s", err.Error()))
			} else {
				extracted = result
				report.ImageExtracted = extracted
			}
		}
	}

	if extracted == nil {
		return report
	}

	// All four fields are evaluated independently; no short-circuit.
	// The extracted brand name (a first-token guess) is overwritten with
	// whichever claimed words were actually located, even on a partial
	// mismatch, before the discrepancy is formatted.
	brand := CompareBrandName(req.BrandName, extracted.FullText)
	if brand.FoundBrand != nil {
		extracted.BrandName = brand.FoundBrand
	}
	if brand.Status == domain.Mismatch {
		report.Errors = append(report.Errors,
			formatMismatch(labelBrandName, req.BrandName, extracted.BrandName))
	}

	if CompareTextField(req.ProductClass, extracted.ProductClass) == domain.Mismatch {
		report.Errors = append(report.Errors,
			formatMismatch(labelProductClass, req.ProductClass, extracted.ProductClass))
	}

	if CompareAlcoholContent(req.AlcoholContent, extracted.AlcoholContent) == domain.Mismatch {
		report.Errors = append(report.Errors,
			formatMismatch(labelAlcoholContent, req.AlcoholContent, extracted.AlcoholContent))
	}

	if CompareNetContents(req.NetContents, extracted.NetContents) == domain.Mismatch {
		report.Errors = append(report.Errors,
			formatMismatch(labelNetContents, req.NetContents, extracted.NetContents))
	}

	if !extracted.HealthWarning {
		report.Errors = append(report.Errors, healthWarningError)
	}

	return report
}

// extractFromImage decodes the base64 payload, recognizes text, and extracts
// structured fields. Zero recognized tokens is a hard failure, never an
// empty-result success.
func (s *VerificationService) extractFromImage(ctx context.Context, payload string) (*domain.ExtractionResult, error) {
	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}

	tokens, err := s.recognize(ctx, image)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w. Please try a clearer image", domain.ErrNoTextRecognized)
	}

	texts := make([]string, len(tokens))
	for i, token := range tokens {
		texts[i] = token.Text
	}

	return ExtractFields(texts), nil
}

// recognize runs OCR on the image bytes, consulting the token cache first.
// OCR latency dominates request cost, so the remote call carries its own
// timeout and successful token sequences are cached by image digest.
func (s *VerificationService) recognize(ctx context.Context, image []byte) ([]domain.OCRToken, error) {
	key := tokenCacheKey(image)

	if s.cache != nil {
		if tokens, err := s.cache.Get(ctx, key); err == nil {
			if s.debug {
				log.Printf("[VERIFY] OCR cache hit (%d tokens)", len(tokens))
			}
			return tokens, nil
		}
	}

	ocrCtx, cancel := context.WithTimeout(ctx, s.ocrTimeout)
	defer cancel()

	tokens, err := s.ocr.ReadText(ocrCtx, image)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(tokens) > 0 {
		if err := s.cache.Set(ctx, key, tokens, s.cacheTTL); err != nil && s.debug {
			log.Printf("[VERIFY] failed to cache OCR tokens: %v", err)
		}
	}

	return tokens, nil
}

// tokenCacheKey derives the cache key from the decoded image bytes.
func tokenCacheKey(image []byte) string {
	sum := sha256.Sum256(image)
	return "ocr:" + hex.EncodeToString(sum[:])
}

// formatMismatch renders one discrepancy line. A nil extracted field shows
// as an empty quoted value.
func formatMismatch(label, provided string, extracted *string) string {
	value := ""
	if extracted != nil {
		value = *extracted
	}
	return fmt.Sprintf("%s: Provided '%s' vs Extracted '%s'", label, provided, value)
}
