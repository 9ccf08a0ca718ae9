package domain

// OCRToken is a single region of recognized text from a label photograph.
// Tokens arrive in the engine's scan order, which is not guaranteed to be
// reading order. Only Text feeds extraction; confidence and the bounding
// box are carried through for diagnostics.
type OCRToken struct {
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
	BBox       [][2]float64 `json:"bbox,omitempty"`
}

// ExtractionResult holds the structured fields recovered from one label image.
// Nullable fields use pointers so the JSON payload distinguishes "not found"
// from an empty string.
type ExtractionResult struct {
	BrandName      *string  `json:"brand_name"`
	AlcoholContent *string  `json:"alcohol_content"`
	NetContents    *string  `json:"net_contents"`
	HealthWarning  bool     `json:"health_warning"`
	ProductClass   *string  `json:"product_class"`
	AllText        []string `json:"all_text"`
	FullText       string   `json:"full_text"`
}

// SubmitRequest is the caller's self-reported label metadata plus an optional
// photographed label as a data URI (data:image/<fmt>;base64,<payload>).
type SubmitRequest struct {
	BrandName      string `json:"brandName"`
	ProductClass   string `json:"productClass"`
	AlcoholContent string `json:"alcoholContent"`
	NetContents    string `json:"netContents"`
	LabelImage     string `json:"labelImage,omitempty"`
}

// ComparisonStatus is the tri-state outcome of comparing one claimed field
// against its extracted counterpart.
type ComparisonStatus int

const (
	// NotProvided means the caller left the field blank; nothing was evaluated.
	NotProvided ComparisonStatus = iota
	// Match means the claimed value reconciles with the extracted value.
	Match
	// Mismatch means the values disagree or the extracted side was unusable.
	Mismatch
)

// BrandComparison is the brand comparator's outcome. FoundBrand holds the
// claimed brand words that were located on the label, in claim order, even
// when the overall status is Mismatch. Nil when no word was located.
type BrandComparison struct {
	Status     ComparisonStatus
	FoundBrand *string
}

// VerificationReport is the sole process output for one submission.
// Errors is empty only when every provided field matched (or was absent)
// and the health-warning phrase was found. When no image is supplied,
// ImageExtracted is nil and Errors stays empty; callers must not read
// that as full verification success.
type VerificationReport struct {
	ImageExtracted *ExtractionResult `json:"imageExtracted"`
	Errors         []string          `json:"errors"`
}
