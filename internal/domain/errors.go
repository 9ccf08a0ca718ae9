package domain

import "errors"

var (
	// ErrInvalidImageFormat is returned when the label image is not a
	// data:image/...;base64 URI
	ErrInvalidImageFormat = errors.New("invalid base64 image format")

	// ErrImageDecode is returned when the base64 payload cannot be decoded
	ErrImageDecode = errors.New("failed to decode image")

	// ErrNoTextRecognized is returned when OCR produces zero tokens for an image
	ErrNoTextRecognized = errors.New("could not read text from the label image")

	// ErrOCRFailure is returned when the OCR inference service request fails
	ErrOCRFailure = errors.New("OCR service request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
