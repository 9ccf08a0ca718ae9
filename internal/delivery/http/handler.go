package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/labelproof/backend/internal/domain"
	"github.com/labelproof/backend/internal/usecase"
)

// requiredFields lists the request fields that must be non-empty, in the
// order they are reported when missing.
var requiredFields = []string{"brandName", "productClass", "alcoholContent", "netContents"}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	verifier *usecase.VerificationService
}

// NewHandler creates a new HTTP handler
func NewHandler(verifier *usecase.VerificationService) *Handler {
	return &Handler{verifier: verifier}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "labelproof-backend",
		"version": "1.0.0",
	})
}

// SubmitLabel verifies one label submission. All four metadata fields are
// required; the image is optional. A submission without an image yields a
// report with null extraction and no errors, which means "not verifiable",
// not "verified" - kept for contract compatibility.
func (h *Handler) SubmitLabel(c *gin.Context) {
	var req domain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unreadable body is treated as an empty submission so the
		// caller gets the missing-fields message rather than a parse error.
		req = domain.SubmitRequest{}
	}

	var missing []string
	for _, name := range requiredFields {
		if fieldValue(&req, name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing fields: " + strings.Join(missing, ", "),
		})
		return
	}

	report := h.verifier.Verify(c.Request.Context(), &req)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  report,
	})
}

// fieldValue maps a request field name to its value
func fieldValue(req *domain.SubmitRequest, name string) string {
	switch name {
	case "brandName":
		return req.BrandName
	case "productClass":
		return req.ProductClass
	case "alcoholContent":
		return req.AlcoholContent
	case "netContents":
		return req.NetContents
	}
	return ""
}
