package handler

import (
	"errors"
	"net/http"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/logger"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	msgNoImageData     = "No image data provided"
	msgGenerateFailure = "Failed to generate caption"
)

// CaptionHandler handles caption generation endpoints.
type CaptionHandler struct {
	captionService *service.CaptionService
	maxBodyBytes   int64
}

// NewCaptionHandler creates a new caption handler.
// Parameters:
//   - captionService: caption service instance.
//   - maxBodyBytes: request body limit; zero or negative disables it.
//
// Returns:
//   - *CaptionHandler: initialized handler.
func NewCaptionHandler(captionService *service.CaptionService, maxBodyBytes int64) *CaptionHandler {
	return &CaptionHandler{
		captionService: captionService,
		maxBodyBytes:   maxBodyBytes,
	}
}

// GenerateCaption handles POST /api/generate-caption.
// Parameters:
//   - c: Gin request context.
//
// Returns: none (writes JSON response).
func (h *CaptionHandler) GenerateCaption(c *gin.Context) {
	ctx := c.Request.Context()
	logger.CtxInfo(ctx, "Received caption request")

	if h.maxBodyBytes > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req domain.CaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.Join(domain.ErrMalformedRequest, err))
		return
	}

	result, err := h.captionService.Generate(ctx, req.ImageData)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeError maps service errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoImageData})
		return
	}

	logger.FromContext(c.Request.Context()).WithError(err).Error("Caption generation error")
	c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
		Error:   msgGenerateFailure,
		Details: errorDetails(err),
	})
}

// errorDetails returns the message of the underlying cause rather than the
// taxonomy sentinel it was joined with.
func errorDetails(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		if len(errs) > 0 {
			return errs[len(errs)-1].Error()
		}
	}
	return err.Error()
}
