package errors

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
)

// UnifiedErrorHandler provides a single interface for all error handling in the API
type UnifiedErrorHandler struct{}

// NewUnifiedErrorHandler creates a new unified error handler
func NewUnifiedErrorHandler() *UnifiedErrorHandler {
	return &UnifiedErrorHandler{}
}

// HandleError processes any error type and converts it to RFC 7807 format
func (h *UnifiedErrorHandler) HandleError(c *gin.Context, err error) {
	instance := c.Request.URL.Path
	var problemDetails *ProblemDetails

	var domainErr *Error
	switch {
	case stderrors.As(err, &problemDetails):
		// Already RFC 7807 compliant
	case stderrors.As(err, &domainErr):
		problemDetails = domainErr.ToProblemDetails(instance)
	default:
		// Unknown error shape, do not leak detail
		problemDetails = NewInternalProblem("internal error", instance)
	}

	if traceID := h.getTraceID(c); traceID != "" {
		problemDetails.WithTraceID(traceID)
	}

	c.Header("Content-Type", "application/problem+json")
	c.JSON(problemDetails.Status, problemDetails)
}

// Middleware creates a Gin middleware for unified error handling
func (h *UnifiedErrorHandler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			h.HandleError(c, err.Err)
			c.Abort()
		}
	}
}

// BadRequest creates a validation error response
func (h *UnifiedErrorHandler) BadRequest(c *gin.Context, detail string, fieldErrors ...ValidationError) {
	problemDetails := NewValidationProblem(detail, c.Request.URL.Path)
	if len(fieldErrors) > 0 {
		problemDetails.WithValidationErrors(fieldErrors)
	}
	h.writeResponse(c, problemDetails)
}

// Unauthorized creates an unauthorized error response
func (h *UnifiedErrorHandler) Unauthorized(c *gin.Context, detail string) {
	h.writeResponse(c, NewUnauthorizedProblem(detail, c.Request.URL.Path))
}

// Forbidden creates a forbidden error response
func (h *UnifiedErrorHandler) Forbidden(c *gin.Context, detail string) {
	h.writeResponse(c, NewForbiddenProblem(detail, c.Request.URL.Path))
}

// NotFoundError creates a not found error response
func (h *UnifiedErrorHandler) NotFoundError(c *gin.Context, detail string) {
	h.writeResponse(c, NewNotFoundProblem(detail, c.Request.URL.Path))
}

// ConflictError creates a conflict error response
func (h *UnifiedErrorHandler) ConflictError(c *gin.Context, detail string) {
	h.writeResponse(c, NewConflictProblem(detail, c.Request.URL.Path))
}

// InternalServerError creates an internal server error response
func (h *UnifiedErrorHandler) InternalServerError(c *gin.Context, detail string) {
	h.writeResponse(c, NewInternalProblem(detail, c.Request.URL.Path))
}

func (h *UnifiedErrorHandler) getTraceID(c *gin.Context) string {
	if traceID, exists := c.Get("trace_id"); exists {
		if id, ok := traceID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Trace-ID")
}

func (h *UnifiedErrorHandler) writeResponse(c *gin.Context, problemDetails *ProblemDetails) {
	if traceID := h.getTraceID(c); traceID != "" {
		problemDetails.WithTraceID(traceID)
	}

	c.Header("Content-Type", "application/problem+json")
	c.JSON(problemDetails.Status, problemDetails)
}

// Global unified error handler instance
var DefaultHandler = NewUnifiedErrorHandler()

// HandleError processes any error using the default handler
func HandleError(c *gin.Context, err error) {
	DefaultHandler.HandleError(c, err)
}

// UnifiedErrorMiddleware creates a middleware using the default handler
func UnifiedErrorMiddleware() gin.HandlerFunc {
	return DefaultHandler.Middleware()
}

func BadRequest(c *gin.Context, detail string, fieldErrors ...ValidationError) {
	DefaultHandler.BadRequest(c, detail, fieldErrors...)
}

func UnauthorizedResponse(c *gin.Context, detail string) {
	DefaultHandler.Unauthorized(c, detail)
}

func ForbiddenResponse(c *gin.Context, detail string) {
	DefaultHandler.Forbidden(c, detail)
}

func NotFoundResponse(c *gin.Context, detail string) {
	DefaultHandler.NotFoundError(c, detail)
}

func ConflictResponse(c *gin.Context, detail string) {
	DefaultHandler.ConflictError(c, detail)
}

func InternalServerErrorResponse(c *gin.Context, detail string) {
	DefaultHandler.InternalServerError(c, detail)
}
