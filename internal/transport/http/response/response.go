package response

import "github.com/gin-gonic/gin"

const (
	CodeBadRequest         = 40000
	CodeUserNotInitialized = 40001
	CodeNotFound           = 40400
	CodePayloadTooLarge    = 41300
	CodeInternalServer     = 50000
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON writes data as-is with status 200.
func JSON(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// ValidationError reports per-field problems with a 400.
func ValidationError(c *gin.Context, details map[string]string) {
	c.AbortWithStatusJSON(400, ErrorResponse{
		Code:    CodeBadRequest,
		Message: "validation failed",
		Details: details,
	})
}
