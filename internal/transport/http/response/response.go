package response

import "github.com/gin-gonic/gin"

const (
	MsgRateLimited     = "Rate limit exceeded. Please wait a minute before trying again."
	MsgNotConfigured   = "Server configuration error: DeepSeek API key not configured."
	MsgInvalidJSON     = "Invalid JSON in request body."
	MsgMissingMessages = "Invalid request: messages array is required."
	MsgMalformed       = "Invalid message format: each message must have role and content."
	MsgInvalidRole     = "Invalid message role: must be user, assistant, or system."
	MsgUnexpected      = "An unexpected error occurred. Please try again."
)

type ErrorBody struct {
	Error string `json:"error"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// Abort writes the error body and stops the remaining handlers.
func Abort(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{Error: message})
}
