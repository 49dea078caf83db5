package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServerError is the only message clients see for unexpected failures.
const ServerError = "Server Error"

// MessageResponse is the body of confirmations such as "User Created !".
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status    int         `json:"-"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
	Msg       string      `json:"msg"`
	Error     interface{} `json:"error,omitempty"`
}

// JSON writes data as the response body and returns it.
func JSON[T any](ctx *gin.Context, status int, data T) T {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
	return data
}

// Message writes a {"msg": ...} confirmation.
func Message(ctx *gin.Context, status int, msg string) MessageResponse {
	return JSON(ctx, status, MessageResponse{Msg: msg})
}

func newError(ctx *gin.Context, status int, message string, err interface{}) ErrorResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return ErrorResponse{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Msg:       message,
		Error:     err,
	}
}

// Error writes an error body and returns it.
func Error(ctx *gin.Context, status int, message string, err interface{}) ErrorResponse {
	resp := newError(ctx, status, message, err)
	ctx.JSON(resp.Status, resp)
	return resp
}

// Abort writes an error body and stops the handler chain; used by middleware.
func Abort(ctx *gin.Context, status int, message string, err interface{}) ErrorResponse {
	resp := newError(ctx, status, message, err)
	ctx.AbortWithStatusJSON(resp.Status, resp)
	return resp
}
