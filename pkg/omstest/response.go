package omstest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CodeSuccess is the code the core host sends with successful results.
const CodeSuccess = "EC03100000"

// Envelope is the body shape of the core and API hosts.
type Envelope struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message any    `json:"message,omitempty"`
	Result  any    `json:"result,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Result writes a success envelope carrying result.
func Result(c *gin.Context, result any) {
	c.JSON(http.StatusOK, Envelope{Status: "ok", Code: CodeSuccess, Result: result})
}

// Data writes a success envelope carrying data.
func Data(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Status: "ok", Code: CodeSuccess, Data: data})
}

// Fail writes a failure envelope with status.
func Fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{Status: "fail", Code: code, Message: message})
}

// Reply returns a handler that writes a result envelope.
func Reply(result any) gin.HandlerFunc {
	return func(c *gin.Context) { Result(c, result) }
}

// ReplyData returns a handler that writes a data envelope.
func ReplyData(data any) gin.HandlerFunc {
	return func(c *gin.Context) { Data(c, data) }
}

// ReplyJSON returns a handler that writes body as is.
func ReplyJSON(status int, body any) gin.HandlerFunc {
	return func(c *gin.Context) { c.JSON(status, body) }
}

// ReplyRaw returns a handler that writes a raw JSON document.
func ReplyRaw(status int, body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Data(status, "application/json", []byte(body)) }
}

// ReplyFail returns a handler that writes a failure envelope.
func ReplyFail(status int, code, message string) gin.HandlerFunc {
	return func(c *gin.Context) { Fail(c, status, code, message) }
}
