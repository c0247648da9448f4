package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/brgy-tracker-api/pkg/errors"
)

// TotalCountHeader carries the unpaged match count of list responses.
const TotalCountHeader = "X-Total-Count"

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Error *appErrors.Error `json:"error"`
}

// JSON sends data as the bare response body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// List sends one page of items and the total number of matches.
func List(c *gin.Context, items interface{}, total int) {
	c.Header(TotalCountHeader, strconv.Itoa(total))
	JSON(c, http.StatusOK, items)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(appErr.Status, ErrorEnvelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
