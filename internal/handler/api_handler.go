package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brgy-tracker-api/internal/dto"
	"github.com/noah-isme/brgy-tracker-api/internal/models"
	"github.com/noah-isme/brgy-tracker-api/pkg/response"
)

// Version is reported by the API root.
const Version = "1.0.0"

// APIHandler serves the API directory.
type APIHandler struct {
	directory dto.APIDirectory
}

// NewAPIHandler builds the directory from the registered resources.
func NewAPIHandler(resources ...models.Resource) *APIHandler {
	endpoints := make(map[string]string, len(resources))
	for _, res := range resources {
		endpoints[res.Table] = "/api/" + res.Name
	}
	return &APIHandler{directory: dto.APIDirectory{
		Message:   "Barangay Senior & PWD Support Tracker API",
		Version:   Version,
		Endpoints: endpoints,
	}}
}

// Root godoc
// @Summary API directory
// @Tags Meta
// @Produce json
// @Success 200 {object} dto.APIDirectory
// @Router /api [get]
func (h *APIHandler) Root(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.directory)
}
