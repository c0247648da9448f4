package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brgy-tracker-api/internal/models"
	"github.com/noah-isme/brgy-tracker-api/pkg/response"
)

type resourceService[T, C, U any] interface {
	Resource() models.Resource
	Create(ctx context.Context, input C) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, query models.ListQuery) ([]T, error)
	Count(ctx context.Context, filters map[string]any) (int, error)
	Update(ctx context.Context, id int64, input U) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceHandler exposes the JSON CRUD endpoints of one resource under
// /<resource name>.
type ResourceHandler[T, C, U any] struct {
	svc resourceService[T, C, U]
	res models.Resource
}

// NewResourceHandler constructs a ResourceHandler.
func NewResourceHandler[T, C, U any](svc resourceService[T, C, U]) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{svc: svc, res: svc.Resource()}
}

// Register mounts the resource routes on rg.
func (h *ResourceHandler[T, C, U]) Register(rg *gin.RouterGroup) {
	group := rg.Group("/" + h.res.Name)
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// Create handles POST /<resource>.
func (h *ResourceHandler[T, C, U]) Create(c *gin.Context) {
	var input C
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// List handles GET /<resource>.
func (h *ResourceHandler[T, C, U]) List(c *gin.Context) {
	query, err := parseListQuery(c, h.res, models.DefaultLimit)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.svc.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	total, err := h.svc.Count(c.Request.Context(), query.Filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, total)
}

// Get handles GET /<resource>/:id.
func (h *ResourceHandler[T, C, U]) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Update handles PUT /<resource>/:id with partial semantics.
func (h *ResourceHandler[T, C, U]) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var input U
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete handles DELETE /<resource>/:id.
func (h *ResourceHandler[T, C, U]) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
