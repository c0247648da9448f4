package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/brgy-tracker-api/internal/models"
	"github.com/noah-isme/brgy-tracker-api/internal/service"
	appErrors "github.com/noah-isme/brgy-tracker-api/pkg/errors"
)

// listPage is the template data of every list page.
type listPage struct {
	Title     string
	Items     any
	Total     int
	Skip      int
	Limit     int
	Filters   map[string]string
	HasPrev   bool
	HasNext   bool
	PrevQuery string
	NextQuery string
}

type errorPage struct {
	Title   string
	Message string
	Details []appErrors.FieldError
}

// WebHandler renders the server-side dashboard pages.
type WebHandler struct {
	svcs   *service.Services
	logger *zap.Logger
}

// NewWebHandler constructs a WebHandler.
func NewWebHandler(svcs *service.Services, logger *zap.Logger) *WebHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebHandler{svcs: svcs, logger: logger}
}

// Register mounts the page routes on r.
func (h *WebHandler) Register(r gin.IRoutes) {
	r.GET("/", h.Dashboard)
	r.GET("/seniors", h.Seniors)
	r.GET("/pwds", h.PWDs)
	r.GET("/benefits", h.Benefits)
	r.GET("/visits", h.Visits)
	r.GET("/assistance-drives", h.AssistanceDrives)
}

// Dashboard renders the headline counts.
func (h *WebHandler) Dashboard(c *gin.Context) {
	summary, _, err := h.svcs.Dashboard.Summary(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{"Title": "Dashboard", "Summary": summary})
}

// Seniors renders the senior citizen list.
func (h *WebHandler) Seniors(c *gin.Context) {
	renderList[models.Senior, models.SeniorCreate, models.SeniorUpdate](h, c, h.svcs.Seniors, "seniors.html", "Senior Citizens", "barangay", "is_active")
}

// PWDs renders the PWD list.
func (h *WebHandler) PWDs(c *gin.Context) {
	renderList[models.PWD, models.PWDCreate, models.PWDUpdate](h, c, h.svcs.PWDs, "pwds.html", "Persons with Disability", "barangay", "is_active")
}

// Benefits renders the benefit list.
func (h *WebHandler) Benefits(c *gin.Context) {
	renderList[models.Benefit, models.BenefitCreate, models.BenefitUpdate](h, c, h.svcs.Benefits, "benefits.html", "Benefits", "status")
}

// Visits renders the visit list.
func (h *WebHandler) Visits(c *gin.Context) {
	renderList[models.Visit, models.VisitCreate, models.VisitUpdate](h, c, h.svcs.Visits, "visits.html", "Visits", "status")
}

// AssistanceDrives renders the assistance drive list.
func (h *WebHandler) AssistanceDrives(c *gin.Context) {
	renderList[models.AssistanceDrive, models.AssistanceDriveCreate, models.AssistanceDriveUpdate](h, c, h.svcs.AssistanceDrives, "assistance_drives.html", "Assistance Drives", "status")
}

// renderList serves one list page. Only the named filters are honoured.
func renderList[T, C, U any](h *WebHandler, c *gin.Context, svc resourceService[T, C, U], tmpl, title string, filters ...string) {
	res := svc.Resource()
	res.Filters = allowedFilters(res.Filters, filters)

	query, err := parseListQuery(c, res, models.DefaultWebLimit)
	if err != nil {
		h.renderError(c, err)
		return
	}

	ctx := c.Request.Context()
	items, total, err := listWithTotal(ctx, svc, query)
	if err != nil {
		h.renderError(c, err)
		return
	}

	raw := make(map[string]string, len(filters))
	for _, f := range filters {
		raw[f] = c.Query(f)
	}
	page := listPage{
		Title:   title,
		Items:   items,
		Total:   total,
		Skip:    query.Skip,
		Limit:   query.Limit,
		Filters: raw,
		HasPrev: query.Skip > 0,
		HasNext: query.Skip+len(items) < total,
	}
	page.PrevQuery = pageQuery(raw, max(query.Skip-query.Limit, 0), query.Limit)
	page.NextQuery = pageQuery(raw, query.Skip+query.Limit, query.Limit)
	c.HTML(http.StatusOK, tmpl, page)
}

func listWithTotal[T, C, U any](ctx context.Context, svc resourceService[T, C, U], query models.ListQuery) ([]T, int, error) {
	items, err := svc.List(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := svc.Count(ctx, query.Filters)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func allowedFilters(declared []models.Filter, names []string) []models.Filter {
	out := make([]models.Filter, 0, len(names))
	for _, f := range declared {
		for _, name := range names {
			if f.Column == name {
				out = append(out, f)
			}
		}
	}
	return out
}

func pageQuery(filters map[string]string, skip, limit int) string {
	values := url.Values{}
	for k, v := range filters {
		if v != "" {
			values.Set(k, v)
		}
	}
	values.Set("skip", strconv.Itoa(skip))
	values.Set("limit", strconv.Itoa(limit))
	return values.Encode()
}

func (h *WebHandler) renderError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error("page render failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	_ = c.Error(err)
	c.HTML(appErr.Status, "error.html", errorPage{
		Title:   http.StatusText(appErr.Status),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}
