package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/brgy-tracker-api/api/swagger"
	"github.com/noah-isme/brgy-tracker-api/internal/handler"
	"github.com/noah-isme/brgy-tracker-api/internal/middleware"
	"github.com/noah-isme/brgy-tracker-api/internal/models"
	"github.com/noah-isme/brgy-tracker-api/internal/service"
	"github.com/noah-isme/brgy-tracker-api/pkg/config"
	"github.com/noah-isme/brgy-tracker-api/pkg/database"
	appErrors "github.com/noah-isme/brgy-tracker-api/pkg/errors"
	"github.com/noah-isme/brgy-tracker-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/brgy-tracker-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/brgy-tracker-api/pkg/middleware/requestid"
	"github.com/noah-isme/brgy-tracker-api/pkg/response"
	"github.com/noah-isme/brgy-tracker-api/web"
)

// Params groups the collaborators the HTTP surface is built from.
type Params struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *sqlx.DB
	Services *service.Services
	Metrics  *service.MetricsService
	// Cache is checked by /ready when set.
	Cache handler.Pinger
}

// New builds the gin engine with every route mounted.
func New(p Params) (*gin.Engine, error) {
	cfg := p.Config
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(p.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(p.Metrics))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	checks := map[string]handler.Pinger{
		"database": handler.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, p.DB) }),
	}
	if p.Cache != nil {
		checks["cache"] = p.Cache
	}
	metricsHandler := handler.NewMetricsHandler(p.Metrics, checks, p.Logger)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	svcs := p.Services
	api := r.Group("/api")
	api.GET("", handler.NewAPIHandler(
		models.SeniorResource,
		models.PWDResource,
		models.BenefitResource,
		models.VisitResource,
		models.AssistanceDriveResource,
	).Root)
	api.GET("/dashboard", handler.NewDashboardHandler(svcs.Dashboard).Summary)
	handler.NewResourceHandler[models.Senior, models.SeniorCreate, models.SeniorUpdate](svcs.Seniors).Register(api)
	handler.NewResourceHandler[models.PWD, models.PWDCreate, models.PWDUpdate](svcs.PWDs).Register(api)
	handler.NewResourceHandler[models.Benefit, models.BenefitCreate, models.BenefitUpdate](svcs.Benefits).Register(api)
	handler.NewResourceHandler[models.Visit, models.VisitCreate, models.VisitUpdate](svcs.Visits).Register(api)
	handler.NewResourceHandler[models.AssistanceDrive, models.AssistanceDriveCreate, models.AssistanceDriveUpdate](svcs.AssistanceDrives).Register(api)

	handler.NewWebHandler(svcs, p.Logger).Register(r)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	return r, nil
}
