package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/brgy-tracker-api/internal/models"
	"github.com/noah-isme/brgy-tracker-api/internal/repository"
)

type (
	SeniorService          = ResourceService[models.Senior, models.SeniorCreate, models.SeniorUpdate]
	PWDService             = ResourceService[models.PWD, models.PWDCreate, models.PWDUpdate]
	BenefitService         = ResourceService[models.Benefit, models.BenefitCreate, models.BenefitUpdate]
	VisitService           = ResourceService[models.Visit, models.VisitCreate, models.VisitUpdate]
	AssistanceDriveService = ResourceService[models.AssistanceDrive, models.AssistanceDriveCreate, models.AssistanceDriveUpdate]
)

// Deps carries the shared collaborators of every resource service.
type Deps struct {
	Validator *validator.Validate
	Logger    *zap.Logger
	Metrics   *MetricsService
	Cache     *CacheService
	CacheTTL  time.Duration
	Now       func() time.Time
}

// Services bundles the tracker's services over one store handle.
type Services struct {
	Seniors          *SeniorService
	PWDs             *PWDService
	Benefits         *BenefitService
	Visits           *VisitService
	AssistanceDrives *AssistanceDriveService
	Dashboard        *DashboardService
}

// NewServices wires repositories and services over db.
func NewServices(db *sqlx.DB, deps Deps) *Services {
	if deps.Validator == nil {
		deps.Validator = models.NewValidator()
	}

	seniors := repository.NewResourceRepository[models.Senior](db, models.SeniorResource)
	pwds := repository.NewResourceRepository[models.PWD](db, models.PWDResource)
	benefits := repository.NewResourceRepository[models.Benefit](db, models.BenefitResource)
	visits := repository.NewResourceRepository[models.Visit](db, models.VisitResource)
	drives := repository.NewResourceRepository[models.AssistanceDrive](db, models.AssistanceDriveResource)

	dashboard := NewDashboardService(DashboardServiceParams{
		Counters: DashboardCounters{
			Seniors:  seniors,
			PWDs:     pwds,
			Benefits: benefits,
			Visits:   visits,
			Drives:   drives,
		},
		Cache:    deps.Cache,
		CacheTTL: deps.CacheTTL,
		Logger:   deps.Logger,
		Now:      deps.Now,
	})

	return &Services{
		Seniors: NewResourceService[models.Senior, models.SeniorCreate, models.SeniorUpdate](
			params[models.Senior](models.SeniorResource, seniors, deps, dashboard)),
		PWDs: NewResourceService[models.PWD, models.PWDCreate, models.PWDUpdate](
			params[models.PWD](models.PWDResource, pwds, deps, dashboard)),
		Benefits: NewResourceService[models.Benefit, models.BenefitCreate, models.BenefitUpdate](
			params[models.Benefit](models.BenefitResource, benefits, deps, dashboard)),
		Visits: NewResourceService[models.Visit, models.VisitCreate, models.VisitUpdate](
			params[models.Visit](models.VisitResource, visits, deps, dashboard)),
		AssistanceDrives: NewResourceService[models.AssistanceDrive, models.AssistanceDriveCreate, models.AssistanceDriveUpdate](
			params[models.AssistanceDrive](models.AssistanceDriveResource, drives, deps, dashboard)),
		Dashboard: dashboard,
	}
}

func params[T any](res models.Resource, repo resourceRepository[T], deps Deps, listener ChangeListener) ResourceServiceParams[T] {
	return ResourceServiceParams[T]{
		Resource:  res,
		Repo:      repo,
		Validator: deps.Validator,
		Logger:    deps.Logger,
		Metrics:   deps.Metrics,
		Listener:  listener,
		Now:       deps.Now,
	}
}
