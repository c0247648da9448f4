package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/noah-isme/brgy-tracker-api/internal/models"
	appErrors "github.com/noah-isme/brgy-tracker-api/pkg/errors"
)

const tracerName = "github.com/noah-isme/brgy-tracker-api/internal/service"

// CreateInput is a create payload that can fill its own defaults.
type CreateInput[C any] interface {
	WithDefaults() C
}

// UpdateInput is a partial update payload.
type UpdateInput interface {
	Changes() models.Changes
}

type resourceRepository[T any] interface {
	Insert(ctx context.Context, input any, stamp any) (*T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, filter models.ListFilter) ([]T, error)
	Count(ctx context.Context, conditions []models.Condition) (int, error)
	Update(ctx context.Context, id int64, changes models.Changes, stamp any) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// ChangeListener is notified after every successful mutation.
type ChangeListener interface {
	ResourceChanged(ctx context.Context, resource string)
}

// ResourceServiceParams groups constructor dependencies.
type ResourceServiceParams[T any] struct {
	Resource  models.Resource
	Repo      resourceRepository[T]
	Validator *validator.Validate
	Logger    *zap.Logger
	Metrics   *MetricsService
	Listener  ChangeListener
	Now       func() time.Time
}

// ResourceService implements create, read, list, update and delete for one
// resource kind. T is the stored shape, C the create payload and U the
// partial update payload.
type ResourceService[T any, C CreateInput[C], U UpdateInput] struct {
	res       models.Resource
	repo      resourceRepository[T]
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	listener  ChangeListener
	tracer    trace.Tracer
	now       func() time.Time
}

// NewResourceService constructs a ResourceService.
func NewResourceService[T any, C CreateInput[C], U UpdateInput](params ResourceServiceParams[T]) *ResourceService[T, C, U] {
	if params.Validator == nil {
		params.Validator = models.NewValidator()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &ResourceService[T, C, U]{
		res:       params.Resource,
		repo:      params.Repo,
		validator: params.Validator,
		logger:    params.Logger.With(zap.String("resource", params.Resource.Name)),
		metrics:   params.Metrics,
		listener:  params.Listener,
		tracer:    otel.Tracer(tracerName),
		now:       params.Now,
	}
}

// Resource returns the resource definition served by this service.
func (s *ResourceService[T, C, U]) Resource() models.Resource {
	return s.res
}

// Create validates input, applies defaults and stores a new row.
func (s *ResourceService[T, C, U]) Create(ctx context.Context, input C) (*T, error) {
	ctx, span := s.start(ctx, "create")
	defer span.End()

	input = input.WithDefaults()
	if err := s.validate(input); err != nil {
		return nil, err
	}

	start := time.Now()
	created, err := s.repo.Insert(ctx, input, s.res.Stamp(s.now()))
	s.metrics.ObserveStoreCall(s.res.Name, "create", time.Since(start))
	if err != nil {
		return nil, s.storeFailure(span, "create", err)
	}

	s.mutated(ctx, "create")
	return created, nil
}

// Get returns the row with id or a not found error.
func (s *ResourceService[T, C, U]) Get(ctx context.Context, id int64) (*T, error) {
	ctx, span := s.start(ctx, "get")
	defer span.End()
	span.SetAttributes(attribute.Int64("resource.id", id))

	start := time.Now()
	row, err := s.repo.FindByID(ctx, id)
	s.metrics.ObserveStoreCall(s.res.Name, "get", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, s.res.NotFoundMessage())
		}
		return nil, s.storeFailure(span, "load", err)
	}
	return row, nil
}

// List returns one page of rows matching the supplied filters.
func (s *ResourceService[T, C, U]) List(ctx context.Context, query models.ListQuery) ([]T, error) {
	ctx, span := s.start(ctx, "list")
	defer span.End()

	if err := validatePage(query.Skip, query.Limit); err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.repo.List(ctx, models.ListFilter{
		Conditions: s.res.Conditions(query.Filters),
		Skip:       query.Skip,
		Limit:      query.Limit,
	})
	s.metrics.ObserveStoreCall(s.res.Name, "list", time.Since(start))
	if err != nil {
		return nil, s.storeFailure(span, "list", err)
	}
	span.SetAttributes(attribute.Int("resource.count", len(rows)))
	return rows, nil
}

// Count returns the number of rows matching the supplied filters.
func (s *ResourceService[T, C, U]) Count(ctx context.Context, filters map[string]any) (int, error) {
	ctx, span := s.start(ctx, "count")
	defer span.End()

	start := time.Now()
	total, err := s.repo.Count(ctx, s.res.Conditions(filters))
	s.metrics.ObserveStoreCall(s.res.Name, "count", time.Since(start))
	if err != nil {
		return 0, s.storeFailure(span, "count", err)
	}
	return total, nil
}

// Update applies the fields supplied in input. An empty update still
// advances updated_at.
func (s *ResourceService[T, C, U]) Update(ctx context.Context, id int64, input U) (*T, error) {
	ctx, span := s.start(ctx, "update")
	defer span.End()
	span.SetAttributes(attribute.Int64("resource.id", id))

	if err := s.validate(input); err != nil {
		return nil, err
	}
	changes := input.Changes()
	var details []appErrors.FieldError
	for _, column := range changes.NullViolations() {
		details = append(details, appErrors.FieldError{Field: column, Message: "may not be null"})
	}
	for _, column := range changes.BlankViolations() {
		details = append(details, appErrors.FieldError{Field: column, Message: "may not be empty"})
	}
	if len(details) > 0 {
		return nil, appErrors.Validation(fmt.Sprintf("invalid %s payload", strings.ToLower(s.res.Label)), details...)
	}

	start := time.Now()
	updated, err := s.repo.Update(ctx, id, changes, s.res.Stamp(s.now()))
	s.metrics.ObserveStoreCall(s.res.Name, "update", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, s.res.NotFoundMessage())
		}
		return nil, s.storeFailure(span, "update", err)
	}

	s.mutated(ctx, "update", zap.Int64("id", id))
	return updated, nil
}

// Delete removes the row with id.
func (s *ResourceService[T, C, U]) Delete(ctx context.Context, id int64) error {
	ctx, span := s.start(ctx, "delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("resource.id", id))

	start := time.Now()
	err := s.repo.Delete(ctx, id)
	s.metrics.ObserveStoreCall(s.res.Name, "delete", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, s.res.NotFoundMessage())
		}
		return s.storeFailure(span, "delete", err)
	}

	s.mutated(ctx, "delete", zap.Int64("id", id))
	return nil
}

func (s *ResourceService[T, C, U]) start(ctx context.Context, op string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, s.res.Name+"."+op, trace.WithAttributes(attribute.String("resource", s.res.Name)))
}

func (s *ResourceService[T, C, U]) validate(input any) error {
	err := s.validator.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	details := make([]appErrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, appErrors.FieldError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return appErrors.Validation(fmt.Sprintf("invalid %s payload", strings.ToLower(s.res.Label)), details...)
}

func (s *ResourceService[T, C, U]) storeFailure(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	s.logger.Error("store call failed", zap.String("operation", op), zap.Error(err))
	return appErrors.Internal(err, fmt.Sprintf("failed to %s %s", op, strings.ToLower(s.res.Label)))
}

func (s *ResourceService[T, C, U]) mutated(ctx context.Context, op string, fields ...zap.Field) {
	s.logger.Info(s.res.Name+" "+op+"d", fields...)
	s.metrics.RecordMutation(s.res.Name, op)
	if s.listener != nil {
		s.listener.ResourceChanged(ctx, s.res.Name)
	}
}

func validatePage(skip, limit int) error {
	var details []appErrors.FieldError
	if skip < 0 {
		details = append(details, appErrors.FieldError{Field: "skip", Message: "must be greater than or equal to 0"})
	}
	if limit < 1 || limit > models.MaxLimit {
		details = append(details, appErrors.FieldError{
			Field:   "limit",
			Message: fmt.Sprintf("must be between 1 and %d", models.MaxLimit),
		})
	}
	if len(details) > 0 {
		return appErrors.Validation("invalid pagination", details...)
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
