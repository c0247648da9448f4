package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/brgy-tracker-api/internal/models"
	appErrors "github.com/noah-isme/brgy-tracker-api/pkg/errors"
)

type mockSeniorRepo struct {
	rows        map[int64]models.Senior
	nextID      int64
	lastFilter  models.ListFilter
	lastChanges models.Changes
	lastStamp   any
	err         error
}

func newMockSeniorRepo() *mockSeniorRepo {
	return &mockSeniorRepo{rows: make(map[int64]models.Senior)}
}

func (m *mockSeniorRepo) Insert(ctx context.Context, input any, stamp any) (*models.Senior, error) {
	if m.err != nil {
		return nil, m.err
	}
	in := input.(models.SeniorCreate)
	m.nextID++
	m.lastStamp = stamp
	row := models.Senior{
		ID:        m.nextID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		BirthDate: in.BirthDate,
		Gender:    in.Gender,
		Address:   in.Address,
		Barangay:  in.Barangay,
		IsActive:  *in.IsActive,
		CreatedAt: stamp.(models.Date),
		UpdatedAt: stamp.(models.Date),
	}
	m.rows[row.ID] = row
	return &row, nil
}

func (m *mockSeniorRepo) FindByID(ctx context.Context, id int64) (*models.Senior, error) {
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (m *mockSeniorRepo) List(ctx context.Context, filter models.ListFilter) ([]models.Senior, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Senior, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out, nil
}

func (m *mockSeniorRepo) Count(ctx context.Context, conditions []models.Condition) (int, error) {
	m.lastFilter = models.ListFilter{Conditions: conditions}
	return len(m.rows), m.err
}

func (m *mockSeniorRepo) Update(ctx context.Context, id int64, changes models.Changes, stamp any) (*models.Senior, error) {
	m.lastChanges = changes
	m.lastStamp = stamp
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	row.UpdatedAt = stamp.(models.Date)
	m.rows[id] = row
	return &row, nil
}

func (m *mockSeniorRepo) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

type recordingListener struct {
	resources []string
}

func (l *recordingListener) ResourceChanged(ctx context.Context, resource string) {
	l.resources = append(l.resources, resource)
}

func fixedClock(raw string) func() time.Time {
	t, _ := time.Parse(time.RFC3339, raw)
	return func() time.Time { return t }
}

func newMockSeniorService(repo *mockSeniorRepo, listener ChangeListener) *SeniorService {
	return NewResourceService[models.Senior, models.SeniorCreate, models.SeniorUpdate](ResourceServiceParams[models.Senior]{
		Resource: models.SeniorResource,
		Repo:     repo,
		Listener: listener,
		Now:      fixedClock("2026-10-17T08:30:00Z"),
	})
}

func validSeniorCreate() models.SeniorCreate {
	return models.SeniorCreate{
		FirstName: "Ana",
		LastName:  "Cruz",
		BirthDate: models.MustDate("1950-05-01"),
		Gender:    "F",
		Address:   "Purok 1",
		Barangay:  "San Isidro",
	}
}

func TestResourceServiceCreateAppliesDefaults(t *testing.T) {
	repo := newMockSeniorRepo()
	listener := &recordingListener{}
	svc := newMockSeniorService(repo, listener)

	created, err := svc.Create(context.Background(), validSeniorCreate())
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, models.MustDate("2026-10-17"), repo.lastStamp)
	assert.Equal(t, []string{"seniors"}, listener.resources)
}

func TestResourceServiceCreateValidation(t *testing.T) {
	repo := newMockSeniorRepo()
	svc := newMockSeniorService(repo, nil)

	input := validSeniorCreate()
	input.FirstName = ""
	input.Gender = "this gender value is far too long"

	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	appErr := appErrors.FromError(err)
	assert.Equal(t, 422, appErr.Status)
	assert.Contains(t, appErr.Details, appErrors.FieldError{Field: "first_name", Message: "field required"})
	assert.Contains(t, appErr.Details, appErrors.FieldError{Field: "gender", Message: "must be at most 20 characters"})
	assert.Empty(t, repo.rows)
}

func TestResourceServiceGetNotFound(t *testing.T) {
	svc := newMockSeniorService(newMockSeniorRepo(), nil)

	_, err := svc.Get(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, "Senior citizen not found", appErrors.FromError(err).Message)
}

func TestResourceServiceStoreFailureIsInternal(t *testing.T) {
	repo := newMockSeniorRepo()
	repo.err = errors.New("disk I/O error")
	svc := newMockSeniorService(repo, nil)

	_, err := svc.Get(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	assert.ErrorIs(t, err, repo.err)
}

func TestResourceServiceListValidatesPagination(t *testing.T) {
	svc := newMockSeniorService(newMockSeniorRepo(), nil)

	cases := []models.ListQuery{
		{Skip: -1, Limit: 10},
		{Skip: 0, Limit: 0},
		{Skip: 0, Limit: models.MaxLimit + 1},
	}
	for _, q := range cases {
		_, err := svc.List(context.Background(), q)
		assert.True(t, errors.Is(err, appErrors.ErrValidation), "query %+v", q)
	}
}

func TestResourceServiceListDropsUnknownFilters(t *testing.T) {
	repo := newMockSeniorRepo()
	svc := newMockSeniorService(repo, nil)

	_, err := svc.List(context.Background(), models.ListQuery{
		Limit:   100,
		Filters: map[string]any{"barangay": "San Isidro", "gender": "F", "is_active": nil},
	})
	require.NoError(t, err)
	assert.Equal(t, []models.Condition{{Column: "barangay", Value: "San Isidro"}}, repo.lastFilter.Conditions)
	assert.Equal(t, 100, repo.lastFilter.Limit)
}

func TestResourceServiceUpdateRejectsNullOnRequiredField(t *testing.T) {
	repo := newMockSeniorRepo()
	svc := newMockSeniorService(repo, nil)
	created, err := svc.Create(context.Background(), validSeniorCreate())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, models.SeniorUpdate{LastName: models.Null[string]()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, []appErrors.FieldError{{Field: "last_name", Message: "may not be null"}}, appErrors.FromError(err).Details)
}

func TestResourceServiceUpdateValidatesSuppliedFields(t *testing.T) {
	repo := newMockSeniorRepo()
	svc := newMockSeniorService(repo, nil)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Update(context.Background(), 1, models.SeniorUpdate{FirstName: models.Some(string(long))})
	require.Error(t, err)
	assert.Equal(t, []appErrors.FieldError{{Field: "first_name", Message: "must be at most 100 characters"}}, appErrors.FromError(err).Details)
}

func TestResourceServiceUpdateMissing(t *testing.T) {
	listener := &recordingListener{}
	svc := newMockSeniorService(newMockSeniorRepo(), listener)

	_, err := svc.Update(context.Background(), 3, models.SeniorUpdate{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, listener.resources)
}

func TestResourceServiceDelete(t *testing.T) {
	repo := newMockSeniorRepo()
	listener := &recordingListener{}
	svc := newMockSeniorService(repo, listener)
	created, err := svc.Create(context.Background(), validSeniorCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	err = svc.Delete(context.Background(), created.ID)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, []string{"seniors", "seniors"}, listener.resources)
}
