package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResourceConditionsIgnoreUnknownFilters(t *testing.T) {
	conditions := SeniorResource.Conditions(map[string]any{
		"is_active": false,
		"barangay":  "Poblacion",
		"unknown":   "x",
		"status":    "pending",
	})

	assert.Equal(t, []Condition{
		{Column: "barangay", Value: "Poblacion"},
		{Column: "is_active", Value: false},
	}, conditions)
}

func TestResourceConditionsSkipNil(t *testing.T) {
	conditions := BenefitResource.Conditions(map[string]any{"status": nil})
	assert.Empty(t, conditions)
}

func TestResourceStamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 4, 5, 123456789, time.FixedZone("PHT", 8*3600))

	assert.Equal(t, MustDate("2025-06-01"), SeniorResource.Stamp(now))

	stamped, ok := VisitResource.Stamp(now).(time.Time)
	assert.True(t, ok)
	assert.Equal(t, time.UTC, stamped.Location())
	assert.Equal(t, 123456000, stamped.Nanosecond())
}

func TestResourceSelectColumns(t *testing.T) {
	assert.Equal(t,
		"id, status, created_at, updated_at",
		Resource{Columns: []string{"status"}}.SelectColumns())
	assert.Equal(t, "Assistance drive not found", AssistanceDriveResource.NotFoundMessage())
}

func TestCreateDefaults(t *testing.T) {
	senior := SeniorCreate{}.WithDefaults()
	assert.True(t, *senior.IsActive)

	inactive := false
	senior = SeniorCreate{IsActive: &inactive}.WithDefaults()
	assert.False(t, *senior.IsActive)

	assert.Equal(t, BenefitStatusPending, *BenefitCreate{}.WithDefaults().Status)
	assert.Equal(t, VisitStatusScheduled, *VisitCreate{}.WithDefaults().Status)

	drive := AssistanceDriveCreate{}.WithDefaults()
	assert.Equal(t, DriveStatusPlanned, *drive.Status)
	assert.Equal(t, int64(0), *drive.ParticipantsCount)
}
