package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var u SeniorUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":"Ana","middle_name":null}`), &u))

	assert.True(t, u.FirstName.Set)
	assert.False(t, u.FirstName.Null)
	assert.Equal(t, "Ana", u.FirstName.Value)

	assert.True(t, u.MiddleName.Set)
	assert.True(t, u.MiddleName.Null)

	assert.False(t, u.LastName.Set)
	assert.False(t, u.IsActive.Set)
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var u SeniorUpdate
	err := json.Unmarshal([]byte(`{"is_active":"nope"}`), &u)
	require.Error(t, err)
}

func TestOptionalMarshal(t *testing.T) {
	payload, err := json.Marshal(struct {
		A Optional[int64] `json:"a"`
		B Optional[int64] `json:"b"`
		C Optional[int64] `json:"c"`
	}{A: Some[int64](3), B: Null[int64]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null,"c":null}`, string(payload))
}

func TestChangesOnlyIncludeSuppliedFields(t *testing.T) {
	u := SeniorUpdate{
		IsActive:   Some(false),
		MiddleName: Null[string](),
	}
	changes := u.Changes()

	require.Len(t, changes.Assignments(), 2)
	assert.Equal(t, Assignment{Column: "middle_name", Value: nil}, changes.Assignments()[0])
	assert.Equal(t, Assignment{Column: "is_active", Value: false}, changes.Assignments()[1])
	assert.Empty(t, changes.NullViolations())
	assert.False(t, changes.Empty())
}

func TestChangesFlagNullOnRequiredColumn(t *testing.T) {
	changes := BenefitUpdate{Status: Null[string](), Amount: Null[float64]()}.Changes()

	assert.Equal(t, []string{"status"}, changes.NullViolations())
	require.Len(t, changes.Assignments(), 1)
	assert.Equal(t, "amount", changes.Assignments()[0].Column)
}

func TestEmptyUpdateHasNoChanges(t *testing.T) {
	assert.True(t, VisitUpdate{}.Changes().Empty())
	assert.True(t, AssistanceDriveUpdate{}.Changes().Empty())
	assert.True(t, PWDUpdate{}.Changes().Empty())
}

func TestChangesFlagBlankRequiredText(t *testing.T) {
	changes := SeniorUpdate{FirstName: Some(""), MiddleName: Some(""), Notes: Some("ok")}.Changes()

	assert.Equal(t, []string{"first_name"}, changes.BlankViolations())
	assert.Empty(t, changes.NullViolations())
	require.Len(t, changes.Assignments(), 2)
	assert.Equal(t, Assignment{Column: "middle_name", Value: ""}, changes.Assignments()[0])
}
