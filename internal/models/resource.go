package models

import (
	"strings"
	"time"
)

// FilterKind tells the HTTP layer how to parse a filter query parameter.
type FilterKind int

const (
	FilterString FilterKind = iota
	FilterBool
	FilterInt
)

// TimestampKind selects the precision of created_at/updated_at.
type TimestampKind int

const (
	// TimestampDate stamps calendar dates.
	TimestampDate TimestampKind = iota
	// TimestampDateTime stamps full UTC timestamps.
	TimestampDateTime
)

// Filter is one attribute a list call may constrain by equality.
type Filter struct {
	Column string
	Kind   FilterKind
}

// Resource declares how one entity kind is stored, filtered and ordered.
type Resource struct {
	// Name is the plural path segment, e.g. "assistance-drives".
	Name string
	// Label names the entity in messages, e.g. "Senior citizen".
	Label string
	Table string
	// Columns are the business columns, excluding id and timestamps.
	Columns   []string
	Filters   []Filter
	OrderBy   string
	Timestamp TimestampKind
}

// NotFoundMessage is the message used when an id does not exist.
func (r Resource) NotFoundMessage() string {
	return r.Label + " not found"
}

// SelectColumns lists every stored column in response order.
func (r Resource) SelectColumns() string {
	cols := make([]string, 0, len(r.Columns)+3)
	cols = append(cols, "id")
	cols = append(cols, r.Columns...)
	cols = append(cols, "created_at", "updated_at")
	return strings.Join(cols, ", ")
}

// Stamp converts now into the value stored in timestamp columns.
func (r Resource) Stamp(now time.Time) any {
	if r.Timestamp == TimestampDateTime {
		return now.UTC().Truncate(time.Microsecond)
	}
	return NewDate(now.UTC())
}

// Filter returns the filter declared for column, if any.
func (r Resource) Filter(column string) (Filter, bool) {
	for _, f := range r.Filters {
		if f.Column == column {
			return f, true
		}
	}
	return Filter{}, false
}

// Conditions keeps the supplied filters that the resource declares, in
// declaration order. Unknown keys and nil values are dropped.
func (r Resource) Conditions(filters map[string]any) []Condition {
	conditions := make([]Condition, 0, len(r.Filters))
	for _, f := range r.Filters {
		value, ok := filters[f.Column]
		if !ok || value == nil {
			continue
		}
		conditions = append(conditions, Condition{Column: f.Column, Value: value})
	}
	return conditions
}

// Condition is a single equality constraint.
type Condition struct {
	Column string
	Value  any
}

// ListQuery carries pagination and optional filters for list calls.
type ListQuery struct {
	Skip    int
	Limit   int
	Filters map[string]any
}

// Pagination bounds shared by every list endpoint.
const (
	DefaultLimit    = 100
	DefaultWebLimit = 50
	MaxLimit        = 1000
)

// ListFilter is the repository-level form of a list call.
type ListFilter struct {
	Conditions []Condition
	Skip       int
	Limit      int
}

// Assignment sets one column during a partial update.
type Assignment struct {
	Column string
	Value  any
}

// Changes collects the columns a partial update supplied.
type Changes struct {
	assignments  []Assignment
	nullColumns  []string
	blankColumns []string
}

// Assignments returns the supplied columns in declaration order.
func (c Changes) Assignments() []Assignment {
	return c.assignments
}

// NullViolations lists non-nullable columns that were set to null.
func (c Changes) NullViolations() []string {
	return c.nullColumns
}

// BlankViolations lists required text columns that were set to "".
// Create rejects the same input through the required tag.
func (c Changes) BlankViolations() []string {
	return c.blankColumns
}

// Empty reports whether no column was supplied.
func (c Changes) Empty() bool {
	return len(c.assignments) == 0
}

func (c *Changes) set(column string, value any) {
	c.assignments = append(c.assignments, Assignment{Column: column, Value: value})
}

// setRequired records a supplied value for a NOT NULL column.
func setRequired[T any](c *Changes, column string, o Optional[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		c.nullColumns = append(c.nullColumns, column)
		return
	}
	if s, ok := any(o.Value).(string); ok && s == "" {
		c.blankColumns = append(c.blankColumns, column)
		return
	}
	c.set(column, o.Value)
}

// setNullable records a supplied value, storing NULL for explicit nulls.
func setNullable[T any](c *Changes, column string, o Optional[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		c.set(column, nil)
		return
	}
	c.set(column, o.Value)
}
