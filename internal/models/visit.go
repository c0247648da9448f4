package models

import "time"

// Visit is a scheduled or completed welfare visit. Unlike the other
// records its timestamps carry time of day.
type Visit struct {
	ID              int64           `db:"id" json:"id"`
	BeneficiaryType BeneficiaryType `db:"beneficiary_type" json:"beneficiary_type"`
	BeneficiaryID   int64           `db:"beneficiary_id" json:"beneficiary_id"`
	VisitDate       Date            `db:"visit_date" json:"visit_date"`
	VisitTime       *string         `db:"visit_time" json:"visit_time"`
	VisitType       string          `db:"visit_type" json:"visit_type"`
	Purpose         *string         `db:"purpose" json:"purpose"`
	VisitedBy       *string         `db:"visited_by" json:"visited_by"`
	Status          string          `db:"status" json:"status"`
	Notes           *string         `db:"notes" json:"notes"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// VisitCreate is the payload for scheduling a visit.
type VisitCreate struct {
	BeneficiaryType BeneficiaryType `db:"beneficiary_type" json:"beneficiary_type" validate:"required,max=20"`
	BeneficiaryID   *int64          `db:"beneficiary_id" json:"beneficiary_id" validate:"required"`
	VisitDate       Date            `db:"visit_date" json:"visit_date" validate:"required"`
	VisitTime       *string         `db:"visit_time" json:"visit_time" validate:"omitempty,max=20"`
	VisitType       string          `db:"visit_type" json:"visit_type" validate:"required,max=50"`
	Purpose         *string         `db:"purpose" json:"purpose" validate:"omitempty,max=500"`
	VisitedBy       *string         `db:"visited_by" json:"visited_by" validate:"omitempty,max=100"`
	Status          *string         `db:"status" json:"status" validate:"omitempty,max=20"`
	Notes           *string         `db:"notes" json:"notes" validate:"omitempty,max=1000"`
}

// WithDefaults fills fields the caller may omit.
func (in VisitCreate) WithDefaults() VisitCreate {
	if in.Status == nil {
		in.Status = stringPtr(VisitStatusScheduled)
	}
	return in
}

// VisitUpdate is a partial update. The beneficiary reference is fixed
// once scheduled.
type VisitUpdate struct {
	VisitDate Optional[Date]   `json:"visit_date"`
	VisitTime Optional[string] `json:"visit_time" validate:"omitempty,max=20"`
	VisitType Optional[string] `json:"visit_type" validate:"omitempty,max=50"`
	Purpose   Optional[string] `json:"purpose" validate:"omitempty,max=500"`
	VisitedBy Optional[string] `json:"visited_by" validate:"omitempty,max=100"`
	Status    Optional[string] `json:"status" validate:"omitempty,max=20"`
	Notes     Optional[string] `json:"notes" validate:"omitempty,max=1000"`
}

// Changes lists the supplied columns.
func (u VisitUpdate) Changes() Changes {
	var c Changes
	setRequired(&c, "visit_date", u.VisitDate)
	setNullable(&c, "visit_time", u.VisitTime)
	setRequired(&c, "visit_type", u.VisitType)
	setNullable(&c, "purpose", u.Purpose)
	setNullable(&c, "visited_by", u.VisitedBy)
	setRequired(&c, "status", u.Status)
	setNullable(&c, "notes", u.Notes)
	return c
}

// VisitResource describes the visits table.
var VisitResource = Resource{
	Name:  "visits",
	Label: "Visit",
	Table: "visits",
	Columns: []string{
		"beneficiary_type", "beneficiary_id", "visit_date", "visit_time", "visit_type",
		"purpose", "visited_by", "status", "notes",
	},
	Filters: []Filter{
		{Column: "beneficiary_type", Kind: FilterString},
		{Column: "beneficiary_id", Kind: FilterInt},
		{Column: "status", Kind: FilterString},
	},
	OrderBy:   "visit_date DESC, id DESC",
	Timestamp: TimestampDateTime,
}
