package models

// Senior is a registered senior citizen.
type Senior struct {
	ID            int64   `db:"id" json:"id"`
	FirstName     string  `db:"first_name" json:"first_name"`
	LastName      string  `db:"last_name" json:"last_name"`
	MiddleName    *string `db:"middle_name" json:"middle_name"`
	BirthDate     Date    `db:"birth_date" json:"birth_date"`
	Gender        string  `db:"gender" json:"gender"`
	Address       string  `db:"address" json:"address"`
	ContactNumber *string `db:"contact_number" json:"contact_number"`
	OSCAID        *string `db:"osca_id" json:"osca_id"`
	Barangay      string  `db:"barangay" json:"barangay"`
	IsActive      bool    `db:"is_active" json:"is_active"`
	Notes         *string `db:"notes" json:"notes"`
	CreatedAt     Date    `db:"created_at" json:"created_at"`
	UpdatedAt     Date    `db:"updated_at" json:"updated_at"`
}

// SeniorCreate is the payload for registering a senior citizen.
type SeniorCreate struct {
	FirstName     string  `db:"first_name" json:"first_name" validate:"required,max=100"`
	LastName      string  `db:"last_name" json:"last_name" validate:"required,max=100"`
	MiddleName    *string `db:"middle_name" json:"middle_name" validate:"omitempty,max=100"`
	BirthDate     Date    `db:"birth_date" json:"birth_date" validate:"required"`
	Gender        string  `db:"gender" json:"gender" validate:"required,max=20"`
	Address       string  `db:"address" json:"address" validate:"required,max=255"`
	ContactNumber *string `db:"contact_number" json:"contact_number" validate:"omitempty,max=20"`
	OSCAID        *string `db:"osca_id" json:"osca_id" validate:"omitempty,max=50"`
	Barangay      string  `db:"barangay" json:"barangay" validate:"required,max=100"`
	IsActive      *bool   `db:"is_active" json:"is_active"`
	Notes         *string `db:"notes" json:"notes" validate:"omitempty,max=1000"`
}

// WithDefaults fills fields the caller may omit.
func (in SeniorCreate) WithDefaults() SeniorCreate {
	if in.IsActive == nil {
		in.IsActive = boolPtr(true)
	}
	return in
}

// SeniorUpdate is a partial update; only supplied fields change.
type SeniorUpdate struct {
	FirstName     Optional[string] `json:"first_name" validate:"omitempty,max=100"`
	LastName      Optional[string] `json:"last_name" validate:"omitempty,max=100"`
	MiddleName    Optional[string] `json:"middle_name" validate:"omitempty,max=100"`
	BirthDate     Optional[Date]   `json:"birth_date"`
	Gender        Optional[string] `json:"gender" validate:"omitempty,max=20"`
	Address       Optional[string] `json:"address" validate:"omitempty,max=255"`
	ContactNumber Optional[string] `json:"contact_number" validate:"omitempty,max=20"`
	OSCAID        Optional[string] `json:"osca_id" validate:"omitempty,max=50"`
	Barangay      Optional[string] `json:"barangay" validate:"omitempty,max=100"`
	IsActive      Optional[bool]   `json:"is_active"`
	Notes         Optional[string] `json:"notes" validate:"omitempty,max=1000"`
}

// Changes lists the supplied columns.
func (u SeniorUpdate) Changes() Changes {
	var c Changes
	setRequired(&c, "first_name", u.FirstName)
	setRequired(&c, "last_name", u.LastName)
	setNullable(&c, "middle_name", u.MiddleName)
	setRequired(&c, "birth_date", u.BirthDate)
	setRequired(&c, "gender", u.Gender)
	setRequired(&c, "address", u.Address)
	setNullable(&c, "contact_number", u.ContactNumber)
	setNullable(&c, "osca_id", u.OSCAID)
	setRequired(&c, "barangay", u.Barangay)
	setRequired(&c, "is_active", u.IsActive)
	setNullable(&c, "notes", u.Notes)
	return c
}

// SeniorResource describes the seniors table.
var SeniorResource = Resource{
	Name:  "seniors",
	Label: "Senior citizen",
	Table: "seniors",
	Columns: []string{
		"first_name", "last_name", "middle_name", "birth_date", "gender", "address",
		"contact_number", "osca_id", "barangay", "is_active", "notes",
	},
	Filters: []Filter{
		{Column: "barangay", Kind: FilterString},
		{Column: "is_active", Kind: FilterBool},
	},
	OrderBy:   "last_name ASC, first_name ASC, id ASC",
	Timestamp: TimestampDate,
}

func boolPtr(v bool) *bool { return &v }
