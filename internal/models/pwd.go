package models

// PWD is a registered person with disability.
type PWD struct {
	ID             int64   `db:"id" json:"id"`
	FirstName      string  `db:"first_name" json:"first_name"`
	LastName       string  `db:"last_name" json:"last_name"`
	MiddleName     *string `db:"middle_name" json:"middle_name"`
	BirthDate      Date    `db:"birth_date" json:"birth_date"`
	Gender         string  `db:"gender" json:"gender"`
	Address        string  `db:"address" json:"address"`
	ContactNumber  *string `db:"contact_number" json:"contact_number"`
	PWDID          *string `db:"pwd_id" json:"pwd_id"`
	DisabilityType string  `db:"disability_type" json:"disability_type"`
	Barangay       string  `db:"barangay" json:"barangay"`
	IsActive       bool    `db:"is_active" json:"is_active"`
	Notes          *string `db:"notes" json:"notes"`
	CreatedAt      Date    `db:"created_at" json:"created_at"`
	UpdatedAt      Date    `db:"updated_at" json:"updated_at"`
}

// PWDCreate is the payload for registering a PWD.
type PWDCreate struct {
	FirstName      string  `db:"first_name" json:"first_name" validate:"required,max=100"`
	LastName       string  `db:"last_name" json:"last_name" validate:"required,max=100"`
	MiddleName     *string `db:"middle_name" json:"middle_name" validate:"omitempty,max=100"`
	BirthDate      Date    `db:"birth_date" json:"birth_date" validate:"required"`
	Gender         string  `db:"gender" json:"gender" validate:"required,max=20"`
	Address        string  `db:"address" json:"address" validate:"required,max=255"`
	ContactNumber  *string `db:"contact_number" json:"contact_number" validate:"omitempty,max=20"`
	PWDID          *string `db:"pwd_id" json:"pwd_id" validate:"omitempty,max=50"`
	DisabilityType string  `db:"disability_type" json:"disability_type" validate:"required,max=100"`
	Barangay       string  `db:"barangay" json:"barangay" validate:"required,max=100"`
	IsActive       *bool   `db:"is_active" json:"is_active"`
	Notes          *string `db:"notes" json:"notes" validate:"omitempty,max=1000"`
}

// WithDefaults fills fields the caller may omit.
func (in PWDCreate) WithDefaults() PWDCreate {
	if in.IsActive == nil {
		in.IsActive = boolPtr(true)
	}
	return in
}

// PWDUpdate is a partial update; only supplied fields change.
type PWDUpdate struct {
	FirstName      Optional[string] `json:"first_name" validate:"omitempty,max=100"`
	LastName       Optional[string] `json:"last_name" validate:"omitempty,max=100"`
	MiddleName     Optional[string] `json:"middle_name" validate:"omitempty,max=100"`
	BirthDate      Optional[Date]   `json:"birth_date"`
	Gender         Optional[string] `json:"gender" validate:"omitempty,max=20"`
	Address        Optional[string] `json:"address" validate:"omitempty,max=255"`
	ContactNumber  Optional[string] `json:"contact_number" validate:"omitempty,max=20"`
	PWDID          Optional[string] `json:"pwd_id" validate:"omitempty,max=50"`
	DisabilityType Optional[string] `json:"disability_type" validate:"omitempty,max=100"`
	Barangay       Optional[string] `json:"barangay" validate:"omitempty,max=100"`
	IsActive       Optional[bool]   `json:"is_active"`
	Notes          Optional[string] `json:"notes" validate:"omitempty,max=1000"`
}

// Changes lists the supplied columns.
func (u PWDUpdate) Changes() Changes {
	var c Changes
	setRequired(&c, "first_name", u.FirstName)
	setRequired(&c, "last_name", u.LastName)
	setNullable(&c, "middle_name", u.MiddleName)
	setRequired(&c, "birth_date", u.BirthDate)
	setRequired(&c, "gender", u.Gender)
	setRequired(&c, "address", u.Address)
	setNullable(&c, "contact_number", u.ContactNumber)
	setNullable(&c, "pwd_id", u.PWDID)
	setRequired(&c, "disability_type", u.DisabilityType)
	setRequired(&c, "barangay", u.Barangay)
	setRequired(&c, "is_active", u.IsActive)
	setNullable(&c, "notes", u.Notes)
	return c
}

// PWDResource describes the pwds table.
var PWDResource = Resource{
	Name:  "pwds",
	Label: "PWD",
	Table: "pwds",
	Columns: []string{
		"first_name", "last_name", "middle_name", "birth_date", "gender", "address",
		"contact_number", "pwd_id", "disability_type", "barangay", "is_active", "notes",
	},
	Filters: []Filter{
		{Column: "barangay", Kind: FilterString},
		{Column: "is_active", Kind: FilterBool},
	},
	OrderBy:   "last_name ASC, first_name ASC, id ASC",
	Timestamp: TimestampDate,
}
