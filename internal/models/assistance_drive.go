package models

// AssistanceDrive is a community assistance event.
type AssistanceDrive struct {
	ID                  int64   `db:"id" json:"id"`
	DriveName           string  `db:"drive_name" json:"drive_name"`
	DriveType           string  `db:"drive_type" json:"drive_type"`
	TargetBeneficiaries string  `db:"target_beneficiaries" json:"target_beneficiaries"`
	StartDate           Date    `db:"start_date" json:"start_date"`
	EndDate             *Date   `db:"end_date" json:"end_date"`
	Location            string  `db:"location" json:"location"`
	Description         *string `db:"description" json:"description"`
	Organizer           *string `db:"organizer" json:"organizer"`
	Status              string  `db:"status" json:"status"`
	ParticipantsCount   *int64  `db:"participants_count" json:"participants_count"`
	CreatedAt           Date    `db:"created_at" json:"created_at"`
	UpdatedAt           Date    `db:"updated_at" json:"updated_at"`
}

// AssistanceDriveCreate is the payload for planning a drive.
type AssistanceDriveCreate struct {
	DriveName           string  `db:"drive_name" json:"drive_name" validate:"required,max=200"`
	DriveType           string  `db:"drive_type" json:"drive_type" validate:"required,max=50"`
	TargetBeneficiaries string  `db:"target_beneficiaries" json:"target_beneficiaries" validate:"required,max=20"`
	StartDate           Date    `db:"start_date" json:"start_date" validate:"required"`
	EndDate             *Date   `db:"end_date" json:"end_date"`
	Location            string  `db:"location" json:"location" validate:"required,max=255"`
	Description         *string `db:"description" json:"description" validate:"omitempty,max=1000"`
	Organizer           *string `db:"organizer" json:"organizer" validate:"omitempty,max=100"`
	Status              *string `db:"status" json:"status" validate:"omitempty,max=20"`
	ParticipantsCount   *int64  `db:"participants_count" json:"participants_count"`
}

// WithDefaults fills fields the caller may omit.
func (in AssistanceDriveCreate) WithDefaults() AssistanceDriveCreate {
	if in.Status == nil {
		in.Status = stringPtr(DriveStatusPlanned)
	}
	if in.ParticipantsCount == nil {
		in.ParticipantsCount = int64Ptr(0)
	}
	return in
}

// AssistanceDriveUpdate is a partial update; only supplied fields change.
type AssistanceDriveUpdate struct {
	DriveName           Optional[string] `json:"drive_name" validate:"omitempty,max=200"`
	DriveType           Optional[string] `json:"drive_type" validate:"omitempty,max=50"`
	TargetBeneficiaries Optional[string] `json:"target_beneficiaries" validate:"omitempty,max=20"`
	StartDate           Optional[Date]   `json:"start_date"`
	EndDate             Optional[Date]   `json:"end_date"`
	Location            Optional[string] `json:"location" validate:"omitempty,max=255"`
	Description         Optional[string] `json:"description" validate:"omitempty,max=1000"`
	Organizer           Optional[string] `json:"organizer" validate:"omitempty,max=100"`
	Status              Optional[string] `json:"status" validate:"omitempty,max=20"`
	ParticipantsCount   Optional[int64]  `json:"participants_count"`
}

// Changes lists the supplied columns.
func (u AssistanceDriveUpdate) Changes() Changes {
	var c Changes
	setRequired(&c, "drive_name", u.DriveName)
	setRequired(&c, "drive_type", u.DriveType)
	setRequired(&c, "target_beneficiaries", u.TargetBeneficiaries)
	setRequired(&c, "start_date", u.StartDate)
	setNullable(&c, "end_date", u.EndDate)
	setRequired(&c, "location", u.Location)
	setNullable(&c, "description", u.Description)
	setNullable(&c, "organizer", u.Organizer)
	setRequired(&c, "status", u.Status)
	setNullable(&c, "participants_count", u.ParticipantsCount)
	return c
}

// AssistanceDriveResource describes the assistance_drives table.
var AssistanceDriveResource = Resource{
	Name:  "assistance-drives",
	Label: "Assistance drive",
	Table: "assistance_drives",
	Columns: []string{
		"drive_name", "drive_type", "target_beneficiaries", "start_date", "end_date",
		"location", "description", "organizer", "status", "participants_count",
	},
	Filters: []Filter{
		{Column: "status", Kind: FilterString},
		{Column: "target_beneficiaries", Kind: FilterString},
	},
	OrderBy:   "start_date DESC, id DESC",
	Timestamp: TimestampDate,
}
