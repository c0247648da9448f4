package models

// Benefit records a benefit given, or to be given, to a beneficiary.
type Benefit struct {
	ID               int64           `db:"id" json:"id"`
	BeneficiaryType  BeneficiaryType `db:"beneficiary_type" json:"beneficiary_type"`
	BeneficiaryID    int64           `db:"beneficiary_id" json:"beneficiary_id"`
	BenefitType      string          `db:"benefit_type" json:"benefit_type"`
	Amount           *float64        `db:"amount" json:"amount"`
	Description      *string         `db:"description" json:"description"`
	DistributionDate Date            `db:"distribution_date" json:"distribution_date"`
	DistributedBy    *string         `db:"distributed_by" json:"distributed_by"`
	Status           string          `db:"status" json:"status"`
	CreatedAt        Date            `db:"created_at" json:"created_at"`
	UpdatedAt        Date            `db:"updated_at" json:"updated_at"`
}

// BenefitCreate is the payload for recording a benefit.
type BenefitCreate struct {
	BeneficiaryType  BeneficiaryType `db:"beneficiary_type" json:"beneficiary_type" validate:"required,max=20"`
	BeneficiaryID    *int64          `db:"beneficiary_id" json:"beneficiary_id" validate:"required"`
	BenefitType      string          `db:"benefit_type" json:"benefit_type" validate:"required,max=100"`
	Amount           *float64        `db:"amount" json:"amount"`
	Description      *string         `db:"description" json:"description" validate:"omitempty,max=500"`
	DistributionDate Date            `db:"distribution_date" json:"distribution_date" validate:"required"`
	DistributedBy    *string         `db:"distributed_by" json:"distributed_by" validate:"omitempty,max=100"`
	Status           *string         `db:"status" json:"status" validate:"omitempty,max=20"`
}

// WithDefaults fills fields the caller may omit.
func (in BenefitCreate) WithDefaults() BenefitCreate {
	if in.Status == nil {
		in.Status = stringPtr(BenefitStatusPending)
	}
	return in
}

// BenefitUpdate is a partial update. The beneficiary reference is fixed
// once recorded.
type BenefitUpdate struct {
	BenefitType      Optional[string]  `json:"benefit_type" validate:"omitempty,max=100"`
	Amount           Optional[float64] `json:"amount"`
	Description      Optional[string]  `json:"description" validate:"omitempty,max=500"`
	DistributionDate Optional[Date]    `json:"distribution_date"`
	DistributedBy    Optional[string]  `json:"distributed_by" validate:"omitempty,max=100"`
	Status           Optional[string]  `json:"status" validate:"omitempty,max=20"`
}

// Changes lists the supplied columns.
func (u BenefitUpdate) Changes() Changes {
	var c Changes
	setRequired(&c, "benefit_type", u.BenefitType)
	setNullable(&c, "amount", u.Amount)
	setNullable(&c, "description", u.Description)
	setRequired(&c, "distribution_date", u.DistributionDate)
	setNullable(&c, "distributed_by", u.DistributedBy)
	setRequired(&c, "status", u.Status)
	return c
}

// BenefitResource describes the benefits table.
var BenefitResource = Resource{
	Name:  "benefits",
	Label: "Benefit",
	Table: "benefits",
	Columns: []string{
		"beneficiary_type", "beneficiary_id", "benefit_type", "amount", "description",
		"distribution_date", "distributed_by", "status",
	},
	Filters: []Filter{
		{Column: "beneficiary_type", Kind: FilterString},
		{Column: "beneficiary_id", Kind: FilterInt},
		{Column: "status", Kind: FilterString},
	},
	OrderBy:   "distribution_date DESC, id DESC",
	Timestamp: TimestampDate,
}
