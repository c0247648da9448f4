package models

// BeneficiaryType tags which registry a beneficiary_id points into.
// The reference is resolved by callers only; the store does not enforce
// it and ids that match no senior or PWD are accepted.
type BeneficiaryType string

const (
	BeneficiarySenior BeneficiaryType = "senior"
	BeneficiaryPWD    BeneficiaryType = "pwd"
)

// Documented status values. They are not enforced on write.
const (
	BenefitStatusPending     = "pending"
	BenefitStatusDistributed = "distributed"
	BenefitStatusCancelled   = "cancelled"

	VisitStatusScheduled   = "scheduled"
	VisitStatusCompleted   = "completed"
	VisitStatusCancelled   = "cancelled"
	VisitStatusRescheduled = "rescheduled"

	DriveStatusPlanned   = "planned"
	DriveStatusOngoing   = "ongoing"
	DriveStatusCompleted = "completed"
	DriveStatusCancelled = "cancelled"
)

// Target beneficiary groups of an assistance drive.
const (
	DriveTargetSenior = "senior"
	DriveTargetPWD    = "pwd"
	DriveTargetBoth   = "both"
)

func stringPtr(v string) *string { return &v }

func int64Ptr(v int64) *int64 { return &v }
