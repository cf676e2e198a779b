package model

import "time"

// Claim is a failure/repair record for a machine. Downtime is derived
// from the failure and recovery dates at every persist and is never
// accepted from a request payload.
type Claim struct {
	ID uint `gorm:"primaryKey"`

	FailureDate Date `gorm:"not null;index"`

	OperatingTime *int64

	FailureNodeID uint          `gorm:"not null"`
	FailureNode   ReferenceItem `gorm:"constraint:OnDelete:RESTRICT"`

	FailureDescription string `gorm:"not null"`

	RepairMethodID uint          `gorm:"not null"`
	RepairMethod   ReferenceItem `gorm:"constraint:OnDelete:RESTRICT"`

	SpareParts   string
	RecoveryDate *Date

	// Days the machine was out of service, or nil while unrecovered.
	Downtime *int64

	MachineID uint    `gorm:"not null;index"`
	Machine   Machine `gorm:"constraint:OnDelete:CASCADE"`

	ServiceCompanyID *uint
	ServiceCompany   *User `gorm:"constraint:OnDelete:SET NULL"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeDowntime returns max(recovery-failure, 0) in whole days when
// both dates are set, nil otherwise. It is deterministic: recomputing
// with the same dates yields the same value.
func ComputeDowntime(failure Date, recovery *Date) *int64 {
	if failure.IsZero() || recovery == nil || recovery.IsZero() {
		return nil
	}
	days := int64(failure.DaysUntil(*recovery))
	if days < 0 {
		days = 0
	}
	return &days
}

// RecomputeDowntime refreshes the derived field from the claim's own
// dates. Called at the write boundary before every persist.
func (c *Claim) RecomputeDowntime() {
	c.Downtime = ComputeDowntime(c.FailureDate, c.RecoveryDate)
}
