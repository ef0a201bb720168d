package constants

import (
	"database/sql/driver"
	"fmt"
)

// MentorStatus tracks a mentor application through review.
type MentorStatus string

const (
	MentorPending  MentorStatus = "pending"
	MentorApproved MentorStatus = "approved"
	MentorRejected MentorStatus = "rejected"
)

func (s MentorStatus) String() string { return string(s) }

func (s MentorStatus) IsValid() bool {
	switch s {
	case MentorPending, MentorApproved, MentorRejected:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface
func (s *MentorStatus) Scan(src interface{}) error {
	if src == nil {
		*s = MentorPending
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = MentorStatus(v)
	case []byte:
		*s = MentorStatus(v)
	default:
		return fmt.Errorf("MentorStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s MentorStatus) Value() (driver.Value, error) { return string(s), nil }

// InternshipType is the employment mode of an internship listing.
type InternshipType string

const (
	InternshipFullTime InternshipType = "Full-time"
	InternshipPartTime InternshipType = "Part-time"
	InternshipRemote   InternshipType = "Remote"
	InternshipHybrid   InternshipType = "Hybrid"
)

func (t InternshipType) String() string { return string(t) }

func (t InternshipType) IsValid() bool {
	switch t {
	case InternshipFullTime, InternshipPartTime, InternshipRemote, InternshipHybrid:
		return true
	}
	return false
}
