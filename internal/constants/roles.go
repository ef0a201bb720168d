package constants

import (
	"database/sql/driver"
	"fmt"
)

// Role mirrors the role attribute held by the external identity provider.
// Role comparisons live in internal/policy; everything else treats this as
// an opaque tag.
type Role string

const (
	RoleStudent    Role = "student"
	RoleAlumni     Role = "alumni"
	RoleAdmin      Role = "admin"
	RoleUnassigned Role = "unassigned"
)

// String makes Role convenient for fmt and logs.
func (r Role) String() string { return string(r) }

// IsValid reports whether r is one of the known role tags.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAlumni, RoleAdmin, RoleUnassigned:
		return true
	}
	return false
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	if src == nil {
		*r = RoleUnassigned
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return fmt.Errorf("Role: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r Role) Value() (driver.Value, error) { return string(r), nil }
