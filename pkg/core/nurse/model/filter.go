package model

import "strings"

// Sentinel values the directory front end sends for "no constraint".
const (
	AllSpecialties  = "All Specialties"
	AnyAvailability = "Any"
)

// Filter is a conjunction of optional constraints. Empty fields are absent.
type Filter struct {
	Name         string
	Specialty    string
	Location     string
	Availability string
}

// Normalize drops the sentinel values so they are never applied as constraints.
func (f Filter) Normalize() Filter {
	if f.Specialty == AllSpecialties {
		f.Specialty = ""
	}
	if f.Availability == AnyAvailability {
		f.Availability = ""
	}
	return f
}

// IsEmpty reports whether the filter is the constant-true predicate.
func (f Filter) IsEmpty() bool {
	f = f.Normalize()
	return f.Name == "" && f.Specialty == "" && f.Location == "" && f.Availability == ""
}

// Match evaluates the filter against one record.
func (f Filter) Match(n Nurse) bool {
	f = f.Normalize()
	if f.Name != "" && !strings.Contains(n.Name, f.Name) && !strings.Contains(n.User, f.Name) {
		return false
	}
	if f.Specialty != "" && deref(n.Specialty) != f.Specialty {
		return false
	}
	if f.Location != "" && (n.Location == nil || !strings.Contains(*n.Location, f.Location)) {
		return false
	}
	if f.Availability != "" && deref(n.Availability) != f.Availability {
		return false
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
