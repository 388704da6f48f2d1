// Package types provides type definitions for structured data used throughout the job-scout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"slices"
	"strings"
)

// Field paths addressable by dialogue turns. Nested fields use dot notation.
const (
	FieldLocation       = "location"
	FieldCareerLevel    = "career.level"
	FieldEmploymentType = "employment_type"
	FieldEducation      = "education"
	FieldIndustry       = "industry"
	FieldRole           = "role"
	FieldMajor          = "major"

	FieldSkills         = "skills"
	FieldKeywords       = "keywords"
	FieldCertifications = "certifications"
	FieldCompanyTypes   = "company_types"
	FieldJobLevels      = "job_levels"
	FieldSalaryBrackets = "salary_brackets"
	FieldPrefMajors     = "pref_majors"
	FieldPrefConditions = "pref_conditions"
	FieldBenefits       = "benefits"
)

// Career holds the career-level axis of a Spec (e.g. 신입, 경력, 무관)
type Career struct {
	Level string `json:"level,omitempty"`
}

// Spec is a partial or resolved job-search profile.
// Scalar fields treat the empty string as absent. List fields behave as ordered sets.
type Spec struct {
	Location       string `json:"location,omitempty"`
	Career         Career `json:"career"`
	EmploymentType string `json:"employment_type,omitempty"`
	Education      string `json:"education,omitempty"`
	Industry       string `json:"industry,omitempty"`
	Role           string `json:"role,omitempty"`
	Major          string `json:"major,omitempty"`

	Skills         []string `json:"skills"`
	Keywords       []string `json:"keywords"`
	Certifications []string `json:"certifications"`
	CompanyTypes   []string `json:"company_types"`
	JobLevels      []string `json:"job_levels"`
	SalaryBrackets []string `json:"salary_brackets"`
	PrefMajors     []string `json:"pref_majors"`
	PrefConditions []string `json:"pref_conditions"`
	Benefits       []string `json:"benefits"`
}

// IsListField reports whether the dot-path names one of the set-like fields.
func IsListField(field string) bool {
	switch field {
	case FieldSkills, FieldKeywords, FieldCertifications, FieldCompanyTypes, FieldJobLevels,
		FieldSalaryBrackets, FieldPrefMajors, FieldPrefConditions, FieldBenefits:
		return true
	}
	return false
}

// IsScalarField reports whether the dot-path names one of the scalar fields.
func IsScalarField(field string) bool {
	switch field {
	case FieldLocation, FieldCareerLevel, FieldEmploymentType, FieldEducation,
		FieldIndustry, FieldRole, FieldMajor:
		return true
	}
	return false
}

// scalarRef returns a pointer to the scalar named by field, or nil.
func (s *Spec) scalarRef(field string) *string {
	switch field {
	case FieldLocation:
		return &s.Location
	case FieldCareerLevel:
		return &s.Career.Level
	case FieldEmploymentType:
		return &s.EmploymentType
	case FieldEducation:
		return &s.Education
	case FieldIndustry:
		return &s.Industry
	case FieldRole:
		return &s.Role
	case FieldMajor:
		return &s.Major
	}
	return nil
}

// listRef returns a pointer to the list named by field, or nil.
func (s *Spec) listRef(field string) *[]string {
	switch field {
	case FieldSkills:
		return &s.Skills
	case FieldKeywords:
		return &s.Keywords
	case FieldCertifications:
		return &s.Certifications
	case FieldCompanyTypes:
		return &s.CompanyTypes
	case FieldJobLevels:
		return &s.JobLevels
	case FieldSalaryBrackets:
		return &s.SalaryBrackets
	case FieldPrefMajors:
		return &s.PrefMajors
	case FieldPrefConditions:
		return &s.PrefConditions
	case FieldBenefits:
		return &s.Benefits
	}
	return nil
}

// Scalar returns the trimmed value of a scalar field, or "" for unknown fields.
func (s Spec) Scalar(field string) string {
	if ref := s.scalarRef(field); ref != nil {
		return strings.TrimSpace(*ref)
	}
	return ""
}

// List returns the values of a list field, or nil for unknown fields.
func (s Spec) List(field string) []string {
	if ref := s.listRef(field); ref != nil {
		return *ref
	}
	return nil
}

// IsEmpty reports whether the named field holds no value.
func (s Spec) IsEmpty(field string) bool {
	if IsListField(field) {
		return len(s.List(field)) == 0
	}
	return s.Scalar(field) == ""
}

// WithScalar returns a copy of s with the scalar field set to value.
// Unknown fields leave the copy unchanged.
func (s Spec) WithScalar(field, value string) Spec {
	out := s.Clone()
	if ref := out.scalarRef(field); ref != nil {
		*ref = strings.TrimSpace(value)
	}
	return out
}

// WithList returns a copy of s with the list field replaced by the deduplicated values.
func (s Spec) WithList(field string, values []string) Spec {
	out := s.Clone()
	if ref := out.listRef(field); ref != nil {
		*ref = Union(nil, values)
	}
	return out
}

// Clone returns a deep copy so callers never share backing arrays.
func (s Spec) Clone() Spec {
	out := s
	for _, field := range listFields {
		ref := out.listRef(field)
		*ref = slices.Clone(*ref)
	}
	return out
}

// Normalized trims every scalar and deduplicates every list field.
func (s Spec) Normalized() Spec {
	out := s.Clone()
	for _, field := range scalarFields {
		ref := out.scalarRef(field)
		*ref = strings.TrimSpace(*ref)
	}
	for _, field := range listFields {
		ref := out.listRef(field)
		*ref = Union(nil, *ref)
	}
	return out
}

var scalarFields = []string{
	FieldLocation, FieldCareerLevel, FieldEmploymentType, FieldEducation,
	FieldIndustry, FieldRole, FieldMajor,
}

var listFields = []string{
	FieldSkills, FieldKeywords, FieldCertifications, FieldCompanyTypes, FieldJobLevels,
	FieldSalaryBrackets, FieldPrefMajors, FieldPrefConditions, FieldBenefits,
}

// NormalizeValue is the comparison key for set membership.
func NormalizeValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// Union returns base followed by the values of add not already present,
// comparing by NormalizeValue. Blank entries are dropped. The first spelling wins.
// Returns nil when the result is empty.
func Union(base, add []string) []string {
	var out []string
	seen := make(map[string]bool, len(base)+len(add))
	for _, group := range [][]string{base, add} {
		for _, v := range group {
			key := NormalizeValue(v)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}

// Merge returns a new Spec combining base and update.
// A scalar is replaced only when update supplies a non-empty value; list fields
// become the order-preserving union of base then update.
func Merge(base, update Spec) Spec {
	out := base.Clone()
	for _, field := range scalarFields {
		if v := update.Scalar(field); v != "" {
			*out.scalarRef(field) = v
		}
	}
	for _, field := range listFields {
		*out.listRef(field) = Union(base.List(field), update.List(field))
	}
	return out
}
