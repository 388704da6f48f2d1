// Package dialogue implements the slot-filling dialogue: detecting missing
// profile fields, generating batched clarifying questions and applying answers.
package dialogue

import "github.com/jonathan/job-scout/internal/types"

// RequiredPriority is the order in which required information is requested.
var RequiredPriority = []string{
	types.FieldLocation,
	types.FieldEducation,
	types.FieldSkills,
	types.FieldMajor,
	types.FieldCertifications,
	types.FieldCareerLevel,
	types.FieldEmploymentType,
}

// requiredSlots are the fields that must be filled before searching.
var requiredSlots = []string{
	types.FieldCareerLevel,
	types.FieldLocation,
	types.FieldEmploymentType,
	types.FieldEducation,
}

// OptionalCandidates are the fields offered in optional rounds, in priority order.
var OptionalCandidates = []string{
	types.FieldCertifications,
	types.FieldMajor,
	types.FieldIndustry,
	types.FieldCompanyTypes,
	types.FieldJobLevels,
	types.FieldSalaryBrackets,
	types.FieldPrefConditions,
	types.FieldBenefits,
	types.FieldKeywords,
}

// MissingRequired returns the required slots that are empty in spec, in the
// order career.level, location, employment_type, education.
func MissingRequired(spec types.Spec) []string {
	var missing []string
	for _, field := range requiredSlots {
		if spec.IsEmpty(field) {
			missing = append(missing, field)
		}
	}
	return missing
}
