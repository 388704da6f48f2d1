// Package types provides type definitions for structured data used throughout the job-scout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AppliedFilters is a Spec mapped onto the recruiting site's filter vocabulary,
// plus the LLM-generated keyword and role expansions.
type AppliedFilters struct {
	Duty           string   `json:"duty"`
	Region         string   `json:"region"`
	Career         string   `json:"career"`
	Education      string   `json:"education"`
	Employment     string   `json:"employment"`
	Industry       string   `json:"industry"`
	CompanyTypes   []string `json:"company_types"`
	JobLevels      []string `json:"job_levels"`
	SalaryBrackets []string `json:"salary_brackets"`
	PrefMajors     []string `json:"pref_majors"`
	Certifications []string `json:"certifications"`
	PrefConditions []string `json:"pref_conditions"`
	Benefits       []string `json:"benefits"`
	Keywords       []string `json:"keywords"`

	// ExpandedKeywords holds domain synonym pairs such as "python↔파이썬".
	ExpandedKeywords []string `json:"expanded_keywords"`
	// ExpandedRoles holds role-keyword variants used as crawl inputs.
	ExpandedRoles []string `json:"expanded_roles"`
}

// ProjectKeywords are search keywords extracted from a free-text project description.
type ProjectKeywords struct {
	Roles   []string `json:"roles"`
	Skills  []string `json:"skills"`
	Domains []string `json:"domains"`
}
