package mapping

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-scout/internal/types"
)

const (
	maxRoleTerms      = 5
	maxQuerySkills    = 3
	maxKeywordRuneLen = 20
)

// NegativeHints are excluded from free-text queries as "-term" tokens.
var NegativeHints = []string{
	"콜센터", "상담", "판매", "운전", "배송", "생산직", "서빙",
	"조리", "주방", "원무", "고객센터", "CS", "교사", "튜터",
}

// BuildQueryText builds a free-text search query: role terms first (expanded
// roles, the role, short keywords), then up to three skills, major, location and
// education, followed by negative hints.
func BuildQueryText(spec types.Spec, applied *types.AppliedFilters) string {
	var roleTerms []string
	if applied != nil {
		roleTerms = append(roleTerms, applied.ExpandedRoles...)
	}
	roleTerms = append(roleTerms, spec.Role)
	for _, k := range spec.Keywords {
		if utf8.RuneCountInString(k) <= maxKeywordRuneLen {
			roleTerms = append(roleTerms, k)
		}
	}
	roleTerms = uniqKeep(roleTerms, maxRoleTerms)

	var skills []string
	for _, s := range spec.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, " ") || utf8.RuneCountInString(s) > 2 {
			s = `"` + s + `"`
		}
		skills = append(skills, s)
		if len(skills) == maxQuerySkills {
			break
		}
	}

	var parts []string
	if len(roleTerms) > 0 {
		parts = append(parts, strings.Join(roleTerms, " "))
	}
	if len(skills) > 0 {
		parts = append(parts, strings.Join(skills, " "))
	}
	for _, v := range []string{spec.Major, spec.Location} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	if edu := strings.TrimSpace(spec.Education); edu != "" && edu != "무관" {
		parts = append(parts, edu)
	}

	minus := make([]string, len(NegativeHints))
	for i, h := range NegativeHints {
		minus[i] = "-" + h
	}
	parts = append(parts, strings.Join(minus, " "))
	return strings.TrimSpace(strings.Join(parts, " "))
}

// uniqKeep trims, drops blanks and exact duplicates, and stops at limit (0 = no limit).
func uniqKeep(seq []string, limit int) []string {
	var out []string
	seen := make(map[string]bool, len(seq))
	for _, s := range seq {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
