// Package types provides type definitions for structured data used throughout the job-scout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
)

// NoTitle is the title emitted when every title fallback failed.
const NoTitle = "(제목 없음)"

// PostingDoc is one crawled job posting.
type PostingDoc struct {
	ID         string `json:"gi_no"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	DetailText string `json:"jd_text"`
}

// RoleResultSet maps each role keyword to its postings in discovery order.
// Keys iterate in insertion order.
type RoleResultSet struct {
	roles    []string
	postings map[string][]PostingDoc
}

// NewRoleResultSet creates an empty result set.
func NewRoleResultSet() *RoleResultSet {
	return &RoleResultSet{postings: make(map[string][]PostingDoc)}
}

// Set stores the postings for a role, keeping the role's first insertion position.
func (r *RoleResultSet) Set(role string, docs []PostingDoc) {
	if _, ok := r.postings[role]; !ok {
		r.roles = append(r.roles, role)
	}
	if docs == nil {
		docs = []PostingDoc{}
	}
	r.postings[role] = docs
}

// Get returns the postings for a role and whether the role is present.
func (r *RoleResultSet) Get(role string) ([]PostingDoc, bool) {
	docs, ok := r.postings[role]
	return docs, ok
}

// Postings returns the postings for a role, or nil when the role is absent.
func (r *RoleResultSet) Postings(role string) []PostingDoc {
	return r.postings[role]
}

// Roles returns the role keywords in insertion order.
func (r *RoleResultSet) Roles() []string {
	out := make([]string, len(r.roles))
	copy(out, r.roles)
	return out
}

// Len returns the number of roles.
func (r *RoleResultSet) Len() int {
	return len(r.roles)
}

// Total returns the number of postings across all roles.
func (r *RoleResultSet) Total() int {
	n := 0
	for _, docs := range r.postings {
		n += len(docs)
	}
	return n
}

// MarshalJSON encodes the set as a JSON object with keys in insertion order.
func (r *RoleResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, role := range r.roles {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(role)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.postings[role])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
