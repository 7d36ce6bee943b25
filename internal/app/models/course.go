package models

import "strings"

// Course represents a course taught by an instructor.
type Course struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Instructor string `json:"instructor" db:"instructor"`
	Category   string `json:"category" db:"category"`
	Schedule   string `json:"schedule" db:"schedule"`
}

// CourseSearchFilter holds the optional search parameters. Empty fields are
// not part of the filter.
type CourseSearchFilter struct {
	Query      string
	Name       string
	Instructor string
	Category   string
}

// Normalize trims every field.
func (f CourseSearchFilter) Normalize() CourseSearchFilter {
	return CourseSearchFilter{
		Query:      strings.TrimSpace(f.Query),
		Name:       strings.TrimSpace(f.Name),
		Instructor: strings.TrimSpace(f.Instructor),
		Category:   strings.TrimSpace(f.Category),
	}
}

// IsEmpty reports whether no search parameter was supplied.
func (f CourseSearchFilter) IsEmpty() bool {
	n := f.Normalize()
	return n.Query == "" && n.Name == "" && n.Instructor == "" && n.Category == ""
}

// Matches applies the filter to c in memory using case-insensitive
// substring matching, the same semantics as the SQL search.
func (f CourseSearchFilter) Matches(c *Course) bool {
	n := f.Normalize()
	contains := func(field, needle string) bool {
		return strings.Contains(strings.ToLower(field), strings.ToLower(needle))
	}

	if n.Query != "" && !(contains(c.Name, n.Query) || contains(c.Instructor, n.Query) || contains(c.Category, n.Query)) {
		return false
	}
	if n.Name != "" && !contains(c.Name, n.Name) {
		return false
	}
	if n.Instructor != "" && !contains(c.Instructor, n.Instructor) {
		return false
	}
	if n.Category != "" && !contains(c.Category, n.Category) {
		return false
	}
	return true
}
