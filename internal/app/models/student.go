package models

import "fmt"

// Placeholder values used when a student's remote record is unavailable.
const (
	PlaceholderFirstName        = "Étudiant"
	PlaceholderEmailMissing     = "Non disponible"
	PlaceholderEmailUnreachable = "Service indisponible"
)

// StudentRecord is the live view of a student fetched from the Student
// service. It is never persisted or cached.
type StudentRecord struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// PlaceholderStudent synthesizes the roster row for a student whose remote
// record could not be fetched.
func PlaceholderStudent(studentID int64, email string) StudentRecord {
	return StudentRecord{
		ID:        studentID,
		FirstName: PlaceholderFirstName,
		LastName:  fmt.Sprintf("#%d", studentID),
		Email:     email,
	}
}

// CourseRoster is a course with its enrolled students enriched from the
// Student service, in enrollment order.
type CourseRoster struct {
	CourseID   int64           `json:"course_id"`
	CourseName string          `json:"course_name"`
	Students   []StudentRecord `json:"students"`
}
