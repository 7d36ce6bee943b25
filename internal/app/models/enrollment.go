package models

import "time"

// Enrollment links a student owned by the remote Student service to a local
// course. Records are never updated; they disappear with their course.
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"student_id" db:"student_id"`
	CourseID  int64     `json:"course" db:"course_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EnrollOutcome is the non-error result of an enrollment request.
type EnrollOutcome string

const (
	EnrollCreated         EnrollOutcome = "CREATED"
	EnrollAlreadyEnrolled EnrollOutcome = "ALREADY_ENROLLED"
)
