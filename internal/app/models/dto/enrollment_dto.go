package dto

import "github.com/yigit/courseservice/internal/app/models"

// EnrollRequest is the body of POST /enroll/. Pointers distinguish an absent
// field from a zero value.
type EnrollRequest struct {
	StudentID *int64 `json:"student_id" example:"7"`
	CourseID  *int64 `json:"course_id" example:"3"`
}

// IDs returns both identifiers, zero when absent.
func (r EnrollRequest) IDs() (studentID, courseID int64) {
	if r.StudentID != nil {
		studentID = *r.StudentID
	}
	if r.CourseID != nil {
		courseID = *r.CourseID
	}
	return studentID, courseID
}

// EnrollResponse describes the enrollment outcome.
type EnrollResponse struct {
	StudentID int64                `json:"student_id"`
	CourseID  int64                `json:"course_id"`
	Outcome   models.EnrollOutcome `json:"outcome"`
}
