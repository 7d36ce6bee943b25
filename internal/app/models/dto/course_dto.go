package dto

import "github.com/yigit/courseservice/internal/app/models"

// CourseRequest is the payload of course creation and full update.
type CourseRequest struct {
	Name       string `json:"name" binding:"required,max=100" example:"Python Programming"`
	Instructor string `json:"instructor" binding:"required,max=100" example:"Dr. Sara"`
	Category   string `json:"category" binding:"required,max=100" example:"Programmation"`
	Schedule   string `json:"schedule" binding:"required,max=100" example:"Lundi 9h-11h"`
}

// ToModel converts the request into a Course with the given id.
func (r CourseRequest) ToModel(id int64) *models.Course {
	return &models.Course{
		ID:         id,
		Name:       r.Name,
		Instructor: r.Instructor,
		Category:   r.Category,
		Schedule:   r.Schedule,
	}
}

// CourseSearchQuery binds the search query string.
type CourseSearchQuery struct {
	Q          string `form:"q"`
	Name       string `form:"name"`
	Instructor string `form:"instructor"`
	Category   string `form:"category"`
}

// ToFilter converts the query into a normalized search filter.
func (q CourseSearchQuery) ToFilter() models.CourseSearchFilter {
	return models.CourseSearchFilter{
		Query:      q.Q,
		Name:       q.Name,
		Instructor: q.Instructor,
		Category:   q.Category,
	}.Normalize()
}
