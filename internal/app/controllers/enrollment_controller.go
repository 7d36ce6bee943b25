package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/app/models/dto"
	"github.com/yigit/courseservice/internal/app/services"
	"github.com/yigit/courseservice/internal/middleware"
)

// EnrollmentController handles enrollments and course rosters
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	rosterService     services.RosterService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, rosterService services.RosterService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		rosterService:     rosterService,
	}
}

// Enroll enrolls a student into a course
// @Summary Enroll a student
// @Description Validates the course locally and the student against the Student service. Repeating the call is harmless.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.EnrollRequest true "Student and course"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollResponse} "Student enrolled"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollResponse} "Student already enrolled"
// @Failure 400 {object} dto.APIResponse "Missing student_id or course_id"
// @Failure 404 {object} dto.APIResponse "Course or student not found"
// @Failure 502 {object} dto.APIResponse "Unexpected Student service response"
// @Failure 503 {object} dto.APIResponse "Student service unavailable"
// @Router /enroll/ [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	studentID, courseID := req.IDs()
	outcome, err := c.enrollmentService.Enroll(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data := dto.EnrollResponse{StudentID: studentID, CourseID: courseID, Outcome: outcome}
	if outcome == models.EnrollAlreadyEnrolled {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, "Student is already enrolled in this course"))
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data, "Student enrolled successfully"))
}

// GetStudentsByCourse returns the course roster
// @Summary Course roster
// @Description Students whose record cannot be fetched are listed with placeholder values.
// @Tags enrollments
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseRoster}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /course/{course_id}/students/ [get]
func (c *EnrollmentController) GetStudentsByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}

	roster, err := c.rosterService.ListStudentsForCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(roster, ""))
}
