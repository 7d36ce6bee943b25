package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/courseservice/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
) {
	api := router.Group("/api")

	// Course catalogue
	courses := api.Group("/courses")
	{
		courses.GET("/", courseController.GetAllCourses)
		courses.POST("/add/", courseController.CreateCourse)
		courses.GET("/search/", courseController.SearchCourses)
		courses.GET("/:id/", courseController.GetCourseByID)
		courses.PUT("/update/:id/", courseController.UpdateCourse)
		courses.DELETE("/delete/:id/", courseController.DeleteCourse)
	}

	// Enrollments
	api.POST("/enroll/", enrollmentController.Enroll)
	api.GET("/course/:course_id/students/", enrollmentController.GetStudentsByCourse)
	api.GET("/student/:student_id/courses/", courseController.GetCoursesByStudent)
}
