package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/app/services"
)

// DemoCourses is the catalogue inserted by CreateDemoCourses.
var DemoCourses = []models.Course{
	{Name: "Introduction to Python", Instructor: "Marie Curie", Category: "Programmation", Schedule: "Lundi 09:00-11:00"},
	{Name: "Linear Algebra", Instructor: "Henri Poincaré", Category: "Mathématiques", Schedule: "Mardi 14:00-16:00"},
	{Name: "Distributed Systems", Instructor: "Ada Lovelace", Category: "Informatique", Schedule: "Mercredi 10:00-12:00"},
	{Name: "Probability", Instructor: "Blaise Pascal", Category: "Mathématiques", Schedule: "Jeudi 08:00-10:00"},
	{Name: "Web Development", Instructor: "Alan Turing", Category: "Programmation", Schedule: "Vendredi 13:00-15:00"},
}

// CreateDemoCourses fills an empty catalogue with DemoCourses. A catalogue
// that already holds courses is left untouched.
func CreateDemoCourses(ctx context.Context, store services.CourseStore, lgr zerolog.Logger) (int, error) {
	existing, err := store.GetAllCourses(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking existing courses: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Int("courses", len(existing)).Msg("Course catalogue not empty, skipping demo data")
		return 0, nil
	}

	lgr.Info().Msg("Creating demo courses...")
	created := 0
	var finalErr error
	for _, course := range DemoCourses {
		course := course
		if _, err := store.CreateCourse(ctx, &course); err != nil {
			lgr.Error().Err(err).Str("name", course.Name).Msg("Error creating demo course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}

	lgr.Info().Int("created", created).Msg("Demo courses created")
	return created, finalErr
}
