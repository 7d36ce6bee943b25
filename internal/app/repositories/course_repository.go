package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/db"
	"github.com/yigit/courseservice/internal/pkg/apperrors"
	"github.com/yigit/courseservice/internal/pkg/logger"
)

var courseColumns = []string{"c.id", "c.name", "c.instructor", "c.category", "c.schedule"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// CreateCourse inserts a course and returns its id
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "instructor", "category", "schedule").
		Values(course.Name, course.Instructor, course.Category, course.Schedule).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return id, nil
}

// GetCourseByID retrieves a course by ID
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses c").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Name, &course.Instructor, &course.Category, &course.Schedule)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// GetAllCourses retrieves every course ordered by id
func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return r.queryCourses(ctx, r.sb.Select(courseColumns...).From("courses c").OrderBy("c.id ASC"))
}

// SearchCourses retrieves the courses matching every supplied filter field
func (r *CourseRepository) SearchCourses(ctx context.Context, filter models.CourseSearchFilter) ([]*models.Course, error) {
	return r.queryCourses(ctx, r.sb.Select(courseColumns...).
		From("courses c").
		Where(CourseSearchClauses(filter)).
		OrderBy("c.id ASC"))
}

// GetCoursesByStudent retrieves the courses a student is enrolled in, in
// enrollment order
func (r *CourseRepository) GetCoursesByStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	return r.queryCourses(ctx, r.sb.Select(courseColumns...).
		From("courses c").
		Join("enrollments e ON e.course_id = c.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.id ASC"))
}

// UpdateCourse overwrites every field of an existing course
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":       course.Name,
			"instructor": course.Instructor,
			"category":   course.Category,
			"schedule":   course.Schedule,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse removes a course together with its enrollments and returns
// how many enrollments were removed. The FK cascades as well; deleting them
// explicitly in the same transaction reports the count.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) (int64, error) {
	delEnrollments, enrollmentArgs, err := r.sb.Delete("enrollments").Where(squirrel.Eq{"course_id": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete enrollments query: %w", err)
	}
	delCourse, courseArgs, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete course query: %w", err)
	}

	var removed int64
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, delEnrollments, enrollmentArgs...)
		if err != nil {
			return fmt.Errorf("error deleting course enrollments: %w", err)
		}
		removed = tag.RowsAffected()

		tag, err = tx.Exec(ctx, delCourse, courseArgs...)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name, &course.Instructor, &course.Category, &course.Schedule); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// CourseSearchClauses composes one clause per supplied filter field, ANDed
// together. The free-text query matches any of name, instructor and category.
func CourseSearchClauses(filter models.CourseSearchFilter) squirrel.And {
	f := filter.Normalize()
	clauses := squirrel.And{}

	if f.Query != "" {
		pattern := containsPattern(f.Query)
		clauses = append(clauses, squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.instructor": pattern},
			squirrel.ILike{"c.category": pattern},
		})
	}
	if f.Name != "" {
		clauses = append(clauses, squirrel.ILike{"c.name": containsPattern(f.Name)})
	}
	if f.Instructor != "" {
		clauses = append(clauses, squirrel.ILike{"c.instructor": containsPattern(f.Instructor)})
	}
	if f.Category != "" {
		clauses = append(clauses, squirrel.ILike{"c.category": containsPattern(f.Category)})
	}
	return clauses
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
