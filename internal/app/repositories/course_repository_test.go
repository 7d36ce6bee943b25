package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/courseservice/internal/app/models"
)

func TestCourseSearchClauses_OnlySuppliedFields(t *testing.T) {
	sql, args, err := CourseSearchClauses(models.CourseSearchFilter{Category: " Math "}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "(c.category ILIKE ?)", sql)
	assert.Equal(t, []interface{}{"%Math%"}, args)
}

func TestCourseSearchClauses_QueryExpandsToDisjunction(t *testing.T) {
	sql, args, err := CourseSearchClauses(models.CourseSearchFilter{
		Query:      "py",
		Instructor: "Sara",
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "((c.name ILIKE ? OR c.instructor ILIKE ? OR c.category ILIKE ?) AND c.instructor ILIKE ?)", sql)
	assert.Equal(t, []interface{}{"%py%", "%py%", "%py%", "%Sara%"}, args)
}

func TestCourseSearchClauses_EscapesLikeMetacharacters(t *testing.T) {
	_, args, err := CourseSearchClauses(models.CourseSearchFilter{Name: `100%_done\`}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, []interface{}{`%100\%\_done\\%`}, args)
}

func TestCourseSearchClauses_SelectStatement(t *testing.T) {
	sql, _, err := statementBuilder().Select(courseColumns...).
		From("courses c").
		Where(CourseSearchClauses(models.CourseSearchFilter{Name: "a", Category: "b"})).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT c.id, c.name, c.instructor, c.category, c.schedule FROM courses c WHERE (c.name ILIKE $1 AND c.category ILIKE $2)",
		sql)
}
