package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/app/repositories/memory"
)

func TestCreateDemoCourses_FillsEmptyCatalogueOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	created, err := CreateDemoCourses(ctx, store, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, len(DemoCourses), created)

	created, err = CreateDemoCourses(ctx, store, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, created)

	all, err := store.GetAllCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(DemoCourses))
}

func TestCreateDemoCourses_SkipsPopulatedCatalogue(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.CreateCourse(ctx, &models.Course{Name: "Existing", Instructor: "X", Category: "Y", Schedule: "Z"})
	require.NoError(t, err)

	created, err := CreateDemoCourses(ctx, store, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, created)
}
