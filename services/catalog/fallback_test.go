package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"vortex/models"
)

func TestFallbackTitlesCoverBothKinds(t *testing.T) {
	all := FallbackTitles(models.KindMovie, true)
	require.NotEmpty(t, all)

	movies := FallbackTitles(models.KindMovie, false)
	series := FallbackTitles(models.KindSeries, false)
	require.NotEmpty(t, movies)
	require.NotEmpty(t, series)
	require.Len(t, all, len(movies)+len(series))

	for _, item := range movies {
		require.Equal(t, models.KindMovie, item.Kind)
	}
	for _, item := range series {
		require.Equal(t, models.KindSeries, item.Kind)
	}
}

func TestFallbackTitlesAreFullyPopulated(t *testing.T) {
	for _, item := range FallbackTitles(models.KindMovie, true) {
		require.NotEmpty(t, item.ID, "title %q", item.Name)
		require.True(t, strings.HasPrefix(item.IMDBID, "tt"), "title %q has IMDb id %q", item.Name, item.IMDBID)
		require.NotZero(t, item.TMDBID, "title %q", item.Name)
		require.NotEmpty(t, item.PosterURL, "title %q", item.Name)
		require.NotZero(t, item.Year, "title %q", item.Name)
	}
}

func TestFallbackTitlesReturnsCopy(t *testing.T) {
	first := FallbackTitles(models.KindMovie, true)
	first[0].Name = "mutated"

	second := FallbackTitles(models.KindMovie, true)
	require.NotEqual(t, "mutated", second[0].Name)
}
