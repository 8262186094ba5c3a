package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

var schools = []models.School{
	{ID: 1, Name: "Lusaka Primary School", Town: "Lusaka", Province: "Lusaka"},
	{ID: 2, Name: "Kabulonga Boys Secondary", Town: "Lusaka", Province: "Lusaka"},
	{ID: 3, Name: "Roma Girls Secondary School", Town: "Lusaka", Province: "Lusaka"},
	{ID: 4, Name: "Roma", Town: "Ndola", Province: "Copperbelt"},
	{ID: 5, Name: "St. Mary's High", Town: "Kabwe", Province: "Central"},
}

func TestFilter(t *testing.T) {
	assert.Len(t, Filter(schools, ""), len(schools))
	assert.Len(t, Filter(schools, "  "), len(schools))

	byName := Filter(schools, "SECONDARY")
	require.Len(t, byName, 2)
	assert.Equal(t, int64(2), byName[0].ID)

	byTown := Filter(schools, "ndola")
	require.Len(t, byTown, 1)
	assert.Equal(t, int64(4), byTown[0].ID)

	byProvince := Filter(schools, "copper")
	require.Len(t, byProvince, 1)

	assert.Empty(t, Filter(schools, "Livingstone"))
}

func TestSuggestExactMatchWins(t *testing.T) {
	// "roma" is also a partial match for school 3, which comes first.
	got := Suggest(schools, "ROMA")
	require.NotNil(t, got)
	assert.Equal(t, int64(4), got.ID)

	got = Suggest(schools, " lusaka primary school ")
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestSuggestPartial(t *testing.T) {
	got := Suggest(schools, "kabulonga")
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)

	got = Suggest(schools, "st mary")
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.ID)
}

func TestSuggestSimilarity(t *testing.T) {
	got := Suggest(schools, "Kabulonga Boys Secondery")
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
}

func TestSuggestBelowThresholdIsNil(t *testing.T) {
	assert.Nil(t, Suggest(schools, "zzzzzzzz"))
	assert.Nil(t, Suggest(schools, ""))
	assert.Nil(t, Suggest(nil, "Roma"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("abc", "abc"))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 1-3.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.Less(t, Similarity("roma", "zzzzzzzz"), MinSimilarity)
}
