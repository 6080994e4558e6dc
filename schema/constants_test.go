package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExerciseTypeName tests exercise type code translation.
func TestExerciseTypeName(t *testing.T) {
	running := 85
	unknown := 999

	assert.Equal(t, "Running", ExerciseTypeName(&running))
	assert.Equal(t, "Other (999)", ExerciseTypeName(&unknown))
	assert.Equal(t, "Unknown", ExerciseTypeName(nil))
}

// TestGetDefaultHealthspanWeights tests that the default weights cover every
// sub-score and sum to one.
func TestGetDefaultHealthspanWeights(t *testing.T) {
	weights := GetDefaultHealthspanWeights()
	assert.Len(t, weights, len(AllSubScores))

	sum := 0.0
	for _, s := range AllSubScores {
		sum += weights[s]
	}
	assert.InDelta(t, 1.0, sum, 0.001)
}

// TestValidEnums tests membership of the default enum values.
func TestValidEnums(t *testing.T) {
	_, ok := ValidOutputModes[TextOut]
	assert.True(t, ok)
	_, ok = ValidOutputModes[OutputMode("yaml")]
	assert.False(t, ok)

	_, ok = ValidDatabaseBackends[SQLiteBackend]
	assert.True(t, ok)
	_, ok = ValidDatabaseBackends[DatabaseBackend("oracle")]
	assert.False(t, ok)
}
