package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistration(t *testing.T) {
	// This is a basic test to ensure no panic on import
	// Since metrics are global, we can't easily test registration without mocking

	// Just assert that the variables are not nil
	assert.NotNil(t, QueriesGenerated)
	assert.NotNil(t, FiltersRendered)
	assert.NotNil(t, RenderFailures)
	assert.NotNil(t, DuplicateQueries)
	assert.NotNil(t, GenerationDuration)
}
