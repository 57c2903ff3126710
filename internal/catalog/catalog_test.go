package catalog_test

import (
	"testing"

	"github.com/raphaelgruber/realapps-go/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjects(t *testing.T) {
	subjects := catalog.Subjects()
	require.Len(t, subjects, 10)
	assert.Equal(t, "Math", subjects[0])
	assert.Contains(t, subjects, "Environmental Science")
	assert.Equal(t, "Economics", subjects[len(subjects)-1])
}

func TestApplicationsMath(t *testing.T) {
	apps, ok := catalog.Applications("Math")
	require.True(t, ok)
	assert.Equal(t, []string{
		"Cryptography algorithms (like RSA) used in secure internet communications",
		"Statistical analysis in weather forecasting and market prediction",
		"Algorithm optimization in computer science for faster processing",
		"Geometry in architectural design and urban planning",
		"Probability theory in insurance risk assessment",
	}, apps)
}

func TestApplicationsEverySubjectHasFive(t *testing.T) {
	for _, subject := range catalog.Subjects() {
		apps, ok := catalog.Applications(subject)
		require.True(t, ok, "subject %s", subject)
		assert.Len(t, apps, 5, "subject %s", subject)
	}
}

func TestApplicationsUnknownSubject(t *testing.T) {
	apps, ok := catalog.Applications("Underwater Basket Weaving")
	assert.False(t, ok)
	assert.Nil(t, apps)
}

func TestApplicationsReturnsCopy(t *testing.T) {
	apps, ok := catalog.Applications("Math")
	require.True(t, ok)
	apps[0] = "mutated"

	again, _ := catalog.Applications("Math")
	assert.NotEqual(t, "mutated", again[0])
}
