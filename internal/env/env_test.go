package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Production, Parse("production"))
	assert.Equal(t, Production, Parse(" PROD "))
	assert.Equal(t, Development, Parse("development"))
	assert.Equal(t, Development, Parse(""))
	assert.Equal(t, Development, Parse("staging"))
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SAMPLE_ENV", "production")
	assert.True(t, FromEnv().IsProduction())

	t.Setenv("SAMPLE_ENV", "")
	assert.False(t, FromEnv().IsProduction())
}
