package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(8080))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(-1))
	assert.Error(t, ValidatePort(65536))
}

func TestValidateNonEmpty(t *testing.T) {
	assert.NoError(t, ValidateNonEmpty("value", "field"))
	assert.Error(t, ValidateNonEmpty("", "field"))
	assert.Error(t, ValidateNonEmpty("   ", "field"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("john@example.com"))
	assert.NoError(t, ValidateEmail("john.doe+tag@sub.example.org"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("John Doe <john@example.com>"))
}

func TestValidatePositiveInt(t *testing.T) {
	assert.NoError(t, ValidatePositiveInt(1, "field"))
	assert.Error(t, ValidatePositiveInt(0, "field"))
	assert.Error(t, ValidatePositiveInt(-5, "field"))
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		assert.NoError(t, ValidateLogLevel(level), level)
	}
	assert.Error(t, ValidateLogLevel("verbose"))
	assert.Error(t, ValidateLogLevel(""))
}

func TestValidateLogFormat(t *testing.T) {
	assert.NoError(t, ValidateLogFormat("json"))
	assert.NoError(t, ValidateLogFormat("console"))
	assert.Error(t, ValidateLogFormat("logfmt"))
}
