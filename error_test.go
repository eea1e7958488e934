package paprika_test

import (
	"errors"
	"testing"

	// Packages
	paprika "github.com/mutablelogic/go-paprika"
	assert "github.com/stretchr/testify/assert"
)

func Test_error_001(t *testing.T) {
	assert := assert.New(t)

	err := paprika.ErrBadParameter.With("Arguments are required")
	assert.ErrorIs(err, paprika.ErrBadParameter)
	assert.Equal("bad parameter: Arguments are required", err.Error())
}

func Test_error_002(t *testing.T) {
	assert := assert.New(t)

	err := paprika.ErrNotFound.Withf("Unknown tool: %s", "get_nothing")
	assert.ErrorIs(err, paprika.ErrNotFound)
	assert.Contains(err.Error(), "Unknown tool: get_nothing")
}

func Test_error_003(t *testing.T) {
	assert := assert.New(t)

	cause := errors.New("connection refused")
	err := paprika.ErrUpstream.Wrap(cause)
	assert.ErrorIs(err, paprika.ErrUpstream)
	assert.ErrorIs(err, cause)
	assert.Equal("upstream error: connection refused", err.Error())
	assert.NoError(paprika.ErrUpstream.Wrap(nil))
}

func Test_error_004(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("error code 99", paprika.Err(99).Error())
}
