package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, CodeSinkError, "forms sink")

	assert.Equal(t, "forms sink: dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeSinkError, GetCode(fmt.Errorf("submit: %w", err)))
}

func TestGetCodeDefaultsToServerBusy(t *testing.T) {
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("boom")))
}

func TestIsComparesCodes(t *testing.T) {
	err := Wrapf(errors.New("redis: nil"), CodeNotFound, "draft %s not found", "abc")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrSubmitInProgress))
	assert.True(t, IsNotFound(err))
}

func TestWithDataCopies(t *testing.T) {
	withData := ErrSubmitFailed.WithData(map[string]string{"photoCode": "WS-I-ABCDE"})

	require.NotNil(t, withData.Data)
	assert.Nil(t, ErrSubmitFailed.Data)
	assert.Equal(t, ErrSubmitFailed.Msg, withData.Msg)
}
