package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New("not storable")
	cause := fmt.Errorf("boom")

	wrapped := sentinel.Wrap(cause)
	require.NotSame(t, sentinel, wrapped)
	assert.Nil(t, sentinel.Unwrap(), "sentinel must not be mutated")

	assert.True(t, Is(wrapped, sentinel))
	assert.True(t, Is(wrapped, cause))
	assert.Same(t, sentinel, wrapped.Kind())
	assert.Equal(t, "not storable: boom", wrapped.Error())

	detailed := sentinel.WrapMessage("field %q", "title").Wrap(cause)
	assert.True(t, Is(detailed, sentinel))
	assert.Equal(t, `not storable: field "title": boom`, detailed.Error())

	other := New("not storable")
	assert.False(t, Is(wrapped, other), "sentinels with equal messages are distinct kinds")
}

func TestWrapWithLog(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	sentinel := New("store failure")

	err := sentinel.WrapWithLog(zap.New(core), fmt.Errorf("disk"), zap.String("path", "a/b"))
	assert.True(t, Is(err, sentinel))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "store failure", entry.Message)
	assert.Equal(t, "a/b", entry.ContextMap()["path"])
}
