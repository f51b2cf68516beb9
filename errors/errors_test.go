package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "run stubgen generate")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "run stubgen generate", hints[0])
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"unregistered type", Wrapf(ErrUnregisteredType, "id %s", "pkg.Foo"), IsUnregisteredType, true},
		{"duplicate via constructor", NewDuplicatef("class %s registered twice", "Foo"), IsDuplicate, true},
		{"out of date", Wrap(ErrOutOfDate, "2 files differ"), IsOutOfDate, true},
		{"nil is never a sentinel", nil, IsDuplicate, false},
		{"unrelated error", New("boom"), IsUnregisteredType, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestConstructorsKeepMessage(t *testing.T) {
	err := NewInvalidManifestf("entry %d: missing name", 3)
	assert.True(t, Is(err, ErrInvalidManifest))
	assert.Contains(t, err.Error(), "entry 3: missing name")

	err = NewInvalidDescriptorf("variable %q has no type", "X")
	assert.True(t, Is(err, ErrInvalidDescriptor))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func ExampleWrap() {
	err := Wrap(ErrUnregisteredType, "pkg.Widget")
	fmt.Println(err)
	// Output: pkg.Widget: methods registered for unknown type
}
