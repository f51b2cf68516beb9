package typeinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMinimumVersion(t *testing.T) {
	tests := []struct {
		spec   string
		want   PythonVersion
		wantOK bool
	}{
		{">=3.10", PythonVersion{3, 10}, true},
		{">=3.8, <3.12", PythonVersion{3, 8}, true},
		{"~=3.11.0", PythonVersion{3, 11}, true},
		{"", PythonVersion{}, false},
		{">=3", PythonVersion{3, 0}, true},
		{"==3.9.*", PythonVersion{3, 9}, true},
		{">=v3.12", PythonVersion{3, 12}, true},
		{"===3.10", PythonVersion{3, 10}, true},
		{">=3.9rc1", PythonVersion{3, 9}, true},
		{">=3.8 >=3.10", PythonVersion{3, 10}, true},
		{"<4", PythonVersion{}, false},
		{">=three", PythonVersion{}, false},
		{">=3.x, >=3.7", PythonVersion{3, 7}, true},
		{">=300.1", PythonVersion{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, ok := ParseMinimumVersion(tt.spec)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want SelfImportStrategy
	}{
		{"3.11 uses typing", ">=3.11", SelfFromTyping},
		{"minimum of a range below 3.11", ">=3.8, <3.12", SelfFromTypingExtensions},
		{"no constraint defaults to typing", "", SelfFromTyping},
		{"unparseable defaults to typing", "<3.12", SelfFromTyping},
		{"3.10 uses typing_extensions", ">=3.10", SelfFromTypingExtensions},
		{"major 4 uses typing", ">=4.0", SelfFromTyping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrategyFor(tt.spec))
		})
	}
}

func TestSelfResolvesThroughStrategy(t *testing.T) {
	self := Self()
	assert.True(t, self.IsSelf())
	assert.Equal(t, "Self", self.Name)

	refs := self.Imports.Sorted()
	if assert.Len(t, refs, 1) {
		assert.Equal(t, "typing", refs[0].Module.Resolve("pkg", SelfFromTyping))
		assert.Equal(t, "typing_extensions", refs[0].Module.Resolve("pkg", SelfFromTypingExtensions))
	}
	assert.Equal(t, "typing_extensions.Self", SelfFromTypingExtensions.String())
}
