package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/drip/pkg/types"
)

func sample() types.Recipe {
	return types.Recipe{
		Taps:  []string{"homebrew/cask-fonts"},
		Casks: []string{"kitty"},
		Formulas: []types.Formula{
			{Name: "fish", Postinstall: []types.Postinstall{
				types.Copy{Source: "config.fish", Destination: "/h/.config/fish"},
				types.RunCommand{Command: "fisher update"},
			}},
			{Name: "git"},
		},
	}
}

func TestRecipe_FormulaNames(t *testing.T) {
	assert.Equal(t, []string{"fish", "git"}, sample().FormulaNames())
	assert.Empty(t, types.Recipe{}.FormulaNames())
}

func TestRecipe_IsEmpty(t *testing.T) {
	assert.True(t, types.Recipe{}.IsEmpty())
	assert.False(t, sample().IsEmpty())
	assert.False(t, types.Recipe{Casks: []string{"x"}}.IsEmpty())
}

func TestRecipe_StepCount(t *testing.T) {
	assert.Equal(t, 2, sample().StepCount())
	assert.Equal(t, 0, types.Recipe{}.StepCount())
}

func TestPostinstall_KindAndString(t *testing.T) {
	tests := []struct {
		step types.Postinstall
		kind types.PostinstallKind
		str  string
	}{
		{types.Copy{Source: "a", Destination: "/b"}, types.KindCopy, "cp a /b"},
		{types.Download{URL: "https://x/y", Destination: "/z"}, types.KindDownload, "dl https://x/y /z"},
		{types.Append{Text: "source x", Destination: "/rc"}, types.KindAppend, `echo "source x" /rc`},
		{types.RunCommand{Command: "fisher update"}, types.KindRunCommand, `fish "fisher update"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.step.Kind())
			assert.Equal(t, tt.str, tt.step.String())
		})
	}
}
