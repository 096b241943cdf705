package ui_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/drip/pkg/bundle"
	"github.com/arthur-debert/drip/pkg/ui"
)

func TestWriteData(t *testing.T) {
	v := struct {
		Missing []string `json:"missing" yaml:"missing"`
	}{Missing: []string{"a"}}

	var buf bytes.Buffer
	ok, err := ui.WriteData(&buf, ui.FormatJSON, v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"missing":["a"]}`, buf.String())

	buf.Reset()
	ok, err = ui.WriteData(&buf, ui.FormatYAML, v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "missing:\n  - a\n", buf.String())

	buf.Reset()
	ok, err = ui.WriteData(&buf, ui.FormatText, v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, buf.String())
}

func TestProgress_Text(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewProgress(&buf, ui.FormatText, 3)

	tap := bundle.Step{Kind: bundle.StepTap, Name: "t1"}
	formula := bundle.Step{Kind: bundle.StepFormula, Name: "git"}

	p.Started(tap)
	p.Finished(tap, nil)
	p.Started(formula)
	p.Finished(formula, stderrors.New("boom"))

	assert.Equal(t, "[1/3] tap t1\n[2/3] formula git\nfailed: [2/3] formula git\n", buf.String())
}
