package recipe

import (
	stderrors "errors"
	"path/filepath"

	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/arthur-debert/drip/pkg/logging"
	"github.com/arthur-debert/drip/pkg/paths"
	"github.com/arthur-debert/drip/pkg/types"
)

// Parse decodes a recipe document. fileName is only used in diagnostics.
// Failures are returned as *ParseError.
func Parse(fileName string, input []byte) (types.Recipe, error) {
	src := string(input)

	nodes, err := parseDocument(src)
	if err != nil {
		var se *syntaxError
		if stderrors.As(err, &se) {
			return types.Recipe{}, &ParseError{
				File:        fileName,
				Source:      src,
				Diagnostics: []Diagnostic{{Line: se.pos.Line, Column: se.pos.Column, Message: se.msg}},
			}
		}
		return types.Recipe{}, err
	}

	d := &decoder{}
	r := d.decode(nodes)
	if len(d.diags) > 0 {
		return types.Recipe{}, &ParseError{File: fileName, Source: src, Diagnostics: d.diags}
	}
	return r, nil
}

// Load reads and parses the recipe file in dir. An empty fileName means
// recipe.kdl. Read failures carry ErrRecipeRead; parse failures carry
// ErrRecipeParse and wrap the *ParseError.
func Load(fsys types.FS, dir, fileName string) (types.Recipe, error) {
	logger := logging.GetLogger("recipe")
	path := paths.RecipeFile(dir, fileName)

	logger.Debug().Str("path", path).Msg("Reading recipe")
	data, err := fsys.ReadFile(path)
	if err != nil {
		return types.Recipe{}, errors.Wrapf(err, errors.ErrRecipeRead, "cannot read recipe %s", path).
			WithDetail("path", path)
	}

	r, err := Parse(filepath.Base(path), data)
	if err != nil {
		return types.Recipe{}, errors.Wrap(err, errors.ErrRecipeParse, "invalid recipe").
			WithDetail("path", path)
	}

	logger.Debug().
		Int("taps", len(r.Taps)).
		Int("formulas", len(r.Formulas)).
		Int("casks", len(r.Casks)).
		Msg("Recipe loaded")
	return r, nil
}

// AsParseError extracts the diagnostics from an error returned by Load or Parse
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
