package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/arthur-debert/drip/pkg/recipe"
	"github.com/arthur-debert/drip/pkg/ui"
)

// PrintError writes err for a human. Recipe parse errors are shown with their
// source context; other drip errors drop the [CODE] prefix.
func PrintError(w io.Writer, err error) {
	if pe, ok := recipe.AsParseError(err); ok {
		_, _ = fmt.Fprint(w, ui.Render("Error", "Error:")+" "+pe.Render())
		return
	}
	_, _ = fmt.Fprintln(w, ui.Render("Error", "Error:")+" "+Describe(err))
}

// Describe renders err without error codes
func Describe(err error) string {
	var de *errors.DripError
	if !stderrors.As(err, &de) {
		return err.Error()
	}

	msg := de.Message
	if de.Wrapped != nil {
		msg += ": " + Describe(de.Wrapped)
	}
	return strings.TrimRight(msg, "\n")
}
