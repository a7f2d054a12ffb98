package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tinyjs-go/tinyjs/pkg/tinyjs"
)

// formatScriptError renders a *tinyjs.ScriptError the way a terminal
// user expects a failed run to look: a bold red header naming the error
// category, the message indented underneath, and a source position when
// one is known. Modeled on the teacher pack's color.New(FgRed, Bold)
// header-plus-body convention for CLI error output.
func formatScriptError(err error) string {
	var b strings.Builder
	header := color.New(color.FgRed, color.Bold)
	body := color.New(color.FgRed)
	if noColor {
		header.DisableColor()
		body.DisableColor()
	}

	se, ok := err.(*tinyjs.ScriptError)
	if !ok {
		header.Fprintf(&b, "✗ %s\n", "ERROR")
		body.Fprintf(&b, "   %s\n", err.Error())
		return b.String()
	}

	header.Fprintf(&b, "✗ %s\n", strings.ToUpper(string(se.Category)))
	if se.FileName != "" && se.Line > 0 {
		body.Fprintf(&b, "   %s (%s:%d:%d)\n", se.Message, se.FileName, se.Line, se.Column)
	} else {
		body.Fprintf(&b, "   %s\n", se.Message)
	}
	return b.String()
}

func writeScriptError(w io.Writer, err error) {
	fmt.Fprint(w, formatScriptError(err))
}
