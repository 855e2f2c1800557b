package spright

import (
	"fmt"
	"io"

	"github.com/esimov/spright/utils"
)

// Warning is one non-fatal diagnostic raised against a specific line of
// the project file that produced the offending sprite or output.
type Warning struct {
	Message string
	Line    int
}

// Diagnostics collects warnings raised during a pack run without
// aborting it, per the "pack failures are recovered locally" policy.
type Diagnostics struct {
	Warnings []Warning
}

// Warnf records a formatted warning against line.
func (d *Diagnostics) Warnf(line int, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	})
}

// HasWarnings reports whether any warning was recorded.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Fprint renders every warning to w, colorized with the same ANSI
// decoration the CLI uses for status/error messages.
func (d *Diagnostics) Fprint(w io.Writer) {
	for _, warn := range d.Warnings {
		fmt.Fprintf(w, "%s %s\n",
			utils.DecorateText("⚠ warning", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("line %d: %s", warn.Line, warn.Message), utils.DefaultMessage),
		)
	}
}
