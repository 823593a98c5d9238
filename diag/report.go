package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter prints the stage-tagged diagnostic the way the teacher's
// main.go oops(stage, err) does, colorized through fatih/color the way
// the teacher colorizes its own formatted terminal output.
type Reporter struct {
	w        io.Writer
	errLabel *color.Color
	warnLabel *color.Color
}

func NewReporter(w io.Writer, noColor bool) *Reporter {
	errLabel := color.New(color.FgRed, color.Bold)
	warnLabel := color.New(color.FgYellow, color.Bold)
	if noColor {
		errLabel.DisableColor()
		warnLabel.DisableColor()
	}
	return &Reporter{w: w, errLabel: errLabel, warnLabel: warnLabel}
}

// Fatal prints "ERROR [stage] message" and lets the caller decide the exit
// code, mirroring the teacher's oops which does both itself; main.go keeps
// that coupling at the call site instead of here so tests can call Fatal
// without the process exiting. An error not built by Errorf is tagged with
// its KindOf kind instead of a stage.
func (r *Reporter) Fatal(err error) {
	r.errLabel.Fprint(r.w, "ERROR")
	if _, ok := err.(*stageError); ok {
		fmt.Fprintf(r.w, " %s\n", err)
		return
	}
	fmt.Fprintf(r.w, " [%s] %s\n", KindOf(err).String(), err)
}

func (r *Reporter) Warn(stage string, format string, args ...interface{}) {
	r.warnLabel.Fprint(r.w, "WARN")
	fmt.Fprintf(r.w, " [%s] %s\n", stage, fmt.Sprintf(format, args...))
}
