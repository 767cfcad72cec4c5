package pursuit

import (
	"fmt"
	"io"
)

// reporter emits the optional progress report: a header block with the
// problem size and tolerances, one line per iteration, and a trailer with
// the exit message and product counts. Purely presentational; a run's
// observable results never depend on the level or writer.
type reporter struct {
	level LogLevel
	w     io.Writer
}

func (rp reporter) header(m, n int, lambda float64, cfg Options) {
	if rp.level < LogSummary {
		return
	}
	fmt.Fprintf(rp.w, "pursuit: m=%d n=%d lambda=%g itnMax=%d actMax=%d optTol=%g pivTol=%g\n",
		m, n, lambda, cfg.ItnMax, cfg.ActMax, cfg.OptTol, cfg.PivTol)
	if rp.level >= LogIter {
		fmt.Fprintf(rp.w, "%5s %8s %14s %14s %14s\n", "itn", "col", "zmax", "resid", "xnorm1")
	}
}

func (rp reporter) line(itn, col int, zmax, rnorm, xnorm1 float64) {
	if rp.level < LogIter {
		return
	}
	fmt.Fprintf(rp.w, "%5d %8d %14.6e %14.6e %14.6e\n", itn, col, zmax, rnorm, xnorm1)
}

func (rp reporter) trailer(res Result) {
	if rp.level < LogSummary {
		return
	}
	fmt.Fprintf(rp.w, "pursuit: exit: %s (itns=%d forward=%d adjoint=%d in %s)\n",
		res.Reason, res.Iterations, res.ForwardProducts, res.AdjointProducts, res.Runtime)
}
