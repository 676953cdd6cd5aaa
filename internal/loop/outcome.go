package loop

import "fmt"

// Outcome is the final result of a loop run.
type Outcome struct {
	failed bool
	code   int
}

// Interrupted is returned when the loop's context is cancelled.
var Interrupted = Failure(130)

// Success returns the successful outcome.
func Success() Outcome {
	return Outcome{}
}

// Failure returns a failed outcome carrying code.
func Failure(code int) Outcome {
	return Outcome{failed: true, code: code}
}

// IsSuccess reports whether o is the success outcome.
func (o Outcome) IsSuccess() bool {
	return !o.failed
}

// Code returns the failure code, or zero for success.
func (o Outcome) Code() int {
	return o.code
}

// ExitStatus maps the outcome to a process exit status.
func (o Outcome) ExitStatus() int {
	if !o.failed {
		return 0
	}
	return o.code
}

func (o Outcome) String() string {
	if !o.failed {
		return "success"
	}
	return fmt.Sprintf("failure(%d)", o.code)
}
