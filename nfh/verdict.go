package nfh

import "fmt"

// Verdict is the three-valued result of a search or membership check.
// A search that runs out of time is Inconclusive, never Rejected.
type Verdict uint8

const (
	Accepted Verdict = iota + 1
	Rejected
	Inconclusive
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Inconclusive:
		return "inconclusive"
	default:
		return fmt.Sprintf("Verdict(%d)", uint8(v))
	}
}

// Outcome is the result of CheckMembership.
//
// Witnesses is only set when Verdict is Accepted: one run for an Exists
// choice, one per satisfying branch under ForAll. Undecided is only set when
// Verdict is Inconclusive and lists the assignments whose search timed out.
type Outcome struct {
	Verdict   Verdict
	Witnesses []*Run
	Undecided []Assignment
}

func acceptedOutcome(ws []*Run) Outcome { return Outcome{Verdict: Accepted, Witnesses: ws} }
func rejectedOutcome() Outcome { return Outcome{Verdict: Rejected} }
func inconclusiveOutcome(u []Assignment) Outcome { return Outcome{Verdict: Inconclusive, Undecided: u} }

// Accepted reports whether the verdict is Accepted.
func (o Outcome) Accepted() bool { return o.Verdict == Accepted }

func (o Outcome) String() string {
	switch o.Verdict {
	case Accepted:
		return fmt.Sprintf("accepted (%d witness(es))", len(o.Witnesses))
	case Inconclusive:
		return fmt.Sprintf("inconclusive (%d undecided assignment(s))", len(o.Undecided))
	default:
		return o.Verdict.String()
	}
}
