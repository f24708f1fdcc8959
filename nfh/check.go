package nfh

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CheckMembership decides whether the hyperword s satisfies the k-ary
// relation of a under its quantifier prefix. Track i is bound by a.Alpha()[i].
//
// Exists stops at the first accepted branch and returns its witnesses.
// ForAll stops at the first rejected branch and otherwise returns the
// witnesses of every branch. A branch whose search timed out makes the
// result Inconclusive unless another branch settles it.
func CheckMembership(ctx context.Context, a *NFH, s *Hyperword, opts ...Option) Outcome {
	o := buildOptions(opts)
	ctx, span := o.tracer.Start(ctx, "nfh.check", trace.WithAttributes(
		attribute.Int("nfh.k", a.K()),
		attribute.Int("nfh.hyperword.size", s.Len()),
	))
	defer span.End()

	ev := &evaluator{
		a:     a,
		alpha: a.Alpha(),
		words: s.Words(),
		opts:  o,
		raw:   opts,
	}

	var out Outcome
	if len(ev.words) == 1 {
		// Every track must take the only word, whatever the quantifiers.
		asg := make(Assignment, a.K())
		for i := range asg {
			asg[i] = ev.words[0]
		}
		out = ev.leaf(ctx, asg)
	} else {
		out = ev.bind(ctx, 0, make(map[int]string, a.K()))
	}

	span.SetAttributes(
		attribute.String("nfh.verdict", out.Verdict.String()),
		attribute.Int("nfh.witnesses", len(out.Witnesses)),
	)
	o.logger.Info("membership checked",
		zap.Stringer("hyperword", s),
		zap.Stringer("verdict", out.Verdict),
		zap.Int("witnesses", len(out.Witnesses)),
		zap.Int("undecided", len(out.Undecided)),
	)
	return out
}

type evaluator struct {
	a     *NFH
	alpha []Quantifier
	words []string
	opts  searchOptions
	raw   []Option
}

// bind instantiates the quantifier of track i. partial is never modified;
// each branch extends its own copy.
func (ev *evaluator) bind(ctx context.Context, i int, partial map[int]string) Outcome {
	if i == len(ev.alpha) {
		asg := make(Assignment, len(ev.alpha))
		for t := range asg {
			asg[t] = partial[t]
		}
		return ev.leaf(ctx, asg)
	}

	q := ev.alpha[i]
	switch q {
	case Exists:
		if len(ev.words) == 0 {
			return rejectedOutcome()
		}
		var undecided []Assignment
		for _, w := range ev.words {
			ev.opts.metrics.observeBranch(q)
			res := ev.bind(ctx, i+1, extend(partial, i, w))
			switch res.Verdict {
			case Accepted:
				return res
			case Inconclusive:
				undecided = append(undecided, res.Undecided...)
			}
		}
		if len(undecided) > 0 {
			return inconclusiveOutcome(undecided)
		}
		return rejectedOutcome()

	case ForAll:
		if len(ev.words) == 0 {
			return acceptedOutcome(nil)
		}
		var witnesses []*Run
		var undecided []Assignment
		for _, w := range ev.words {
			ev.opts.metrics.observeBranch(q)
			res := ev.bind(ctx, i+1, extend(partial, i, w))
			switch res.Verdict {
			case Rejected:
				return rejectedOutcome()
			case Inconclusive:
				undecided = append(undecided, res.Undecided...)
			case Accepted:
				witnesses = append(witnesses, res.Witnesses...)
			}
		}
		if len(undecided) > 0 {
			return inconclusiveOutcome(undecided)
		}
		return acceptedOutcome(witnesses)
	}
	// New rejects invalid quantifiers, so this is unreachable for a built NFH.
	return rejectedOutcome()
}

// leaf runs one search over a complete assignment.
func (ev *evaluator) leaf(ctx context.Context, asg Assignment) Outcome {
	m, err := NewRunManager(ev.a, asg, ev.raw...)
	if err != nil {
		ev.opts.logger.Error("run manager rejected assignment", zap.Stringer("assignment", asg), zap.Error(err))
		return rejectedOutcome()
	}
	res := m.Search(ctx)
	switch res.Verdict {
	case Accepted:
		return acceptedOutcome([]*Run{res.Run})
	case Inconclusive:
		ev.opts.logger.Warn("run search timed out", zap.Stringer("assignment", asg), zap.Duration("elapsed", res.Stats.Elapsed))
		return inconclusiveOutcome([]Assignment{asg})
	default:
		return rejectedOutcome()
	}
}

func extend(partial map[int]string, track int, w string) map[int]string {
	next := make(map[int]string, len(partial)+1)
	for k, v := range partial {
		next[k] = v
	}
	next[track] = w
	return next
}
