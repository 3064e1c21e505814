package classify

import "fmt"

// Verdict is the classification result for a target or a package. It is
// a closed set: every reduction over verdicts handles all four values.
type Verdict int

const (
	Trivial Verdict = iota
	NonTrivial
	Error
	Ambiguous
)

func (v Verdict) String() string {
	switch v {
	case Trivial:
		return "trivial"
	case NonTrivial:
		return "non-trivial"
	case Error:
		return "error"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// MarshalJSON encodes a Verdict as its string form for report output.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}

// ReduceVerdicts folds a set of verdicts into one:
// any non-trivial wins, otherwise any ambiguous, otherwise any error,
// otherwise trivial. A non-trivial sibling masks errors because the
// package is already known interesting; an error is never masked by a
// trivial sibling.
func ReduceVerdicts(verdicts []Verdict) Verdict {
	reduced := Trivial
	for _, v := range verdicts {
		switch v {
		case NonTrivial:
			return NonTrivial
		case Ambiguous:
			reduced = Ambiguous
		case Error:
			if reduced != Ambiguous {
				reduced = Error
			}
		case Trivial:
		}
	}
	return reduced
}
