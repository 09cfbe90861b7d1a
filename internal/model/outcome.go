package model

// OutcomeKind identifies the result of classifying one morgue.
type OutcomeKind int

// Classification outcome kinds. Exactly one outcome is produced per URL
// per parse attempt; outcomes are terminal and never retried within a run.
const (
	// KindWinner marks a morgue that represents a winning run. The
	// outcome carries the extracted BuildRecord.
	KindWinner OutcomeKind = iota

	// KindLoser marks a structurally valid morgue for a run that did not
	// win. This is informational, not an error.
	KindLoser

	// KindParseError marks text that did not match the expected morgue
	// shape. The outcome carries a reason string.
	KindParseError
)

// String returns the kind name used in logs.
func (k OutcomeKind) String() string {
	switch k {
	case KindWinner:
		return "winner"
	case KindLoser:
		return "loser"
	case KindParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of classifying one morgue. Callers switch
// on Kind rather than catching typed errors: a loss and a malformed file
// are expected states of the input, not failures of the classifier.
type Outcome struct {
	// Kind selects which variant this outcome is.
	Kind OutcomeKind

	// Record is the extracted build. Set only when Kind is KindWinner.
	Record *BuildRecord

	// Reason describes why parsing failed. Set only when Kind is
	// KindParseError.
	Reason string
}

// Winner builds a winning outcome carrying the extracted record.
func Winner(r *BuildRecord) Outcome {
	return Outcome{Kind: KindWinner, Record: r}
}

// Loser builds the non-winning outcome.
func Loser() Outcome {
	return Outcome{Kind: KindLoser}
}

// ParseFailure builds a parse-error outcome with the given reason.
func ParseFailure(reason string) Outcome {
	return Outcome{Kind: KindParseError, Reason: reason}
}
