// Package window checks a requested clip time range against the source duration.
package window

// Result is the outcome of validating a time window
type Result int

const (
	Valid Result = iota
	NegativeStart
	EndBeforeStart
	EndExceedsDuration
)

// Reason returns the stable code reported to clients for a rejected window
func (r Result) Reason() string {
	switch r {
	case NegativeStart:
		return "negative_start"
	case EndBeforeStart:
		return "end_before_start"
	case EndExceedsDuration:
		return "end_exceeds_duration"
	default:
		return ""
	}
}

// Field names the request field at fault
func (r Result) Field() string {
	switch r {
	case NegativeStart:
		return "start_time"
	case EndBeforeStart, EndExceedsDuration:
		return "end_time"
	default:
		return ""
	}
}

// Message is a human readable description of the result
func (r Result) Message() string {
	switch r {
	case NegativeStart:
		return "start time must not be negative"
	case EndBeforeStart:
		return "end time must be after start time"
	case EndExceedsDuration:
		return "end time exceeds video duration"
	default:
		return "valid"
	}
}

func (r Result) String() string {
	if r == Valid {
		return "valid"
	}
	return r.Reason()
}

// Validate checks start and an optional end (seconds) against duration.
// Checks run in a fixed order and the first failure wins. A start past
// the duration is accepted while end is open.
func Validate(start float64, end *float64, duration float64) Result {
	if start < 0 {
		return NegativeStart
	}
	if end != nil && *end <= start {
		return EndBeforeStart
	}
	if end != nil && *end > duration {
		return EndExceedsDuration
	}
	return Valid
}
