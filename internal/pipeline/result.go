package pipeline

// Outcome classifies what happened to one catalog item.
type Outcome int

const (
	// OutcomeSkipped means the item needed no work: already published,
	// no references, or no qualifying segments.
	OutcomeSkipped Outcome = iota
	// OutcomeFailed means a stage failed; the item is retried on a
	// later pass.
	OutcomeFailed
	// OutcomePublished means a compilation went live this run.
	OutcomePublished
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomePublished:
		return "published"
	default:
		return "unknown"
	}
}

// Result reports the terminal state of one processed item.
type Result struct {
	VideoID        string
	Outcome        Outcome
	PublishedID    string
	PublishedTitle string
	// Reason explains a skip in one phrase.
	Reason string
	// Err carries the failure for OutcomeFailed.
	Err error
}
