package entity

// FailureReason is a machine-readable code for why an analysis stage could
// not proceed. Degenerate clustering input is reported through these values
// on the normal return path rather than as errors, so callers branch on
// data.
type FailureReason string

const (
	// ReasonInvalidInput marks schema violations in the post batch,
	// rejected before any stage runs.
	ReasonInvalidInput FailureReason = "invalid_input"

	// ReasonInsufficientPosts means the corpus has fewer than two posts.
	// Non-fatal: sentiment is still computed.
	ReasonInsufficientPosts FailureReason = "insufficient_posts"

	// ReasonInsufficientVocabulary means too few distinct terms survived
	// preprocessing to build a meaningful feature space. Non-fatal.
	ReasonInsufficientVocabulary FailureReason = "insufficient_vocabulary"

	// ReasonDownstreamUnreachable marks a transport-level failure reaching
	// the remote analysis pipeline.
	ReasonDownstreamUnreachable FailureReason = "downstream_unreachable"

	// ReasonUnexpected covers any uncaught internal fault.
	ReasonUnexpected FailureReason = "unexpected"
)
