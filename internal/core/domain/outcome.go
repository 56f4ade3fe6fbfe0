package domain

// OutcomeKind classifies how a compile chain ended.
type OutcomeKind string

const (
	// OutcomeIgnored means the triggering document is not a source document.
	OutcomeIgnored OutcomeKind = "ignored"
	// OutcomeNoDirective means the last document in the chain had no out directive.
	OutcomeNoDirective OutcomeKind = "no-directive"
	// OutcomeSamePath means the destination resolved onto the source itself.
	OutcomeSamePath OutcomeKind = "same-path"
	// OutcomeRendered means the compiled artifact was written.
	OutcomeRendered OutcomeKind = "rendered"
	// OutcomeFailed means the chain ended with an error.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome describes the result of a top-level compile.
type Outcome struct {
	JobID       string
	Kind        OutcomeKind
	Chain       []string
	Destination string
}
