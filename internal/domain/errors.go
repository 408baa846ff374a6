package domain

import "fmt"

// FetchFailure marks a failed market-data call (transport error or non-2xx
// status). The refresh cycle degrades to an empty snapshot instead of
// propagating it as fatal.
type FetchFailure struct {
	Cause error
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("market data fetch failed: %v", e.Cause)
}

func (e *FetchFailure) Unwrap() error {
	return e.Cause
}

// InsightFailure marks a failed or malformed insight-service response. The
// caller substitutes a placeholder message.
type InsightFailure struct {
	Cause error
}

func (e *InsightFailure) Error() string {
	return fmt.Sprintf("insight request failed: %v", e.Cause)
}

func (e *InsightFailure) Unwrap() error {
	return e.Cause
}
