package chart

import "fmt"

// ProfileMismatchError reports a profile field that the bundles cannot
// supply, or supply out of step with the price series.
type ProfileMismatchError struct {
	Profile string
	Field   string
	Reason  string
}

func (e *ProfileMismatchError) Error() string {
	return fmt.Sprintf("profile %q: field %q: %s", e.Profile, e.Field, e.Reason)
}

// LayoutOverflowError reports pane heights that do not stack to exactly
// 100% of the chart.
type LayoutOverflowError struct {
	Profile string
	Total   float64
	Reason  string
}

func (e *LayoutOverflowError) Error() string {
	return fmt.Sprintf("profile %q: pane layout %g%%: %s", e.Profile, e.Total, e.Reason)
}
