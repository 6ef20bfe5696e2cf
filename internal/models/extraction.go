package models

// ExtractionResult is the outcome of running the document pipeline. RawOutput
// carries the last raw model markup as an explicit diagnostics side channel so
// the debug endpoint never needs shared mutable state.
type ExtractionResult struct {
	Response   string `json:"response"`    // Final rendered display string
	Method     string `json:"method"`      // Processing method label shown in the statistics footer
	RawOutput  string `json:"raw_output"`  // Last raw model output, for diagnostics
	Unreadable bool   `json:"unreadable"`  // True when the fallback chain was exhausted
}
