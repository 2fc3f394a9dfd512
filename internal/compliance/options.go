// Package compliance evaluates a decoded driver-activity timeline against
// EU Regulation 561/2006's driving/rest rules, using the same XxxOptions
// receiver configuration pattern and doc-comment density as the decode
// packages. Findings are returned as data; no function here returns an
// error.
package compliance

// EvaluateOptions configures a compliance run. The zero value is valid
// and applies the thresholds as literally stated in Reg. 561/2006.
type EvaluateOptions struct{}
