package tachograph

import "github.com/haulageworks/tachograph-go/internal/compliance"

// WeekSummary is the aggregate driving-minutes/distance/breaks/shifts
// counters reported for one regulatory week alongside Infractions.
type WeekSummary = compliance.WeekSummary

// ComplianceResult is the compliance engine's output for one driver's
// timeline: every infraction found, plus one WeekSummary per regulatory
// week touched.
type ComplianceResult = compliance.Result

// EvaluateOptions configures Evaluate. The zero value is valid.
type EvaluateOptions = compliance.EvaluateOptions

// Evaluate runs the EU Reg. 561/2006 driving-time and rest rules over a
// driver's activity timeline. Pass the same File's DailyActivityRecords
// so week summaries can report distance; pass nil when distance totals
// are not needed.
func Evaluate(activities []Activity, dailyRecords []DailyActivityRecord, opts EvaluateOptions) ComplianceResult {
	return compliance.Evaluate(activities, dailyRecords, opts)
}
