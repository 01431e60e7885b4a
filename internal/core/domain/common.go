package domain

// Severity ranks a guardian finding.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Severities lists severities in display order, most urgent first.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}
