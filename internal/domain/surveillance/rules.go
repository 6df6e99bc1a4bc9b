package surveillance

// Rule raises an alert when Observe reaches Threshold.
type Rule struct {
	Name      string
	Kind      AlertKind
	Message   string
	Threshold int
	Observe   func(summary SymptomSummary, readings []ClinicalReading) int
}

const (
	ReadingTypeTemperature = "temperatura"
	HighTemperature        = 39.0
)

// The order of this table is the order alerts appear in a report. New rules
// go at the end.
var defaultRules = []Rule{
	{
		Name:      "febre-alta",
		Kind:      KindOutbreak,
		Message:   "Possível surto de febre detectado",
		Threshold: 5,
		Observe: func(s SymptomSummary, _ []ClinicalReading) int {
			return s.Count("febre", "alta")
		},
	},
	{
		Name:      "diarreia",
		Kind:      KindWarning,
		Message:   "Casos de diarreia acima do esperado",
		Threshold: 3,
		Observe: func(s SymptomSummary, _ []ClinicalReading) int {
			return s.Count("diarreia", "sim")
		},
	},
	{
		Name:      "temperatura-alta",
		Kind:      KindWarning,
		Message:   "Vários casos de febre alta detectados nas leituras clínicas",
		Threshold: 5,
		Observe: func(_ SymptomSummary, readings []ClinicalReading) int {
			return CountReadingsAtOrAbove(readings, ReadingTypeTemperature, HighTemperature)
		},
	},
}

// DefaultRules returns a copy of the built-in rule table.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

// EvaluateRules walks rules in order and returns one alert per rule that
// fires. The result is never nil.
func EvaluateRules(rules []Rule, summary SymptomSummary, readings []ClinicalReading) []Alert {
	alerts := []Alert{}
	for _, r := range rules {
		if r.Observe(summary, readings) >= r.Threshold {
			alerts = append(alerts, Alert{Kind: r.Kind, Message: r.Message})
		}
	}
	return alerts
}
