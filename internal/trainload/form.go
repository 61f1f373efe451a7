package trainload

// FormLabel buckets TSB into the standard freshness bands
type FormLabel string

const (
	FormFresh        FormLabel = "fresh"
	FormOptimal      FormLabel = "optimal"
	FormNeutral      FormLabel = "neutral"
	FormTired        FormLabel = "tired"
	FormOverreaching FormLabel = "overreaching"
)

// FormForTSB maps a training stress balance to its label. Boundary values
// belong to the lower-TSB bucket: exactly 10 is optimal, exactly -20 is
// overreaching.
func FormForTSB(tsb float64) FormLabel {
	switch {
	case tsb > 10:
		return FormFresh
	case tsb > 5:
		return FormOptimal
	case tsb > -10:
		return FormNeutral
	case tsb > -20:
		return FormTired
	default:
		return FormOverreaching
	}
}

// Description returns a short human-readable reading of the form label
func (f FormLabel) Description() string {
	switch f {
	case FormFresh:
		return "Fresh - ready for a key session or race"
	case FormOptimal:
		return "Optimal - good balance of fitness and freshness"
	case FormNeutral:
		return "Neutral - normal training state"
	case FormTired:
		return "Tired - fatigue is building, recover soon"
	case FormOverreaching:
		return "Overreaching - rest needed"
	default:
		return string(f)
	}
}
