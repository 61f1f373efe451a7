package estimate

import (
	"errors"
	"fmt"
	"math"
)

// Strategy identifies which estimator produced a result
type Strategy string

const (
	StrategyStructure Strategy = "structure"
	StrategyRoute     Strategy = "route"
	StrategyTemplate  Strategy = "template"
)

// Confidence buckets an estimate's reliability for UI messaging
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// confidenceFromScore maps the numeric score onto the enum so the two can
// never disagree.
func confidenceFromScore(score float64) Confidence {
	switch {
	case score >= 85:
		return ConfidenceHigh
	case score >= 60:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Result is a single training-stress estimate
type Result struct {
	Strategy        Strategy
	TSS             float64
	DurationSeconds float64
	IntensityFactor float64
	Confidence      Confidence
	ConfidenceScore float64
	Warnings        []string
}

// ErrNoActivityType is returned when the context carries no sport
// classification at all. This is a caller bug, not a degraded estimate.
var ErrNoActivityType = errors.New("estimate: activity has no sport classification")

// Estimate produces a training-stress estimate for the given context.
// The strategy is chosen by data availability, structure first, then route,
// then the per-sport template. Missing profile data lowers confidence and
// adds warnings but never fails.
func Estimate(ctx Context) (Result, error) {
	if !ctx.Activity.Sport.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrNoActivityType, ctx.Activity.Sport)
	}

	var res Result
	switch {
	case len(ctx.Activity.Structure) > 0:
		res = estimateFromStructure(ctx)
	case ctx.Activity.Route != nil:
		res = estimateFromRoute(ctx)
	default:
		res = estimateFromTemplate(ctx)
	}

	res.Confidence = confidenceFromScore(res.ConfidenceScore)
	sanitize(&res)
	return res, nil
}

// Batch estimates a list of contexts independently. Entries whose context is
// invalid produce a zero Result and the first such error is returned after
// the whole batch has been attempted.
func Batch(ctxs []Context) ([]Result, error) {
	results := make([]Result, len(ctxs))
	var firstErr error
	for i, c := range ctxs {
		r, err := Estimate(c)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results[i] = r
	}
	return results, firstErr
}

// canonicalTSS applies the defining TSS formula
func canonicalTSS(durationSeconds, intensityFactor float64) float64 {
	return durationSeconds / 3600 * intensityFactor * intensityFactor * 100
}

// sanitize enforces the output contract: TSS and duration finite and
// non-negative, IF positive. A violation here would be an estimator bug, so
// values are clamped rather than surfaced as a "low confidence" result.
func sanitize(res *Result) {
	if math.IsNaN(res.TSS) || math.IsInf(res.TSS, 0) || res.TSS < 0 {
		res.TSS = 0
	}
	if math.IsNaN(res.DurationSeconds) || math.IsInf(res.DurationSeconds, 0) || res.DurationSeconds <= 0 {
		res.DurationSeconds = 1
	}
	if math.IsNaN(res.IntensityFactor) || math.IsInf(res.IntensityFactor, 0) || res.IntensityFactor <= 0 {
		res.IntensityFactor = minIntensityFactor
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
