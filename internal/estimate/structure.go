package estimate

import (
	"fmt"
	"math"
)

// Fallbacks used when the profile is incomplete. Deliberately conservative:
// a mid-pack recreational athlete.
const (
	defaultFTPWatts    = 200.0
	defaultThresholdHR = 160.0

	// thresholdHRFraction approximates threshold HR as a fraction of max HR
	thresholdHRFraction = 0.90

	minIntensityFactor = 0.30
	maxIntensityFactor = 1.50

	// secondsPerRep covers the rep itself plus its share of inter-rep rest
	secondsPerRep = 6.0

	// defaultStepIF is assumed for steps with no intensity target at all
	defaultStepIF = 0.70
)

// thresholdPacePerKm is the assumed pace sustainable at threshold, in
// seconds per kilometer, used to turn pace targets into an IF.
var thresholdPacePerKm = map[Sport]float64{
	SportRun:  255,  // 4:15/km
	SportBike: 107,  // ~33.5 km/h
	SportSwim: 1080, // 1:48/100m
}

// referenceCadence is a typical threshold-effort cadence per sport
var referenceCadence = map[Sport]float64{
	SportBike: 90,
	SportRun:  170,
}

// rpeIF maps Borg RPE 1-10 to an IF equivalent; index 0 is unused
var rpeIF = [11]float64{0, 0.40, 0.48, 0.56, 0.64, 0.72, 0.80, 0.88, 0.96, 1.05, 1.20}

// resolvedStep is a structure step with its duration and intensity settled
type resolvedStep struct {
	durationSeconds float64
	intensityFactor float64
}

// estimateFromStructure walks the step list, converts every intensity target
// into an IF equivalent, and combines the steps with a fourth-power weighted
// average, mirroring how normalized power emphasizes hard intervals.
func estimateFromStructure(ctx Context) Result {
	steps, warnings := resolveSteps(ctx)

	var totalSeconds, weighted float64
	for _, s := range steps {
		totalSeconds += s.durationSeconds
		weighted += s.durationSeconds * math.Pow(s.intensityFactor, 4)
	}

	avgIF := defaultStepIF
	if totalSeconds > 0 && weighted > 0 {
		avgIF = math.Pow(weighted/totalSeconds, 0.25)
	}
	if totalSeconds <= 0 {
		totalSeconds = 1
		warnings = append(warnings, "workout structure resolves to zero duration, treating as one second")
	}
	avgIF = clamp(avgIF, minIntensityFactor, maxIntensityFactor)

	hasThreshold := ctx.Profile.FTPWatts != nil || ctx.Profile.ThresholdHR != nil
	score := 78.0
	if hasThreshold {
		score = 95
	} else {
		warnings = append(warnings, "neither FTP nor threshold HR is set, intensity conversions use population defaults")
	}
	score -= 2 * float64(len(warnings))
	if hasThreshold {
		score = clamp(score, 88, 95)
	} else {
		score = clamp(score, 60, 80)
	}

	return Result{
		Strategy:        StrategyStructure,
		TSS:             canonicalTSS(totalSeconds, avgIF),
		DurationSeconds: totalSeconds,
		IntensityFactor: avgIF,
		ConfidenceScore: score,
		Warnings:        warnings,
	}
}

// resolveSteps settles every step's duration and IF. Shared with the metrics
// estimator so zone-time distribution sees the same per-step breakdown.
func resolveSteps(ctx Context) ([]resolvedStep, []string) {
	var warnings []string
	steps := make([]resolvedStep, 0, len(ctx.Activity.Structure))

	for i, step := range ctx.Activity.Structure {
		ifValue, ws := stepIntensity(ctx, step)
		for _, w := range ws {
			warnings = appendUnique(warnings, w)
		}

		duration := stepDuration(ctx, step, ifValue)
		if duration <= 0 {
			warnings = appendUnique(warnings,
				fmt.Sprintf("step %d has no duration, distance, or reps; skipped", i+1))
			continue
		}

		steps = append(steps, resolvedStep{durationSeconds: duration, intensityFactor: ifValue})
	}
	return steps, warnings
}

// stepDuration resolves a step's duration: explicit, derived from distance
// at the step's pace, or reps at an assumed per-rep time.
func stepDuration(ctx Context, step Step, ifValue float64) float64 {
	if step.DurationSeconds > 0 {
		return step.DurationSeconds
	}
	if step.DistanceMeters > 0 {
		pace := paceForIF(ctx.Activity.Sport, ifValue)
		return step.DistanceMeters / 1000 * pace
	}
	if step.Reps > 0 {
		return float64(step.Reps) * secondsPerRep
	}
	return 0
}

// paceForIF inverts the threshold pace by the intensity factor: at IF 1.0
// the athlete moves at threshold pace, easier efforts are proportionally
// slower.
func paceForIF(sport Sport, ifValue float64) float64 {
	threshold, ok := thresholdPacePerKm[sport]
	if !ok {
		threshold = thresholdPacePerKm[SportRun]
	}
	if ifValue < minIntensityFactor {
		ifValue = minIntensityFactor
	}
	return threshold / ifValue
}

// stepIntensity averages the IF equivalents of the step's targets. A step
// with no target is assumed to be endurance effort.
func stepIntensity(ctx Context, step Step) (float64, []string) {
	if len(step.Targets) == 0 {
		return defaultStepIF, []string{"step without intensity target assumed to be endurance effort"}
	}

	var sum float64
	var warnings []string
	for _, t := range step.Targets {
		v, w := targetIF(ctx, t)
		sum += v
		if w != "" {
			warnings = append(warnings, w)
		}
	}
	avg := sum / float64(len(step.Targets))
	return clamp(avg, minIntensityFactor, maxIntensityFactor), warnings
}

// targetIF converts one intensity target into an IF equivalent. Each of the
// eight target kinds has exactly one conversion; unknown kinds are treated
// as endurance with a warning rather than failing.
func targetIF(ctx Context, t Target) (float64, string) {
	switch t.Kind {
	case TargetPercentFTP:
		return t.Value / 100, ""

	case TargetPercentThresholdHR:
		return t.Value / 100, ""

	case TargetPercentMaxHR:
		// %maxHR to %thresholdHR assuming threshold sits at a fixed
		// fraction of max
		return t.Value / 100 / thresholdHRFraction, ""

	case TargetWatts:
		if ctx.Profile.FTPWatts != nil && *ctx.Profile.FTPWatts > 0 {
			return t.Value / *ctx.Profile.FTPWatts, ""
		}
		return t.Value / defaultFTPWatts, fmt.Sprintf("FTP not set, assuming %.0f W for watt targets", defaultFTPWatts)

	case TargetBPM:
		if ctx.Profile.ThresholdHR != nil && *ctx.Profile.ThresholdHR > 0 {
			return t.Value / *ctx.Profile.ThresholdHR, ""
		}
		return t.Value / defaultThresholdHR, fmt.Sprintf("threshold HR not set, assuming %.0f bpm for HR targets", defaultThresholdHR)

	case TargetPace:
		threshold, ok := thresholdPacePerKm[ctx.Activity.Sport]
		if !ok {
			return defaultStepIF, "pace target on a non-endurance sport, assuming endurance effort"
		}
		if t.Value <= 0 {
			return defaultStepIF, "pace target is not positive, assuming endurance effort"
		}
		// Faster than threshold pace means IF above 1.0
		return threshold / t.Value, ""

	case TargetCadence:
		ref, ok := referenceCadence[ctx.Activity.Sport]
		if !ok || ref <= 0 {
			return defaultStepIF, "cadence target on a sport without a cadence reference, assuming endurance effort"
		}
		return clamp(0.85*t.Value/ref, 0.50, 1.10), "cadence is a weak intensity signal, estimate is approximate"

	case TargetRPE:
		idx := int(math.Round(t.Value))
		if idx < 1 {
			idx = 1
		}
		if idx > 10 {
			idx = 10
		}
		return rpeIF[idx], ""
	}

	return defaultStepIF, "unknown intensity target kind, assuming endurance effort"
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
