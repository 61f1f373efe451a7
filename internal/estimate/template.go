package estimate

// templateEntry is the assumed shape of a typical session for a sport and
// location when the workout carries no structure or route at all.
type templateEntry struct {
	durationSeconds float64
	intensityFactor float64
}

// templateDefaults encodes what an unannotated session of each kind usually
// looks like. Indoor sessions trend shorter and slightly more intense.
var templateDefaults = map[Sport]map[Location]templateEntry{
	SportBike: {
		LocationOutdoor: {durationSeconds: 3600, intensityFactor: 0.70},
		LocationIndoor:  {durationSeconds: 2700, intensityFactor: 0.75},
	},
	SportRun: {
		LocationOutdoor: {durationSeconds: 3000, intensityFactor: 0.72},
		LocationIndoor:  {durationSeconds: 2400, intensityFactor: 0.70},
	},
	SportSwim: {
		LocationOutdoor: {durationSeconds: 2700, intensityFactor: 0.65},
		LocationIndoor:  {durationSeconds: 2700, intensityFactor: 0.65},
	},
	SportStrength: {
		LocationOutdoor: {durationSeconds: 3000, intensityFactor: 0.55},
		LocationIndoor:  {durationSeconds: 3000, intensityFactor: 0.55},
	},
}

const (
	// Template scores sit below the medium cutoff so the enum always
	// reads low for template estimates.
	templateScoreWithProfile = 58.0
	templateScoreBare        = 52.0

	// ctlIFSlope shifts the assumed IF with fitness: a CTL 40 points above
	// the reference moves IF by 0.01 per 8 points, capped at ±0.05
	ctlIFReference = 40.0
	ctlIFSlope     = 1.0 / 800.0
	maxCTLIFShift  = 0.05
)

// estimateFromTemplate is the last-resort estimator: a per-sport default
// session, nudged by the athlete's current fitness.
func estimateFromTemplate(ctx Context) Result {
	warnings := []string{
		"workout has no structure or route data, estimate uses a generic session template; add steps or a route for a better estimate",
	}

	byLocation, ok := templateDefaults[ctx.Activity.Sport]
	if !ok {
		byLocation = templateDefaults[SportRun]
	}
	entry, ok := byLocation[ctx.Activity.Location]
	if !ok {
		entry = byLocation[LocationOutdoor]
	}

	ifValue := entry.intensityFactor
	if ctx.Profile.CurrentCTL != nil {
		// Fitter athletes sustain a slightly higher fraction of threshold
		shift := clamp((*ctx.Profile.CurrentCTL-ctlIFReference)*ctlIFSlope, -maxCTLIFShift, maxCTLIFShift)
		ifValue = clamp(ifValue+shift, minIntensityFactor, maxIntensityFactor)
	}

	score := templateScoreBare
	hasProfile := ctx.Profile.FTPWatts != nil || ctx.Profile.ThresholdHR != nil
	if hasProfile {
		score = templateScoreWithProfile
	} else {
		warnings = append(warnings, "profile is missing FTP and threshold HR, template defaults are not personalized")
	}
	score = clamp(score, 50, 59)

	return Result{
		Strategy:        StrategyTemplate,
		TSS:             canonicalTSS(entry.durationSeconds, ifValue),
		DurationSeconds: entry.durationSeconds,
		IntensityFactor: ifValue,
		ConfidenceScore: score,
		Warnings:        warnings,
	}
}
