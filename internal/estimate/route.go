package estimate

// Route estimation works from distance, elevation gain, and terrain hints.
// The gradient resistance heuristic: the steeper the average grade, the more
// of the ride is spent pushing against gravity, which raises the sustained
// intensity and lowers the average speed.

// terrainBaseIF is the assumed endurance IF on each terrain class before the
// gradient adjustment.
var terrainBaseIF = map[Terrain]float64{
	TerrainFlat:     0.68,
	TerrainRolling:  0.72,
	TerrainHilly:    0.76,
	TerrainMountain: 0.80,
}

// flatSpeedMps is the assumed flat-ground speed at endurance intensity
var flatSpeedMps = map[Sport]float64{
	SportBike: 8.3, // ~30 km/h
	SportRun:  3.1, // ~11 km/h
	SportSwim: 0.9,
}

const (
	// surface drag penalties relative to road
	gravelSpeedFactor = 0.90
	trailSpeedFactor  = 0.80

	// ifPerGradeRatio scales IF with elevation-gain-to-distance ratio;
	// a 5% average grade adds ~0.15 IF, capped below
	ifPerGradeRatio = 3.0
	maxGradeIFBoost = 0.20

	// speedPerGradeRatio models speed lost to climbing
	speedPerGradeRatio = 9.0

	routeScoreWithThreshold = 78.0
	routeScoreNoThreshold   = 71.0
)

// estimateFromRoute derives intensity and duration from route geometry.
func estimateFromRoute(ctx Context) Result {
	route := ctx.Activity.Route
	var warnings []string

	terrain := route.Terrain
	if _, ok := terrainBaseIF[terrain]; !ok {
		terrain = TerrainFlat
		if route.Terrain != "" {
			warnings = append(warnings, "unknown terrain class, treating route as flat")
		}
	}

	gradeRatio := 0.0
	if route.DistanceMeters > 0 && route.ElevationGainM > 0 {
		gradeRatio = route.ElevationGainM / route.DistanceMeters
	}

	ifValue := terrainBaseIF[terrain] + clamp(gradeRatio*ifPerGradeRatio, 0, maxGradeIFBoost)
	ifValue = clamp(ifValue, minIntensityFactor, maxIntensityFactor)

	speed, ok := flatSpeedMps[ctx.Activity.Sport]
	if !ok {
		speed = flatSpeedMps[SportRun]
		warnings = append(warnings, "route data on a non-endurance sport, duration estimate is rough")
	}
	switch route.Surface {
	case "gravel":
		speed *= gravelSpeedFactor
	case "trail":
		speed *= trailSpeedFactor
	}
	// Climbing slows the whole effort down even as intensity rises
	speed /= 1 + gradeRatio*speedPerGradeRatio

	distance := route.DistanceMeters
	if distance <= 0 {
		distance = 1000
		warnings = append(warnings, "route has no distance, assuming 1 km")
	}
	duration := distance / speed

	score := routeScoreNoThreshold
	if ctx.Profile.FTPWatts != nil || ctx.Profile.ThresholdHR != nil {
		score = routeScoreWithThreshold
	} else {
		warnings = append(warnings, "neither FTP nor threshold HR is set, route intensity uses population defaults")
	}
	score = clamp(score-float64(len(warnings)), 70, 80)

	return Result{
		Strategy:        StrategyRoute,
		TSS:             canonicalTSS(duration, ifValue),
		DurationSeconds: duration,
		IntensityFactor: ifValue,
		ConfidenceScore: score,
		Warnings:        warnings,
	}
}
