package estimate

import (
	"fmt"
	"math"
	"time"
)

// Metrics are the secondary values derived from a primary estimate. Nil
// pointer fields mean the value could not be derived for this athlete or
// sport, which is different from zero.
type Metrics struct {
	Calories       float64
	DistanceMeters *float64
	AvgHeartRate   *float64
	AvgPowerWatts  *float64
	ZoneSeconds    [ZoneCount]float64
	Warnings       []string
}

const (
	defaultWeightKg = 75.0
	defaultAgeYears = 35

	// caloriesPerTSSPerKg anchors the last-resort calorie heuristic:
	// ~100 TSS for a 75 kg athlete burns on the order of 700 kcal
	caloriesPerTSSPerKg = 0.094

	// referenceIF is the endurance intensity the flat speeds are quoted at
	referenceIF = 0.75
)

// EstimateMetrics derives calories, distance, average HR/power, and the
// zone-time distribution from a primary estimate. Calorie estimation runs
// through three fidelity tiers: power-based, heart-rate-based, then a
// TSS-proportional heuristic, warning whenever it has to fall down a tier.
func EstimateMetrics(res Result, ctx Context) Metrics {
	var m Metrics

	// Average power and HR are linear mappings through the athlete's
	// threshold numbers; absent profile fields leave them nil.
	if ctx.Profile.FTPWatts != nil && *ctx.Profile.FTPWatts > 0 {
		watts := res.IntensityFactor * *ctx.Profile.FTPWatts
		m.AvgPowerWatts = &watts
	}
	if ctx.Profile.ThresholdHR != nil && *ctx.Profile.ThresholdHR > 0 {
		hr := res.IntensityFactor * *ctx.Profile.ThresholdHR
		m.AvgHeartRate = &hr
	}

	m.Calories = estimateCalories(res, ctx, &m)

	if ctx.Activity.Sport.IsEndurance() {
		dist := estimateDistance(res, ctx)
		m.DistanceMeters = &dist
	}

	m.ZoneSeconds = zoneDistribution(res, ctx)

	return m
}

// estimateCalories picks the highest-fidelity tier the profile supports.
func estimateCalories(res Result, ctx Context, m *Metrics) float64 {
	hours := res.DurationSeconds / 3600

	// Tier 1: mechanical work from power. Human gross efficiency (~24%)
	// almost exactly cancels the kJ-to-kcal conversion, so kcal ~= kJ.
	if m.AvgPowerWatts != nil && ctx.Activity.Sport == SportBike {
		return *m.AvgPowerWatts * res.DurationSeconds / 1000
	}

	// Tier 2: heart-rate based (Keytel), needs HR plus weight and age.
	if m.AvgHeartRate != nil {
		weight := defaultWeightKg
		if ctx.Profile.WeightKg != nil && *ctx.Profile.WeightKg > 0 {
			weight = *ctx.Profile.WeightKg
		} else {
			m.Warnings = append(m.Warnings, fmt.Sprintf("weight not set, assuming %.0f kg for calorie estimate", defaultWeightKg))
		}
		age, ok := ctx.Profile.Age(time.Now())
		if !ok {
			age = defaultAgeYears
			m.Warnings = append(m.Warnings, fmt.Sprintf("birth date not set, assuming age %d for calorie estimate", defaultAgeYears))
		}
		kcalPerMin := (-55.0969 + 0.6309**m.AvgHeartRate + 0.1988*weight + 0.2017*float64(age)) / 4.184
		if kcalPerMin < 0 {
			kcalPerMin = 0
		}
		return kcalPerMin * hours * 60
	}

	// Tier 3: TSS-proportional heuristic.
	m.Warnings = append(m.Warnings, "no power or heart rate basis available, calories are a rough TSS-based estimate")
	weight := defaultWeightKg
	if ctx.Profile.WeightKg != nil && *ctx.Profile.WeightKg > 0 {
		weight = *ctx.Profile.WeightKg
	}
	return res.TSS * weight * caloriesPerTSSPerKg
}

// estimateDistance converts the estimated intensity into a speed for
// endurance sports. A known route wins outright.
func estimateDistance(res Result, ctx Context) float64 {
	if ctx.Activity.Route != nil && ctx.Activity.Route.DistanceMeters > 0 {
		return ctx.Activity.Route.DistanceMeters
	}
	if dist := structureDistance(ctx); dist > 0 {
		return dist
	}
	speed, ok := flatSpeedMps[ctx.Activity.Sport]
	if !ok {
		return 0
	}
	speed *= res.IntensityFactor / referenceIF
	return speed * res.DurationSeconds
}

// structureDistance sums explicit step distances when the plan carries them
func structureDistance(ctx Context) float64 {
	var total float64
	for _, step := range ctx.Activity.Structure {
		total += step.DistanceMeters
	}
	return total
}

// zoneDistribution apportions the duration across the seven zones. With a
// structure the per-step IFs drive the split; otherwise the whole duration
// lands in the zone of the overall IF.
func zoneDistribution(res Result, ctx Context) [ZoneCount]float64 {
	var dist [ZoneCount]float64

	if len(ctx.Activity.Structure) > 0 {
		steps, _ := resolveSteps(ctx)
		var total float64
		for _, s := range steps {
			dist[ClassifyIF(s.intensityFactor)] += s.durationSeconds
			total += s.durationSeconds
		}
		if total > 0 {
			// Rescale to the result duration so the split survives any
			// clamping applied to the primary estimate
			scale := res.DurationSeconds / total
			for i := range dist {
				dist[i] = math.Round(dist[i]*scale*100) / 100
			}
			return dist
		}
	}

	dist[ClassifyIF(res.IntensityFactor)] = res.DurationSeconds
	return dist
}
