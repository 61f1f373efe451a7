package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"trainlab/internal/estimate"
	"trainlab/internal/store"
)

// EstimationService turns stored planned workouts into training stress
// estimates using the saved athlete profile.
type EstimationService struct {
	store *store.Store
}

// NewEstimationService creates a new estimation service
func NewEstimationService(s *store.Store) *EstimationService {
	return &EstimationService{store: s}
}

// WorkoutEstimate pairs a planned workout with its estimate and the
// derived secondary metrics.
type WorkoutEstimate struct {
	Workout store.PlannedWorkout
	Result  estimate.Result
	Metrics estimate.Metrics
}

// EstimateWorkout estimates a single planned workout by ID
func (e *EstimationService) EstimateWorkout(id string) (*WorkoutEstimate, error) {
	w, err := e.store.GetPlannedWorkout(id)
	if err != nil {
		return nil, err
	}

	profile, err := e.loadProfile()
	if err != nil {
		return nil, err
	}

	ctx, err := buildContext(*w, profile)
	if err != nil {
		return nil, err
	}

	res, err := estimate.Estimate(ctx)
	if err != nil {
		return nil, fmt.Errorf("estimating workout %s: %w", w.Name, err)
	}

	return &WorkoutEstimate{
		Workout: *w,
		Result:  res,
		Metrics: estimate.EstimateMetrics(res, ctx),
	}, nil
}

// EstimateWorkouts estimates a batch of planned workouts against one
// profile snapshot. Workouts that cannot be estimated are skipped
// rather than aborting the batch.
func (e *EstimationService) EstimateWorkouts(workouts []store.PlannedWorkout) ([]WorkoutEstimate, error) {
	profile, err := e.loadProfile()
	if err != nil {
		return nil, err
	}

	estimates := make([]WorkoutEstimate, 0, len(workouts))
	for _, w := range workouts {
		ctx, err := buildContext(w, profile)
		if err != nil {
			continue
		}
		res, err := estimate.Estimate(ctx)
		if err != nil {
			continue
		}
		estimates = append(estimates, WorkoutEstimate{
			Workout: w,
			Result:  res,
			Metrics: estimate.EstimateMetrics(res, ctx),
		})
	}
	return estimates, nil
}

// loadProfile fetches the stored profile, mapping the no-profile case
// to an empty profile so estimation degrades instead of failing.
func (e *EstimationService) loadProfile() (estimate.UserProfile, error) {
	p, err := e.store.GetProfile()
	if errors.Is(err, store.ErrNoProfile) {
		return estimate.UserProfile{}, nil
	}
	if err != nil {
		return estimate.UserProfile{}, err
	}
	return estimate.UserProfile{
		FTPWatts:    p.FTPWatts,
		ThresholdHR: p.ThresholdHR,
		WeightKg:    p.WeightKg,
		BirthDate:   p.BirthDate,
		CurrentCTL:  p.StartingCTL,
	}, nil
}

// buildContext converts a stored planned workout into an estimation
// context, decoding the structure JSON and route columns.
func buildContext(w store.PlannedWorkout, profile estimate.UserProfile) (estimate.Context, error) {
	activity := estimate.Activity{
		Sport:    estimate.Sport(w.Sport),
		Location: estimate.Location(w.Location),
	}

	if w.StructureJSON != nil && *w.StructureJSON != "" {
		var steps []estimate.Step
		if err := json.Unmarshal([]byte(*w.StructureJSON), &steps); err != nil {
			return estimate.Context{}, fmt.Errorf("decoding structure for %s: %w", w.Name, err)
		}
		activity.Structure = steps
	}

	if w.RouteDistanceM != nil {
		route := &estimate.Route{
			DistanceMeters: *w.RouteDistanceM,
		}
		if w.RouteElevationGainM != nil {
			route.ElevationGainM = *w.RouteElevationGainM
		}
		if w.RouteTerrain != nil {
			route.Terrain = estimate.Terrain(*w.RouteTerrain)
		}
		if w.RouteSurface != nil {
			route.Surface = *w.RouteSurface
		}
		activity.Route = route
	}

	return estimate.Context{Profile: profile, Activity: activity}, nil
}

// EncodeStructure marshals workout steps into the stored JSON form
func EncodeStructure(steps []estimate.Step) (string, error) {
	data, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("encoding structure: %w", err)
	}
	return string(data), nil
}
