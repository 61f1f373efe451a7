package estimate

// Zone is one of the seven ordered intensity zones
type Zone int

const (
	ZoneRecovery Zone = iota
	ZoneEndurance
	ZoneTempo
	ZoneThreshold
	ZoneVO2Max
	ZoneAnaerobic
	ZoneNeuromuscular
)

// zoneNames in ascending intensity order
var zoneNames = [...]string{
	"recovery",
	"endurance",
	"tempo",
	"threshold",
	"vo2max",
	"anaerobic",
	"neuromuscular",
}

func (z Zone) String() string {
	if z < ZoneRecovery || z > ZoneNeuromuscular {
		return "unknown"
	}
	return zoneNames[z]
}

// zoneUpperIF is the exclusive upper IF bound of each zone except the last,
// which is unbounded. Bounds are contiguous: a zone starts where the
// previous one ends.
var zoneUpperIF = [...]float64{
	0.55, // recovery
	0.75, // endurance
	0.85, // tempo
	0.95, // threshold
	1.05, // vo2max
	1.20, // anaerobic
}

// ZoneCount is the number of intensity zones
const ZoneCount = int(ZoneNeuromuscular) + 1

// ClassifyIF maps an intensity factor to its zone. Total over all inputs:
// negative values fall into recovery, everything at or above the anaerobic
// ceiling is neuromuscular.
func ClassifyIF(intensityFactor float64) Zone {
	for i, upper := range zoneUpperIF {
		if intensityFactor < upper {
			return Zone(i)
		}
	}
	return ZoneNeuromuscular
}

// ZoneBounds returns the inclusive lower and exclusive upper IF bound of a
// zone. The top zone's upper bound is reported as +Inf via ok=false on the
// upper value being meaningful.
func ZoneBounds(z Zone) (lower, upper float64, bounded bool) {
	if z < ZoneRecovery || z > ZoneNeuromuscular {
		return 0, 0, false
	}
	if z > ZoneRecovery {
		lower = zoneUpperIF[z-1]
	}
	if z == ZoneNeuromuscular {
		return lower, 0, false
	}
	return lower, zoneUpperIF[z], true
}
