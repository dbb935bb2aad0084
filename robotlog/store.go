// Package robotlog reads robot localization logs into memory and writes estimator results back out
// in the same line format.
package robotlog

import (
	"github.com/pkg/errors"

	"go.viam.com/slamlog/record"
)

// A Store holds one ordered sequence per record kind, aligned by time step index.
//
// Records arrive in passes, one pass per source read. The first record of a kind in a pass replaces
// whatever the store held for that kind; later records of the same pass append. Reading a second
// source therefore replaces only the kinds it contains. A Store has a single writer; concurrent
// passes must be serialized by the caller.
type Store struct {
	referencePositions []record.ReferencePosition
	scans              []record.Scan
	poleIndices        []record.PoleIndices
	motorTicks         []record.MotorTicks
	filteredPoses      []record.FilteredPose
	uncertainties      []record.PoseUncertainty
	landmarks          []record.Landmark
	detections         []record.Detections
	worldLandmarks     []record.WorldLandmarks
	worldEllipses      []record.WorldEllipses
	particles          []record.Swarm

	lastTicks    record.MotorTicks
	hasLastTicks bool

	// seen marks the kinds already replaced in the current pass.
	seen [record.NumKinds]bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// BeginPass starts a new pass. The next record of every kind will replace that kind's sequence.
func (s *Store) BeginPass() {
	s.seen = [record.NumKinds]bool{}
}

// Apply lands a decoded record in the store. A nil value marks the kind as present in this pass,
// which clears it on first occurrence, without appending.
func (s *Store) Apply(kind record.Kind, v record.Value) error {
	if kind <= record.KindNone || kind >= record.NumKinds {
		return errors.Errorf("cannot store record of kind %d", kind)
	}
	if v != nil && v.Kind() != kind {
		return errors.Errorf("value of kind %s applied as %s", v.Kind(), kind)
	}
	if !s.seen[kind] {
		s.reset(kind)
		s.seen[kind] = true
	}
	if v == nil {
		return nil
	}

	switch v := v.(type) {
	case record.ReferencePosition:
		s.referencePositions = append(s.referencePositions, v)
	case record.Scan:
		s.scans = append(s.scans, v)
	case record.PoleIndices:
		s.poleIndices = append(s.poleIndices, v)
	case record.MotorTicks:
		s.motorTicks = append(s.motorTicks, v)
		s.lastTicks = v
		s.hasLastTicks = true
	case record.FilteredPose:
		s.filteredPoses = append(s.filteredPoses, v)
	case record.PoseUncertainty:
		s.uncertainties = append(s.uncertainties, v)
	case record.Landmark:
		s.landmarks = append(s.landmarks, v)
	case record.Detections:
		s.detections = append(s.detections, v)
	case record.WorldLandmarks:
		s.worldLandmarks = append(s.worldLandmarks, v)
	case record.WorldEllipses:
		s.worldEllipses = append(s.worldEllipses, v)
	case record.Swarm:
		s.particles = append(s.particles, v)
	default:
		return errors.Errorf("expected %T but got %T", kindValues[kind], v)
	}
	return nil
}

// kindValues holds a sample value of each kind for type mismatch errors.
var kindValues = [record.NumKinds]record.Value{
	record.KindReferencePosition: record.ReferencePosition{},
	record.KindScan:              record.Scan{},
	record.KindPoleIndices:       record.PoleIndices{},
	record.KindMotorTicks:        record.MotorTicks{},
	record.KindFilteredPose:      record.Pose{},
	record.KindPoseUncertainty:   record.HeadingUncertainty{},
	record.KindLandmark:          record.Landmark{},
	record.KindDetections:        record.Detections{},
	record.KindWorldLandmarks:    record.WorldLandmarks{},
	record.KindWorldEllipses:     record.WorldEllipses{},
	record.KindParticles:         record.Swarm{},
}

func (s *Store) reset(kind record.Kind) {
	switch kind {
	case record.KindReferencePosition:
		s.referencePositions = nil
	case record.KindScan:
		s.scans = nil
	case record.KindPoleIndices:
		s.poleIndices = nil
	case record.KindMotorTicks:
		s.motorTicks = nil
	case record.KindFilteredPose:
		s.filteredPoses = nil
	case record.KindPoseUncertainty:
		s.uncertainties = nil
	case record.KindLandmark:
		s.landmarks = nil
	case record.KindDetections:
		s.detections = nil
	case record.KindWorldLandmarks:
		s.worldLandmarks = nil
	case record.KindWorldEllipses:
		s.worldEllipses = nil
	case record.KindParticles:
		s.particles = nil
	case record.KindNone, record.NumKinds:
	}
}

// Len returns the length of the sequence of the given kind.
func (s *Store) Len(kind record.Kind) int {
	switch kind {
	case record.KindReferencePosition:
		return len(s.referencePositions)
	case record.KindScan:
		return len(s.scans)
	case record.KindPoleIndices:
		return len(s.poleIndices)
	case record.KindMotorTicks:
		return len(s.motorTicks)
	case record.KindFilteredPose:
		return len(s.filteredPoses)
	case record.KindPoseUncertainty:
		return len(s.uncertainties)
	case record.KindLandmark:
		return len(s.landmarks)
	case record.KindDetections:
		return len(s.detections)
	case record.KindWorldLandmarks:
		return len(s.worldLandmarks)
	case record.KindWorldEllipses:
		return len(s.worldEllipses)
	case record.KindParticles:
		return len(s.particles)
	default:
		return 0
	}
}

// sizedKinds are the time step aligned kinds. Landmarks are background data and world ellipses
// only decorate world landmarks, so neither extends the number of time steps.
var sizedKinds = []record.Kind{
	record.KindReferencePosition,
	record.KindScan,
	record.KindPoleIndices,
	record.KindMotorTicks,
	record.KindFilteredPose,
	record.KindPoseUncertainty,
	record.KindDetections,
	record.KindWorldLandmarks,
	record.KindParticles,
}

// Size returns the number of time steps: the length of the longest time step aligned sequence.
// Sequences may legitimately differ in length.
func (s *Store) Size() int {
	size := 0
	for _, kind := range sizedKinds {
		if n := s.Len(kind); n > size {
			size = n
		}
	}
	return size
}

// LastTicks returns the raw pair of the most recently stored motor tick record, across passes.
func (s *Store) LastTicks() (record.MotorTicks, bool) {
	return s.lastTicks, s.hasLastTicks
}

// MotorTickIncrements returns the difference of each motor tick record to the one before it. The
// first increment is zero.
func (s *Store) MotorTickIncrements() []record.MotorTicks {
	if len(s.motorTicks) == 0 {
		return nil
	}
	increments := make([]record.MotorTicks, len(s.motorTicks))
	for i := 1; i < len(s.motorTicks); i++ {
		increments[i] = record.MotorTicks{
			Left:  s.motorTicks[i].Left - s.motorTicks[i-1].Left,
			Right: s.motorTicks[i].Right - s.motorTicks[i-1].Right,
		}
	}
	return increments
}

// The accessors below return the store's own slices. Callers must not modify them.

// ReferencePositions returns the `P` sequence.
func (s *Store) ReferencePositions() []record.ReferencePosition { return s.referencePositions }

// Scans returns the `S` sequence.
func (s *Store) Scans() []record.Scan { return s.scans }

// PoleIndices returns the `I` sequence.
func (s *Store) PoleIndices() []record.PoleIndices { return s.poleIndices }

// MotorTicks returns the `M` sequence as read, absolute or incremental depending on the logger.
func (s *Store) MotorTicks() []record.MotorTicks { return s.motorTicks }

// FilteredPoses returns the `F` sequence.
func (s *Store) FilteredPoses() []record.FilteredPose { return s.filteredPoses }

// PoseUncertainties returns the `E` sequence.
func (s *Store) PoseUncertainties() []record.PoseUncertainty { return s.uncertainties }

// Landmarks returns the `L` sequence.
func (s *Store) Landmarks() []record.Landmark { return s.landmarks }

// Detections returns the `D C` sequence.
func (s *Store) Detections() []record.Detections { return s.detections }

// WorldLandmarks returns the `W C` sequence.
func (s *Store) WorldLandmarks() []record.WorldLandmarks { return s.worldLandmarks }

// WorldEllipses returns the `W E` sequence. Pairing with WorldLandmarks is positional and not
// checked.
func (s *Store) WorldEllipses() []record.WorldEllipses { return s.worldEllipses }

// Particles returns the `PA` sequence, one swarm per time step.
func (s *Store) Particles() []record.Swarm { return s.particles }
