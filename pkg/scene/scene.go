package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/geometry"
	"github.com/df07/go-scene-tracer/pkg/material"
)

// ErrShapeIndex is returned when an edit addresses a shape that does not exist
var ErrShapeIndex = errors.New("shape index out of range")

// RestartFrame is the FrameIndex value that tells the renderer to discard the
// accumulation buffer and start averaging again
const RestartFrame = -1

// Scene holds the shapes to intersect plus the progressive accumulation state
// that the renderer reads and updates between frames.
//
// Hit does not modify the scene, so many rays may be traced concurrently.
// Edits and Resize must not overlap with in-flight queries.
type Scene struct {
	Shapes       []geometry.Shape // Objects in the scene, scanned in order
	Accumulate   bool             // Whether frames are averaged together
	FrameIndex   int              // Frames accumulated so far, RestartFrame to reset
	Accumulation []float64        // Per-pixel running sums owned by the renderer
}

// New creates a scene with accumulation disabled and an empty buffer
func New(shapes ...geometry.Shape) *Scene {
	return &Scene{
		Shapes:       shapes,
		Accumulate:   false,
		FrameIndex:   0,
		Accumulation: []float64{},
	}
}

// Resize marks the accumulated samples as stale, e.g. after a viewport resize
// or any scene edit
func (s *Scene) Resize() {
	s.FrameIndex = RestartFrame
}

// Hit tests the ray against every shape with the same interval and returns the
// closest hit. When two shapes hit at the same t, the earlier shape wins.
func (s *Scene) Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool) {
	var closest *material.HitRecord

	for i := range s.Shapes {
		hit, isHit := s.Shapes[i].Hit(ray, interval)
		if !isHit {
			continue
		}
		if closest == nil || hit.T < closest.T {
			closest = hit
		}
	}

	return closest, closest != nil
}

// AddShape appends a shape to the scene
func (s *Scene) AddShape(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// RemoveShape deletes the shape at index i, keeping the order of the rest
func (s *Scene) RemoveShape(i int) error {
	if i < 0 || i >= len(s.Shapes) {
		return fmt.Errorf("remove shape %d of %d: %w", i, len(s.Shapes), ErrShapeIndex)
	}
	s.Shapes = append(s.Shapes[:i], s.Shapes[i+1:]...)
	return nil
}

// ReplaceShape swaps the shape at index i for another
func (s *Scene) ReplaceShape(i int, shape geometry.Shape) error {
	if i < 0 || i >= len(s.Shapes) {
		return fmt.Errorf("replace shape %d of %d: %w", i, len(s.Shapes), ErrShapeIndex)
	}
	s.Shapes[i] = shape
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
