package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/material"
	"github.com/df07/go-scene-tracer/pkg/renderer"
	"github.com/df07/go-scene-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit        bool        `json:"hit"`
	ShapeIndex int         `json:"shape_index"`
	Shape      *ShapeState `json:"shape,omitempty"`
	Point      [3]float64  `json:"point"`
	Normal     [3]float64  `json:"normal"`
	Distance   float64     `json:"distance"`
	Emissive   bool        `json:"emissive"`
	Color      string      `json:"color,omitempty"`
}

// InspectResult describes the first surface seen through a pixel
type InspectResult struct {
	Hit        bool
	HitRecord  *material.HitRecord
	ShapeIndex int // -1 when nothing was hit
}

// inspectPixel casts a ray through the center of pixel (x, y) and returns the
// first surface it hits
func inspectPixel(s *scene.Scene, camera *renderer.Camera, x, y int) InspectResult {
	ray := camera.PixelRay(float64(x)+0.5, float64(y)+0.5)
	interval := core.Forward(renderer.SurfaceEpsilon)

	hit, isHit := s.Hit(ray, interval)
	if !isHit {
		return InspectResult{ShapeIndex: -1}
	}

	// The scene only reports the record, so find the first shape at the same t
	for i := range s.Shapes {
		if shapeHit, ok := s.Shapes[i].Hit(ray, interval); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, ShapeIndex: i}
		}
	}
	return InspectResult{Hit: true, HitRecord: hit, ShapeIndex: -1}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	width, height := s.renderer.Size()
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(s.scene, s.renderer.Camera(), pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ShapeIndex: -1})
		return
	}

	hit := result.HitRecord
	resp := InspectResponse{
		Hit:        true,
		ShapeIndex: result.ShapeIndex,
		Point:      [3]float64(hit.Point),
		Normal:     [3]float64(hit.Normal),
		Distance:   hit.T,
		Emissive:   hit.Material.IsEmissive(),
		Color:      hexColor(hit.Material.Albedo),
	}
	if result.ShapeIndex >= 0 {
		st := shapeState(&s.scene.Shapes[result.ShapeIndex])
		resp.Shape = &st
	}
	if resp.Emissive {
		resp.Color = hexColor(hit.Material.Emitted())
	}
	writeJSON(w, http.StatusOK, resp)
}

func hexColor(c core.Color) string {
	c = core.Clamp(c, 0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c[0]*255), int(c[1]*255), int(c[2]*255))
}
