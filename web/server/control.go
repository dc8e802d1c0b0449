package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/df07/go-scene-tracer/pkg/core"
	"github.com/df07/go-scene-tracer/pkg/geometry"
	"github.com/df07/go-scene-tracer/pkg/material"
	"github.com/df07/go-scene-tracer/pkg/scene"
)

// maxDimension bounds preview sizes requested over /control
const maxDimension = 4096

var (
	// ErrNotSphere is returned for a sphere edit aimed at another shape kind
	ErrNotSphere = errors.New("shape is not a sphere")
	// ErrInvalidSize is returned for a resize outside 1..maxDimension
	ErrInvalidSize = errors.New("invalid image size")
)

// ResizeRequest sets new preview dimensions
type ResizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SphereEdit changes the fields that are present and leaves the rest alone
type SphereEdit struct {
	Index          int         `json:"index"`
	Center         *[3]float64 `json:"center,omitempty"`
	Radius         *float64    `json:"radius,omitempty"`
	Albedo         *[3]float64 `json:"albedo,omitempty"`
	Roughness      *float64    `json:"roughness,omitempty"`
	Emission       *float64    `json:"emission,omitempty"`
	SpecularChance *float64    `json:"specular_chance,omitempty"`
}

// ControlMessage is accepted by /control. Every field is optional.
type ControlMessage struct {
	Accumulate *bool          `json:"accumulate,omitempty"`
	Reset      bool           `json:"reset,omitempty"`
	Resize     *ResizeRequest `json:"resize,omitempty"`
	Sphere     *SphereEdit    `json:"sphere,omitempty"`
}

// ShapeState describes one shape in a StateMessage
type ShapeState struct {
	Kind           string      `json:"kind"`
	Center         *[3]float64 `json:"center,omitempty"`
	Radius         float64     `json:"radius,omitempty"`
	Point          *[3]float64 `json:"point,omitempty"`
	Normal         *[3]float64 `json:"normal,omitempty"`
	Albedo         [3]float64  `json:"albedo"`
	Roughness      float64     `json:"roughness"`
	Emission       float64     `json:"emission"`
	SpecularChance float64     `json:"specular_chance"`
}

// StateMessage is the reply to every control message
type StateMessage struct {
	FrameIndex int          `json:"frame_index"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Accumulate bool         `json:"accumulate"`
	Shapes     []ShapeState `json:"shapes"`
	Error      string       `json:"error,omitempty"`
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		s.handleControlWS(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.state())
	case http.MethodPost:
		var msg ControlMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			state := s.state()
			state.Error = fmt.Sprintf("decode control message: %v", err)
			writeJSON(w, http.StatusBadRequest, state)
			return
		}
		err := s.ApplyControl(msg)
		state := s.state()
		if err != nil {
			state.Error = err.Error()
			writeJSON(w, http.StatusBadRequest, state)
			return
		}
		writeJSON(w, http.StatusOK, state)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (s *Server) handleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("upgrade /control")
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg ControlMessage
		err = json.Unmarshal(data, &msg)
		if err == nil {
			err = s.ApplyControl(msg)
		}
		state := s.state()
		if err != nil {
			state.Error = err.Error()
		}

		b, _ := json.Marshal(state)
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
}

// ApplyControl validates msg and applies it between frames. Every applied
// change restarts accumulation. Nothing is applied when msg is invalid.
func (s *Server) ApplyControl(msg ControlMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rs := msg.Resize; rs != nil {
		if rs.Width <= 0 || rs.Height <= 0 || rs.Width > maxDimension || rs.Height > maxDimension {
			return fmt.Errorf("%w: %dx%d", ErrInvalidSize, rs.Width, rs.Height)
		}
	}

	var sphere *geometry.Sphere
	if edit := msg.Sphere; edit != nil {
		if edit.Index < 0 || edit.Index >= len(s.scene.Shapes) {
			return fmt.Errorf("edit shape %d of %d: %w", edit.Index, len(s.scene.Shapes), scene.ErrShapeIndex)
		}
		sp, ok := s.scene.Shapes[edit.Index].Sphere()
		if !ok {
			return fmt.Errorf("edit shape %d: %w", edit.Index, ErrNotSphere)
		}
		sphere = sp
	}

	changed := false
	if msg.Accumulate != nil {
		s.scene.Accumulate = *msg.Accumulate
		changed = true
	}
	if msg.Reset {
		changed = true
	}
	if rs := msg.Resize; rs != nil {
		s.renderer.Resize(rs.Width, rs.Height)
		changed = true
	}
	if sphere != nil {
		applySphereEdit(sphere, msg.Sphere)
		changed = true
	}

	if changed {
		s.scene.Resize()
		s.logger.Debug().Interface("control", msg).Msg("control applied")
	}
	return nil
}

func applySphereEdit(sp *geometry.Sphere, edit *SphereEdit) {
	if edit.Center != nil {
		sp.Center = core.Vec3(*edit.Center)
	}
	if edit.Radius != nil {
		sp.Radius = *edit.Radius
	}
	if edit.Albedo != nil {
		sp.Material.Albedo = core.Color(*edit.Albedo)
	}
	if edit.Roughness != nil {
		sp.Material.Roughness = *edit.Roughness
	}
	if edit.Emission != nil {
		sp.Material.Emission = *edit.Emission
	}
	if edit.SpecularChance != nil {
		sp.Material.SpecularChance = *edit.SpecularChance
	}
}

func (s *Server) state() StateMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	width, height := s.renderer.Size()
	state := StateMessage{
		FrameIndex: s.scene.FrameIndex,
		Width:      width,
		Height:     height,
		Accumulate: s.scene.Accumulate,
		Shapes:     make([]ShapeState, 0, len(s.scene.Shapes)),
	}
	for i := range s.scene.Shapes {
		state.Shapes = append(state.Shapes, shapeState(&s.scene.Shapes[i]))
	}
	return state
}

func shapeState(shape *geometry.Shape) ShapeState {
	st := ShapeState{Kind: shape.Kind().String()}
	if sp, ok := shape.Sphere(); ok {
		center := [3]float64(sp.Center)
		st.Center = &center
		st.Radius = sp.Radius
	}
	if pl, ok := shape.Plane(); ok {
		point, normal := [3]float64(pl.Point), [3]float64(pl.Normal)
		st.Point = &point
		st.Normal = &normal
	}
	setMaterialState(&st, shape.Material())
	return st
}

func setMaterialState(st *ShapeState, m material.Material) {
	st.Albedo = [3]float64(m.Albedo)
	st.Roughness = m.Roughness
	st.Emission = m.Emission
	st.SpecularChance = m.SpecularChance
}
