package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned for a scene name that is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builtin struct {
	info SceneInfo
	make func() *Scene
}

var builtins = map[string]builtin{
	"default": {
		info: SceneInfo{Name: "default", Description: "Two diffuse spheres on a ground sphere under an emissive sky sphere"},
		make: Default,
	},
	"plane": {
		info: SceneInfo{Name: "plane", Description: "Glossy and diffuse spheres on an infinite ground plane"},
		make: NewPlaneScene,
	},
}

// ByName creates a fresh instance of the named built-in scene
func ByName(name string) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return b.make(), nil
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for every built-in scene, sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, name := range Names() {
		infos = append(infos, builtins[name].info)
	}
	return infos
}
