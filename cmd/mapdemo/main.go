// Command mapdemo loads a Valve-220 ".map" source, runs it through
// brushkit's clipper and mesher, and displays the result in a free-fly
// OpenGL viewer. This is the "external collaborator" demo spec.md §1
// scopes outside the core: nothing under internal/core imports this
// command or its go-gl/gl and go-gl/glfw dependencies.
package main

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"brushkit/internal/core/brush"
	"brushkit/internal/core/mapfile"
	"brushkit/internal/core/mesh"
	"brushkit/internal/core/texture"
	"brushkit/internal/render"

	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	runtime.LockOSThread()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mapdemo <path-to.map>")
		os.Exit(1)
	}

	source, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	parsed, parseErrors := mapfile.Parse(string(source))
	for _, e := range parseErrors {
		fmt.Fprintf(os.Stderr, "parse: %v\n", e)
	}

	registry := texture.NewRegistry()
	brushOpts := brush.DefaultOptions()
	meshOpts := mesh.DefaultOptions()

	entities := []mapfile.Entity{parsed.World}
	for _, classEntities := range parsed.ByClass {
		entities = append(entities, classEntities...)
	}

	var groups []*mesh.Group
	for _, e := range entities {
		group, buildErrors := brush.BuildEntity(e, registry, brushOpts, meshOpts)
		for _, be := range buildErrors {
			fmt.Fprintf(os.Stderr, "build: %v\n", be)
		}
		groups = append(groups, group)
	}

	if err := runViewer(groups, registry); err != nil {
		fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		os.Exit(1)
	}
}

func runViewer(groups []*mesh.Group, registry *texture.Registry) error {
	config := render.DefaultConfig()
	engine, err := render.NewEngine(config)
	if err != nil {
		return err
	}
	defer engine.Cleanup()

	if err := engine.LoadShaders(); err != nil {
		return err
	}

	var sets []*render.MeshSet
	colors := map[texture.ID]mgl32.Vec3{}
	for _, group := range groups {
		sets = append(sets, render.NewMeshSet(group))
		for _, acc := range group.Meshes() {
			colors[acc.Texture] = colorForTexture(acc.Texture)
		}
	}
	defer func() {
		for _, s := range sets {
			s.Cleanup()
		}
	}()

	engine.SetCursorMode(true)
	frameCamera(engine.GetCamera(), groups)

	engine.Run(nil, func() {
		engine.UseBrushShader()
		shader := engine.Shader()
		for _, set := range sets {
			for _, m := range set.Meshes() {
				shader.SetVec3("uTextureColor", colors[texture.ID(m.TextureID)])
				m.Draw()
			}
		}
	})

	return nil
}

// frameCamera points cam at the center of groups' combined bounding box from
// a fixed diagonal offset, so the viewer opens looking at the loaded map
// instead of the engine's default fixed position. A map with no triangulated
// geometry leaves the camera at the engine's default.
func frameCamera(cam *render.Camera, groups []*mesh.Group) {
	min, max, ok := boundsOf(groups)
	if !ok {
		return
	}

	center := min.Add(max).Mul(0.5)
	radius := max.Sub(min).Len()
	if radius < 1 {
		radius = 1
	}

	eye := center.Add(mgl32.Vec3{radius, radius * 0.6, radius})
	front := center.Sub(eye).Normalize()

	cam.SetPosition(eye)
	pitch := float32(math.Asin(float64(front.Y()))) * 180 / math.Pi
	yaw := float32(math.Atan2(float64(front.Z()), float64(front.X()))) * 180 / math.Pi
	cam.SetRotation(yaw, pitch)
}

// boundsOf returns the axis-aligned bounding box of every vertex across
// every group's meshes, and false if no group contributed any geometry.
func boundsOf(groups []*mesh.Group) (min, max mgl32.Vec3, ok bool) {
	for _, group := range groups {
		for _, acc := range group.Meshes() {
			for _, p := range acc.Positions {
				if !ok {
					min, max = p, p
					ok = true
					continue
				}
				min = componentMin(min, p)
				max = componentMax(max, p)
			}
		}
	}
	return min, max, ok
}

func componentMin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		math32Min(a.X(), b.X()),
		math32Min(a.Y(), b.Y()),
		math32Min(a.Z(), b.Z()),
	}
}

func componentMax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		math32Max(a.X(), b.X()),
		math32Max(a.Y(), b.Y()),
		math32Max(a.Z(), b.Z()),
	}
}

func math32Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func math32Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// colorForTexture derives a stable, visually distinct color from a texture
// identity for the demo's flat-shaded render (no image loading — spec.md
// §1's texture-image-loading Non-goal).
func colorForTexture(id texture.ID) mgl32.Vec3 {
	r := float32((id>>16)&0xFF) / 255
	g := float32((id>>8)&0xFF) / 255
	b := float32(id&0xFF) / 255
	return mgl32.Vec3{0.3 + 0.7*r, 0.3 + 0.7*g, 0.3 + 0.7*b}
}
