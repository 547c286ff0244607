// Package brush drives the clipper and mesher across a parsed brush/entity,
// the spec.md §4.F "brush driver" component: seed a cube, clip it by every
// face plane, then triangulate and group the result.
package brush

import (
	"log/slog"

	"brushkit/internal/core/brep"
	"brushkit/internal/core/errs"
	"brushkit/internal/core/geom"
	"brushkit/internal/core/mapfile"
	"brushkit/internal/core/mesh"
	"brushkit/internal/core/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// Options configures the brush driver. CoordinateSwap answers spec.md §9's
// Z-up/Y-up Open Question: off by default, the spec does not mandate it.
type Options struct {
	// WorldBound is the half-extent of the seed cube every brush starts
	// from (spec.md §4.F step 1). Must exceed the largest coordinate any
	// brush face plane can produce, or clipping silently truncates
	// geometry the source map intended to keep.
	WorldBound float32

	// CoordinateSwap exchanges Y and Z on every vertex and basis vector
	// consumed from the map source (which is Z-up), for callers whose
	// renderer uses a Y-up convention. Off by default.
	CoordinateSwap bool
}

// DefaultOptions returns WorldBound large enough for typical map scales and
// no coordinate swap.
func DefaultOptions() Options {
	return Options{WorldBound: 1 << 16, CoordinateSwap: false}
}

func (o Options) swap(v mgl32.Vec3) mgl32.Vec3 {
	if !o.CoordinateSwap {
		return v
	}
	return mgl32.Vec3{v.X(), v.Z(), v.Y()}
}

// BuildBrush seeds a cube and clips it by every one of brush's face planes
// in order (spec.md §4.F). brushIndex identifies the brush in any
// InvariantViolation error and log line. The returned store's non-clipped
// faces carry a *mesh.UVProjection in their Data field, ready for
// TriangulateFace.
func BuildBrush(b mapfile.Brush, registry *texture.Registry, opts Options, brushIndex int) (*brep.Store, error) {
	store := brep.New()
	half := opts.WorldBound
	store.SeedCube(mgl32.Vec3{-half, -half, -half}, mgl32.Vec3{half, half, half})

	for _, mf := range b.Faces {
		p1 := opts.swap(mf.P1)
		p2 := opts.swap(mf.P2)
		p3 := opts.swap(mf.P3)
		plane := geom.PlaneFromPoints(p1, p2, p3)
		if opts.CoordinateSwap {
			// Exchanging two axes mirrors the points, which would flip the
			// cross-product normal; taking p2 and p3 in the other order keeps
			// it pointing out of the brush.
			plane = geom.PlaneFromPoints(p1, p3, p2)
		}

		data := &mesh.UVProjection{
			Texture: registry.Intern(mf.Texture),
			U:       opts.swap(mf.U),
			V:       opts.swap(mf.V),
			SU:      mf.ScaleU,
			SV:      mf.ScaleV,
			OU:      mf.OffsetU,
			OV:      mf.OffsetV,
		}

		if err := store.Clip(plane, data, brushIndex); err != nil {
			slog.Error("brush clip failed", "brush", brushIndex, "error", err)
			return store, err
		}
	}

	if !hasNonClippedFace(store) {
		if allVerticesClipped(store) {
			// Every vertex of the seed cube fell outside some plane's
			// half-space: spec.md §8 scenario 3 and §4.F's literal
			// "empty intersection" wording both name this EmptyPolytope,
			// not DegenerateBrush.
			slog.Warn("brush clipped to nothing", "brush", brushIndex)
			return store, errs.Empty(brushIndex, "every vertex was clipped away")
		}
		// Faces collapsed to nothing despite surviving vertices: the
		// planes given don't bound a consistent solid (spec.md §7's
		// "fewer than four non-parallel planes, or planes that together
		// bound no volume").
		slog.Warn("brush produced no geometry", "brush", brushIndex)
		return store, errs.Degenerate(brushIndex, "no non-clipped faces remain after clipping")
	}

	return store, nil
}

func hasNonClippedFace(store *brep.Store) bool {
	for _, f := range store.Faces {
		if !f.Clipped {
			return true
		}
	}
	return false
}

func allVerticesClipped(store *brep.Store) bool {
	for _, v := range store.Vertices {
		if !v.Clipped {
			return false
		}
	}
	return true
}

// BuildEntity runs BuildBrush over every brush in e and triangulates the
// results into one shared per-texture Group (spec.md §4.F's build_entity).
// DegenerateBrush and InvariantViolation failures for individual brushes are
// collected and returned alongside a best-effort Group, per spec.md §7's
// per-brush try/continue recovery policy.
func BuildEntity(e mapfile.Entity, registry *texture.Registry, brushOpts Options, meshOpts mesh.Options) (*mesh.Group, []error) {
	group := mesh.NewGroup()
	var errList []error

	for i, b := range e.Brushes {
		store, err := BuildBrush(b, registry, brushOpts, i)
		if err != nil {
			errList = append(errList, err)
			continue
		}

		emitted := false
		for faceIdx, f := range store.Faces {
			if f.Clipped {
				continue
			}
			if mesh.TriangulateFace(store, faceIdx, group, meshOpts) {
				emitted = true
			}
		}
		if !emitted {
			// BuildBrush already guarantees at least one non-clipped face, but
			// that face can still fail to triangulate (a coplanar leftover
			// ring with fewer than 3 vertices, or a face whose Data was never
			// attached) — a numerically degenerate brush that is structurally
			// fine. Report it the same way as a fully-clipped one: the
			// entity gains no geometry from this brush either way.
			slog.Warn("brush contributed no triangulated faces", "brush", i)
			errList = append(errList, errs.Empty(i, "clipper left no triangulatable face"))
		}
	}

	return group, errList
}
