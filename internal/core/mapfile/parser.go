package mapfile

import (
	"brushkit/internal/core/errs"
	"brushkit/internal/core/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// BrushFace is one parsed face line: three winding points plus Valve-220 UV
// basis data (spec.md §6). The plane itself is derived by the brush driver
// via geom.PlaneFromPoints, not stored here, keeping this package free of a
// dependency on the brep/geom packages.
type BrushFace struct {
	P1, P2, P3 mgl32.Vec3
	Texture    string
	U          mgl32.Vec3
	OffsetU    float32
	V          mgl32.Vec3
	OffsetV    float32
	Rotation   float32
	ScaleU     float32
	ScaleV     float32
}

// Brush is an ordered list of bounding half-space faces.
type Brush struct {
	Faces []BrushFace
}

// Entity is a brace-scoped group of properties and brushes.
type Entity struct {
	ClassName  string
	Properties map[string]string
	Brushes    []Brush
}

// Map is the result of parsing one ".map" source: a single folded world
// entity (worldspawn + func_group brushes) plus every other entity filed by
// classname (spec.md §6, "Special classnames").
type Map struct {
	World       Entity
	ByClass     map[string][]Entity
	NumEntities int
}

// scope mirrors pt_map.h's ptm__scope_type: a line's meaning depends on
// whether we're between map/entity/brace braces.
type scope int

const (
	scopeMap scope = iota
	scopeEntity
	scopeBrush
)

// stringCache interns parsed tokens by FNV-32 hash so repeated texture
// names and property values across a whole map source share one backing
// string, mirroring pt_map.h's ptm__string_cache (SPEC_FULL.md §6/§12).
type stringCache struct {
	values map[texture.ID]string
}

func newStringCache() *stringCache {
	return &stringCache{values: make(map[texture.ID]string)}
}

func (c *stringCache) intern(s string) string {
	id := texture.Hash(s)
	if existing, ok := c.values[id]; ok {
		if existing != s {
			return s // hash collision with a different string: not shared
		}
		return existing
	}
	c.values[id] = s
	return s
}

// Parse tokenizes source into a Map. Malformed lines produce an
// errs.Error{Kind: MalformedInput} appended to the returned error slice;
// parsing continues at the next line (pt_map.h's own recovery behavior,
// since it falls through to "consume to next newline" for any line type it
// doesn't recognize — this parser extends that tolerance to lines it does
// recognize but fails to fully parse).
func Parse(source string) (*Map, []error) {
	l := newLexer(source)
	cache := newStringCache()

	m := &Map{ByClass: make(map[string][]Entity)}
	var errList []error

	currentScope := scopeMap
	var entity *Entity
	var brush *Brush

	for !l.eof() {
		switch l.identifyLine() {
		case lineInvalid, lineComment:
			// Nothing to do.

		case lineScopeStart:
			switch currentScope {
			case scopeMap:
				entity = &Entity{Properties: make(map[string]string)}
				currentScope = scopeEntity
			case scopeEntity:
				brush = &Brush{}
				currentScope = scopeBrush
			case scopeBrush:
				errList = append(errList, errs.Malformed(l.offset(), "brush scope cannot nest further"))
			}

		case lineScopeEnd:
			switch currentScope {
			case scopeEntity:
				finishEntity(m, entity)
				entity = nil
				currentScope = scopeMap
			case scopeBrush:
				entity.Brushes = append(entity.Brushes, *brush)
				brush = nil
				currentScope = scopeEntity
			case scopeMap:
				errList = append(errList, errs.Malformed(l.offset(), "unmatched closing brace"))
			}

		case lineProperty:
			if currentScope != scopeEntity {
				errList = append(errList, errs.Malformed(l.offset(), "property line outside entity scope"))
				break
			}
			if err := parseProperty(l, entity, cache); err != nil {
				errList = append(errList, err)
			}

		case lineBrushFace:
			if currentScope != scopeBrush {
				errList = append(errList, errs.Malformed(l.offset(), "face line outside brush scope"))
				break
			}
			face, err := parseBrushFace(l, cache)
			if err != nil {
				errList = append(errList, err)
				break
			}
			brush.Faces = append(brush.Faces, face)
		}

		l.consumeToNextLine()
	}

	return m, errList
}

// tbPrefix marks editor-internal keys dropped at parse time (spec.md §6,
// "Properties with keys beginning _tb are editor-internal and must be
// dropped"; pt_map.h itself filters more broadly on any leading underscore,
// but this parser follows the narrower rule the distilled spec states).
const tbPrefix = "_tb"

func parseProperty(l *lexer, entity *Entity, cache *stringCache) error {
	key, err := l.consumeString('"')
	if err != nil {
		return err
	}
	value, err := l.consumeString('"')
	if err != nil {
		return err
	}
	if len(key) >= len(tbPrefix) && key[:len(tbPrefix)] == tbPrefix {
		return nil
	}
	entity.Properties[cache.intern(key)] = cache.intern(value)
	return nil
}

func parseBrushFace(l *lexer, cache *stringCache) (BrushFace, error) {
	var f BrushFace

	points := make([]mgl32.Vec3, 3)
	for i := 0; i < 3; i++ {
		if err := l.consumeUntilAfter('('); err != nil {
			return f, err
		}
		x, err := l.consumeNumber()
		if err != nil {
			return f, err
		}
		y, err := l.consumeNumber()
		if err != nil {
			return f, err
		}
		z, err := l.consumeNumber()
		if err != nil {
			return f, err
		}
		if err := l.consumeUntilAfter(')'); err != nil {
			return f, err
		}
		points[i] = mgl32.Vec3{x, y, z}
	}
	f.P1, f.P2, f.P3 = points[0], points[1], points[2]

	texName, err := l.consumeWord()
	if err != nil {
		return f, err
	}
	f.Texture = cache.intern(texName)

	basis := make([]mgl32.Vec3, 2)
	offsets := make([]float32, 2)
	for i := 0; i < 2; i++ {
		if err := l.consumeUntilAfter('['); err != nil {
			return f, err
		}
		x, err := l.consumeNumber()
		if err != nil {
			return f, err
		}
		y, err := l.consumeNumber()
		if err != nil {
			return f, err
		}
		z, err := l.consumeNumber()
		if err != nil {
			return f, err
		}
		offset, err := l.consumeNumber()
		if err != nil {
			return f, err
		}
		if err := l.consumeUntilAfter(']'); err != nil {
			return f, err
		}
		basis[i] = mgl32.Vec3{x, y, z}
		offsets[i] = offset
	}
	f.U, f.OffsetU = basis[0], offsets[0]
	f.V, f.OffsetV = basis[1], offsets[1]

	f.Rotation, err = l.consumeNumber()
	if err != nil {
		return f, err
	}
	f.ScaleU, err = l.consumeNumber()
	if err != nil {
		return f, err
	}
	f.ScaleV, err = l.consumeNumber()
	if err != nil {
		return f, err
	}
	return f, nil
}

// finishEntity folds worldspawn/func_group brushes into the map's single
// world entity and files everything else by classname (spec.md §6).
func finishEntity(m *Map, entity *Entity) {
	m.NumEntities++
	classname := entity.Properties["classname"]

	switch classname {
	case "worldspawn", "func_group":
		m.World.Brushes = append(m.World.Brushes, entity.Brushes...)
		if classname == "worldspawn" {
			for k, v := range entity.Properties {
				if _, exists := m.World.Properties[k]; !exists {
					if m.World.Properties == nil {
						m.World.Properties = make(map[string]string)
					}
					m.World.Properties[k] = v
				}
			}
		}
	default:
		m.ByClass[classname] = append(m.ByClass[classname], *entity)
	}
}
