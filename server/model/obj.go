// Package model loads the Wavefront OBJ meshes shown in the menu.
package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/mo-shahab/go-pong/server/geom"
)

var (
	ErrModelNotFound  = errors.New("model not found")
	ErrMalformedModel = errors.New("malformed model")
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []geom.Vec3
	Faces    [][3]int
}

// Bounds returns the smallest box holding every vertex.
func (m *Mesh) Bounds() geom.Box {
	if len(m.Vertices) == 0 {
		return geom.Box{}
	}
	lo := geom.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := geom.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Vertices {
		lo = geom.Vec3{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = geom.Vec3{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	return geom.Box{Center: lo.Add(hi).Scale(0.5), Half: hi.Sub(lo).Scale(0.5)}
}

// Load reads and parses an OBJ file from fsys.
func Load(fsys fs.FS, name string) (*Mesh, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
		}
		return nil, fmt.Errorf("open model %s: %w", name, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Parse reads vertex positions and faces. Polygons are split into fans;
// texture coordinates, normals, groups and materials are ignored.
func Parse(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedModel, line, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			if err := m.addFace(fields[1:]); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedModel, line, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrMalformedModel)
	}
	return m, nil
}

func parseVertex(fields []string) (geom.Vec3, error) {
	if len(fields) < 3 {
		return geom.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geom.Vec3{}, err
		}
		c[i] = f
	}
	return geom.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func (m *Mesh) addFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs 3 vertices, got %d", len(fields))
	}
	idx := make([]int, len(fields))
	for i, f := range fields {
		// v, v/vt, v//vn and v/vt/vn all start with the position index
		if slash := strings.IndexByte(f, '/'); slash >= 0 {
			f = f[:slash]
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return err
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += len(m.Vertices)
		default:
			return errors.New("vertex index 0")
		}
		if n < 0 || n >= len(m.Vertices) {
			return fmt.Errorf("vertex index %s out of range", fields[i])
		}
		idx[i] = n
	}
	for i := 1; i+1 < len(idx); i++ {
		m.Faces = append(m.Faces, [3]int{idx[0], idx[i], idx[i+1]})
	}
	return nil
}
