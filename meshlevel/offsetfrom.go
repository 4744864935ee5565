package meshlevel

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mastercactapus/gturtle/coord"
)

// OffsetFrom returns a copy of points with z subtracted from each height.
func OffsetFrom(z float64, points []coord.Point) []coord.Point {
	p := make([]coord.Point, len(points))
	copy(p, points)

	for i := range p {
		p[i].Z -= z
	}
	return p
}

// ReadProbes decodes a JSON array of probe points.
func ReadProbes(r io.Reader) ([]coord.Point, error) {
	var points []coord.Point
	err := json.NewDecoder(r).Decode(&points)
	if err != nil {
		return nil, fmt.Errorf("decode probes: %w", err)
	}
	if len(points) == 0 {
		return nil, errors.New("no probe points")
	}
	return points, nil
}

// LoadMesh reads the probe file at path and builds a mesh relative to the
// first probe, so printing at Z0 over that point needs no correction.
func LoadMesh(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	points, err := ReadProbes(f)
	if err != nil {
		return nil, err
	}

	return NewMesh(OffsetFrom(points[0].Z, points))
}
