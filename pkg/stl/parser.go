package stl

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/powdercalc/pkg/geometry"
)

// Parse reads an STL file and returns a Model.
// Binary files are preferred; a file is read as ASCII only when IsASCII
// accepts it.
func Parse(filename string) (*Model, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	model, err := ParseBytes(buf)
	if err != nil {
		return nil, err
	}
	model.Size = int64(len(buf))
	return model, nil
}

// ParseBytes decodes an STL buffer in either format
func ParseBytes(buf []byte) (*Model, error) {
	if IsASCII(buf) {
		return parseASCII(buf)
	}

	triangles, err := Decode(buf)
	if err != nil {
		return nil, err
	}
	return &Model{
		Name:      headerName(buf),
		Size:      int64(len(buf)),
		Triangles: triangles,
	}, nil
}

// asciiProbeSize is how much of a buffer IsASCII inspects for binary bytes.
const asciiProbeSize = 512

// IsASCII reports whether buf looks like an ASCII STL file. Many exporters
// write "solid" into binary headers, so the buffer must also be text and
// contain a facet or endsolid keyword.
func IsASCII(buf []byte) bool {
	if !bytes.HasPrefix(buf, []byte("solid")) {
		return false
	}
	if count, err := TriangleCount(buf); err == nil && len(buf) == dataOffset+RecordSize*count {
		return false
	}
	for _, b := range buf[:min(len(buf), asciiProbeSize)] {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}
	return bytes.Contains(buf, []byte("facet")) || bytes.Contains(buf, []byte("endsolid"))
}

func headerName(buf []byte) string {
	header := bytes.TrimRight(buf[:HeaderSize], "\x00 ")
	return strings.TrimSpace(string(header))
}

// parseASCII parses the "solid/facet/vertex/endfacet" text form
func parseASCII(buf []byte) (*Model, error) {
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	model := &Model{Size: int64(len(buf))}

	var vertices []geometry.Vector3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs three coordinates", ErrMalformed, line)
			}
			var coords [3]float64
			for i := range coords {
				v, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
				}
				coords[i] = v
			}
			vertices = append(vertices, geometry.NewVector3(coords[0], coords[1], coords[2]))

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrMalformed, line, len(vertices))
			}
			if len(model.Triangles) == MaxTriangles {
				return nil, fmt.Errorf("%w: more than %d facets, use a decimated model", ErrTooLarge, MaxTriangles)
			}
			model.Triangles = append(model.Triangles, geometry.NewTriangle(vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	if len(model.Triangles) == 0 {
		return nil, fmt.Errorf("%w: no facets in ASCII STL", ErrMalformed)
	}

	return model, nil
}
