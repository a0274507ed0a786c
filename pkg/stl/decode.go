// Package stl decodes STL meshes into triangles.
package stl

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/philipparndt/powdercalc/pkg/geometry"
)

const (
	// HeaderSize is the size of the ignored binary STL header.
	HeaderSize = 80
	// RecordSize is the size of one binary triangle record:
	// normal, three vertices and the attribute byte count.
	RecordSize = 50
	// MaxTriangles is the largest triangle count accepted.
	MaxTriangles = 1_000_000
	// ChunkSize is the number of triangles decoded between progress reports.
	ChunkSize = 10_000
	// YieldThreshold is the triangle count above which chunked decoding
	// yields the processor between chunks.
	YieldThreshold = 50_000

	countOffset = HeaderSize
	dataOffset  = HeaderSize + 4
)

var (
	// ErrTooLarge is returned when the declared triangle count exceeds MaxTriangles.
	ErrTooLarge = errors.New("stl: too many triangles")
	// ErrMalformed is returned when the input is shorter than its header implies
	// or cannot be read as STL at all.
	ErrMalformed = errors.New("stl: malformed input")
)

// Progress reports how far a chunked decode has come.
type Progress struct {
	Done  int
	Total int
}

// TriangleCount reads and validates the header count of a binary STL buffer.
// It fails with ErrTooLarge before looking at any triangle data.
func TriangleCount(buf []byte) (int, error) {
	if len(buf) < dataOffset {
		return 0, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrMalformed, len(buf), dataOffset)
	}
	count := binary.LittleEndian.Uint32(buf[countOffset:dataOffset])
	if count > MaxTriangles {
		return 0, fmt.Errorf("%w: header declares %d triangles (limit %d), use a decimated model", ErrTooLarge, count, MaxTriangles)
	}
	return int(count), nil
}

func checkLength(buf []byte, count int) error {
	want := dataOffset + RecordSize*count
	if len(buf) < want {
		return fmt.Errorf("%w: %d triangles need %d bytes, got %d", ErrMalformed, count, want, len(buf))
	}
	return nil
}

// Decode parses a binary STL buffer into triangles, in file order.
func Decode(buf []byte) ([]geometry.Triangle, error) {
	count, err := TriangleCount(buf)
	if err != nil {
		return nil, err
	}
	if err := checkLength(buf, count); err != nil {
		return nil, err
	}

	triangles := make([]geometry.Triangle, count)
	decodeRange(buf, triangles, 0, count)
	return triangles, nil
}

// DecodeChunks decodes like Decode but in ChunkSize batches. Between batches
// it reports progress to fn (which may be nil), stops if ctx is cancelled or
// fn returns an error, and yields the processor for large meshes.
func DecodeChunks(ctx context.Context, buf []byte, fn func(Progress) error) ([]geometry.Triangle, error) {
	count, err := TriangleCount(buf)
	if err != nil {
		return nil, err
	}
	if err := checkLength(buf, count); err != nil {
		return nil, err
	}

	triangles := make([]geometry.Triangle, count)
	for start := 0; start < count; start += ChunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+ChunkSize, count)
		decodeRange(buf, triangles, start, end)

		if fn != nil {
			if err := fn(Progress{Done: end, Total: count}); err != nil {
				return nil, err
			}
		}
		if end < count && count > YieldThreshold {
			runtime.Gosched()
		}
	}
	return triangles, nil
}

// decodeRange fills dst[start:end] from already length-checked records.
func decodeRange(buf []byte, dst []geometry.Triangle, start, end int) {
	for i := start; i < end; i++ {
		// skip the 12 byte normal
		off := dataOffset + i*RecordSize + 12
		dst[i] = geometry.NewTriangle(
			readVertex(buf[off:]),
			readVertex(buf[off+12:]),
			readVertex(buf[off+24:]),
		)
	}
}

func readVertex(b []byte) geometry.Vector3 {
	return geometry.FromFloat32([3]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
	})
}
