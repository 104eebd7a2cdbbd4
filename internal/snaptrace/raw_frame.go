package snaptrace

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// SaveRawRGB64 dumps the linear radiance of the last sample: a header of W and H as
// little-endian int32, then W*H*3 little-endian float64 (row-major, RGB).
func (t *PathTracer) SaveRawRGB64(path string) error {
	// Use 64-bit multiply to avoid overflow.
	exp64 := int64(t.W) * int64(t.H) * 3
	if int64(len(t.Buf)) != exp64 {
		return fmt.Errorf("Buf length mismatch: got %d, expected %d (W*H*3)", len(t.Buf), exp64)
	}

	// Make sure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, int32(t.W)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(t.H)); err != nil {
		return err
	}
	if exp64 > 0 {
		if err := binary.Write(w, binary.LittleEndian, t.Buf); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
