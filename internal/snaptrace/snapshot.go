package snaptrace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Configuration holds the simulation box: [Lx, Ly, Lz, xy, xz, yz], or just [L] for a cube.
type Configuration struct {
	Box []Real `json:"box" yaml:"box"`
}

// Particles holds per-particle data; TypeID[i] labels Position[i] ("A", "B", ...).
type Particles struct {
	Position [][3]Real `json:"position" yaml:"position"`
	TypeID   []string  `json:"typeid" yaml:"typeid"`
}

// Snapshot is one time step of a simulation trajectory.
type Snapshot struct {
	Configuration Configuration `json:"configuration" yaml:"configuration"`
	Particles     Particles     `json:"particles" yaml:"particles"`
}

// Trajectory is the on-disk form: an ordered list of snapshots.
type Trajectory struct {
	Frames []*Snapshot `json:"frames" yaml:"frames"`
}

// L is the box edge length used for camera placement.
func (s *Snapshot) L() Real {
	if len(s.Configuration.Box) == 0 {
		return 0
	}
	return s.Configuration.Box[0]
}

// Validate checks the box and that every particle has a finite position and a type.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot)
	}
	if _, err := boxDims(s.Configuration.Box); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	p := &s.Particles
	if len(p.TypeID) != len(p.Position) {
		return fmt.Errorf("%w: %d positions but %d type ids", ErrInvalidSnapshot, len(p.Position), len(p.TypeID))
	}
	for i, pos := range p.Position {
		if !vecFinite(r3.Vec{X: pos[0], Y: pos[1], Z: pos[2]}) {
			return fmt.Errorf("%w: particle %d has a non-finite position", ErrInvalidSnapshot, i)
		}
	}
	return nil
}

// LoadTrajectory reads a JSON (.json) or YAML (.yaml, .yml) trajectory file.
func LoadTrajectory(path string) ([]*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	frames, err := DecodeTrajectory(bytes.NewReader(data), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	DebugLog("Loaded trajectory from %s: frames=%d", path, len(frames))
	return frames, nil
}

// DecodeTrajectory decodes a trajectory; format is "json", "yaml" or "yml" (a leading dot is ignored).
func DecodeTrajectory(r io.Reader, format string) ([]*Snapshot, error) {
	var tr Trajectory
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		if err := json.NewDecoder(r).Decode(&tr); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&tr); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported trajectory format %q", format)
	}
	for i, f := range tr.Frames {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return tr.Frames, nil
}
