package driver

import (
	"path/filepath"
	"strings"
)

// Stage is the shader stage guessed from the file name.
type Stage uint8

const (
	StageUnknown Stage = iota
	StageVertex
	StageFragment
	StageGeometry
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// StageFromPath maps .vert/.vs, .frag/.fs and .geom/.gs; anything else,
// .glsl included, is StageUnknown.
func StageFromPath(path string) Stage {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".vs":
		return StageVertex
	case ".frag", ".fs":
		return StageFragment
	case ".geom", ".gs":
		return StageGeometry
	default:
		return StageUnknown
	}
}
