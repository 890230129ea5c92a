package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var shaderSeeds = []string{
	"",
	"void main() {}\n",
	"#version 100\nprecision mediump float;\nvarying vec2 uv;\nuniform sampler2D tex;\nvoid main() { gl_FragColor = texture2D(tex, uv); }\n",
	"attribute vec4 pos;\nuniform mat4 mvp;\nvoid main() { gl_Position = mvp * pos; }\n",
	"struct Light { vec3 dir; float k[2]; } lights[4];\n",
	"#extension GL_OES_standard_derivatives : enable\nfloat f(in float x, out vec2 y);\n",
	"invariant gl_Position;\nconst float a = 1.0, b[2];\n",
	"void main() { for (int i = 0; i < 4; ++i) { if (i == 2) break; else continue; } }\n",
	"void main() { vec4 c = vec4(1.0).xyzw; c.x += 0.5 * (c.y ? 1.0 : 2.0); }\n",
	"/* unterminated comment\n",
	"uniform float x\n",
	"float $bad = 1.0;\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range shaderSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все шейдеры
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".vert", ".frag", ".glsl":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
