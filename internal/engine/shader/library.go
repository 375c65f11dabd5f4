package shader

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Faultbox/orrery/internal/engine/gfx"
)

//go:embed glsl/*.vert glsl/*.frag
var builtin embed.FS

// Program names shipped with the binary.
const (
	Body       = "body"
	Lit        = "lit"
	Flat       = "flat"
	Background = "background"
	Overlay    = "overlay"
)

// Names lists every built-in program.
func Names() []string {
	return []string{Body, Lit, Flat, Background, Overlay}
}

// Source is a vertex/fragment pair.
type Source struct {
	Vertex   string
	Fragment string
}

// Library resolves program sources. Files named <program>.vert and
// <program>.frag in the override directory replace the built-in ones.
type Library struct {
	dir string
}

// NewLibrary creates a library. An empty dir means built-ins only.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Load returns the sources for the named program.
func (l *Library) Load(name string) (Source, error) {
	vert, err := l.read(name + ".vert")
	if err != nil {
		return Source{}, err
	}
	frag, err := l.read(name + ".frag")
	if err != nil {
		return Source{}, err
	}
	return Source{Vertex: vert, Fragment: frag}, nil
}

// Compile loads and compiles the named program.
func (l *Library) Compile(dev gfx.Device, name string) (*Program, error) {
	src, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	return Compile(dev, name, src.Vertex, src.Fragment)
}

func (l *Library) read(file string) (string, error) {
	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, file))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("reading shader override %s: %w", file, err)
		}
	}

	data, err := builtin.ReadFile("glsl/" + file)
	if err != nil {
		return "", fmt.Errorf("unknown shader source %s: %w", file, err)
	}
	return string(data), nil
}
