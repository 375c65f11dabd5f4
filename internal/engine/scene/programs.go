package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/logger"
)

// programSet owns the compiled programs of one surface. Renderers look
// programs up by name at draw time so a reload is picked up on the next
// draw.
type programSet struct {
	dev    gfx.Device
	lib    *shader.Library
	byName map[string]*shader.Program
}

func newProgramSet(dev gfx.Device, lib *shader.Library) *programSet {
	return &programSet{dev: dev, lib: lib, byName: make(map[string]*shader.Program)}
}

func (ps *programSet) load(names ...string) error {
	for _, name := range names {
		if _, ok := ps.byName[name]; ok {
			continue
		}
		p, err := ps.lib.Compile(ps.dev, name)
		if err != nil {
			return err
		}
		ps.byName[name] = p
	}
	return nil
}

func (ps *programSet) get(name string) (*shader.Program, error) {
	p, ok := ps.byName[name]
	if !ok {
		return nil, fmt.Errorf("program %q not loaded", name)
	}
	return p, nil
}

// reload recompiles a loaded program. On failure the old program stays.
func (ps *programSet) reload(name string) error {
	old, ok := ps.byName[name]
	if !ok {
		return nil
	}
	p, err := ps.lib.Compile(ps.dev, name)
	if err != nil {
		return err
	}
	ps.byName[name] = p
	old.Release()

	logger.Info("shader reloaded", zap.String("program", name))
	return nil
}

func (ps *programSet) release() {
	for _, p := range ps.byName {
		p.Release()
	}
	ps.byName = make(map[string]*shader.Program)
}
