package shader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orrery/internal/engine/gfx/gfxtest"
)

func TestBuiltinsCompile(t *testing.T) {
	dev := gfxtest.New()
	lib := NewLibrary("")
	for _, name := range Names() {
		src, err := lib.Load(name)
		require.NoError(t, err, name)
		assert.Contains(t, src.Vertex, "#version 410 core", name)
		assert.Contains(t, src.Fragment, "#version 410 core", name)

		_, err = lib.Compile(dev, name)
		assert.NoError(t, err, name)
	}
}

func TestUnknownProgram(t *testing.T) {
	_, err := NewLibrary("").Load("nebula")
	assert.Error(t, err)
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	custom := "#version 410 core\nuniform vec4 uColor;\nuniform float uPulse;\nout vec4 FragColor;\nvoid main() { FragColor = uColor * uPulse; }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flat.frag"), []byte(custom), 0644))

	src, err := NewLibrary(dir).Load(Flat)
	require.NoError(t, err)
	assert.Equal(t, custom, src.Fragment)
	// The vertex stage still comes from the built-ins.
	assert.Contains(t, src.Vertex, "uMVP")
}

func TestProgramName(t *testing.T) {
	name, ok := programName("/tmp/x/lit.frag")
	assert.True(t, ok)
	assert.Equal(t, "lit", name)

	_, ok = programName("/tmp/x/notes.txt")
	assert.False(t, ok)
}

func TestWatchRequiresDir(t *testing.T) {
	_, err := NewLibrary("").Watch(context.Background())
	assert.Error(t, err)
}

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewLibrary(dir).Watch(context.Background())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "overlay.frag"), []byte("// edited\n"), 0644))

	select {
	case name := <-w.Changes():
		assert.Equal(t, Overlay, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchKeepsEveryProgram(t *testing.T) {
	dir := t.TempDir()
	w, err := NewLibrary(dir).Watch(context.Background())
	require.NoError(t, err)
	defer w.Close()

	// Many writes to one program must not crowd out a later one.
	for i := 0; i < 40; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "lit.frag"), []byte("// edited\n"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "body.vert"), []byte("// edited\n"), 0644))

	seen := make(map[string]bool)
	deadline := time.After(5 * time.Second)
	for !seen[Lit] || !seen[Body] {
		select {
		case name := <-w.Changes():
			seen[name] = true
		case <-deadline:
			t.Fatalf("changes reported: %v", seen)
		}
	}
}

func TestPendingSet(t *testing.T) {
	var p pendingSet

	_, ok := p.peek()
	assert.False(t, ok)

	assert.True(t, p.push(Lit))
	assert.True(t, p.push(Body))
	assert.False(t, p.push(Lit))

	name, ok := p.peek()
	require.True(t, ok)
	assert.Equal(t, Lit, name)
	p.pop()

	// Once received, a program can be queued again.
	assert.True(t, p.push(Lit))

	var order []string
	for {
		name, ok := p.peek()
		if !ok {
			break
		}
		order = append(order, name)
		p.pop()
	}
	assert.Equal(t, []string{Body, Lit}, order)
}
