package shader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orrery/internal/engine/gfx/gfxtest"
)

func TestCompileAndBind(t *testing.T) {
	dev := gfxtest.New()
	p, err := NewLibrary("").Compile(dev, Body)
	require.NoError(t, err)
	assert.Equal(t, Body, p.Name())

	pos, err := p.Attribute("aPosition")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pos, int32(0))

	mvp, err := p.Uniform("uMVP")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, mvp, int32(0))

	// Cached lookups return the same slot.
	again, err := p.Uniform("uMVP")
	require.NoError(t, err)
	assert.Equal(t, mvp, again)
}

func TestBindingNotFound(t *testing.T) {
	dev := gfxtest.New()
	p, err := NewLibrary("").Compile(dev, Flat)
	require.NoError(t, err)

	_, err = p.Attribute("aNormal")
	assert.True(t, errors.Is(err, ErrBindingNotFound))
	assert.Contains(t, err.Error(), "aNormal")

	_, err = p.Uniform("uTexture")
	assert.True(t, errors.Is(err, ErrBindingNotFound))

	assert.Equal(t, int32(-1), p.OptionalUniform("uTexture"))
}

func TestCompileError(t *testing.T) {
	dev := gfxtest.New()
	dev.FailCompile = "uAlphaCutoff"

	_, err := NewLibrary("").Compile(dev, Overlay)
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Overlay, ce.Program)
	assert.Equal(t, "fragment", ce.Stage)
	assert.Contains(t, ce.Log, "syntax error")
}

func TestUseActivatesProgram(t *testing.T) {
	dev := gfxtest.New()
	p, err := NewLibrary("").Compile(dev, Flat)
	require.NoError(t, err)

	p.Use()
	assert.Contains(t, dev.Ops, "use 1")
}

func TestReleaseOnce(t *testing.T) {
	dev := gfxtest.New()
	p, err := NewLibrary("").Compile(dev, Background)
	require.NoError(t, err)

	p.Release()
	p.Release()

	programs, _, _ := dev.Live()
	assert.Zero(t, programs)
	assert.Empty(t, dev.DoubleFrees)
}
