package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdrill/weierstrass"
)

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	c, err := cfg.Curve("drill211")
	require.NoError(t, err)
	assert.Equal(t, uint64(211), c.Field().Modulus())
	assert.Equal(t, uint64(4), c.B().Uint64())
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "curves.yaml"))
	require.NoError(t, err)
	require.Len(t, cfg.Curves, 3)
	assert.Equal(t, CurveConfig{Name: "curve97", P: 97, A: 2, B: 3}, cfg.Curves[2])

	c, err := cfg.Curve("curve97")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.A().Uint64())

	_, err = cfg.Curve("missing")
	require.ErrorContains(t, err, `unknown curve "missing"`)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join("testdata", "does-not-exist.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(filepath.Join("testdata", "singular.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, weierstrass.ErrSingularCurve)

	_, err = LoadConfig(filepath.Join("testdata", "duplicate.yaml"))
	require.ErrorContains(t, err, `duplicate curve "drill17"`)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("curves: [name: x"), 0o600))
	_, err = LoadConfig(bad)
	require.ErrorContains(t, err, "decoding config")

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("curves: []\n"), 0o600))
	_, err = LoadConfig(empty)
	require.ErrorContains(t, err, "no curves configured")
}

func TestConfigValidateComposite(t *testing.T) {
	cfg := &Config{Curves: []CurveConfig{{Name: "bad", P: 221, A: 0, B: 1}}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, weierstrass.ErrNotPrime)

	cfg = &Config{Curves: []CurveConfig{{P: 17, A: 0, B: 1}}}
	require.ErrorContains(t, cfg.Validate(), "curve without a name")
}
