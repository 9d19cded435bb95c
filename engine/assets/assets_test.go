package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/navview/engine/assets/loaders"
	"github.com/spaghettifunk/navview/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newAssetsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "shaders", "geometry.vert.glsl"), "#version 410 core\nvoid main() {}\n")
	writeFile(t, filepath.Join(dir, "shaders", "geometry.frag.glsl"), "#version 410 core\nvoid main() {}\n")
	writeFile(t, filepath.Join(dir, "config", "viewer.toml"), "[camera]\nstep = 3.0\n")
	writeFile(t, filepath.Join(dir, "README"), "not an asset")
	return dir
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, metadata.ResourceTypeConfig, determineAssetType("a/viewer.toml"))
	assert.Equal(t, metadata.ResourceTypeShader, determineAssetType("a/geometry.vert.glsl"))
	assert.Equal(t, metadata.ResourceTypeNone, determineAssetType("a/texture.png"))
}

func TestInitializeIndexesAssets(t *testing.T) {
	dir := newAssetsDir(t)
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Shutdown()

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)

	info, ok := am.Asset(filepath.Join(abs, "shaders", "geometry.frag.glsl"))
	require.True(t, ok)
	assert.Equal(t, metadata.ResourceTypeShader, info.Type)

	info, ok = am.Asset(filepath.Join(abs, "config", "viewer.toml"))
	require.True(t, ok)
	assert.Equal(t, metadata.ResourceTypeConfig, info.Type)

	_, ok = am.Asset(filepath.Join(abs, "README"))
	assert.False(t, ok)
}

func TestLoadShaderSource(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(newAssetsDir(t)))
	defer am.Shutdown()

	src, err := am.LoadShaderSource("geometry.vert")
	require.NoError(t, err)
	assert.Contains(t, src, "#version 410 core")

	_, err = am.LoadShaderSource("missing.vert")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := newAssetsDir(t)
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Shutdown()

	cfg, err := am.LoadConfig(filepath.Join(dir, "config", "viewer.toml"))
	require.NoError(t, err)
	assert.Equal(t, float32(3), cfg.Camera.Step)
}

func TestWatchConfigDeliversReload(t *testing.T) {
	dir := newAssetsDir(t)
	path := filepath.Join(dir, "config", "viewer.toml")

	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Shutdown()
	require.NoError(t, am.WatchConfig(path))

	writeFile(t, path, "[render]\nwireframe = true\n")

	var cfg *loaders.Config
	require.Eventually(t, func() bool {
		select {
		case cfg = <-am.ConfigChanges():
			return cfg.Render.Wireframe
		default:
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)
	assert.True(t, cfg.RenderFlags().Wireframe)
}

func TestShutdownIsIdempotent(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(newAssetsDir(t)))

	require.NoError(t, am.Shutdown())
	require.NoError(t, am.Shutdown())
	assert.Error(t, am.WatchConfig("viewer.toml"))
}

func TestShutdownWithoutInitialize(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	assert.NoError(t, am.Shutdown())
}
