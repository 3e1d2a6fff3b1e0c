package assets

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIcon(t *testing.T) {
	img, err := RenderIcon(64)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	// the body of the icon is painted, the corner is not
	_, _, _, a := img.At(32, 40).RGBA()
	assert.NotZero(t, a)
	_, _, _, a = img.At(0, 0).RGBA()
	assert.Zero(t, a)
}

func TestRenderIconRejectsBadInput(t *testing.T) {
	_, err := RenderIcon(0)
	assert.Error(t, err)
	_, err = RenderIcon(-16)
	assert.Error(t, err)
}

func TestInstallIcons(t *testing.T) {
	root := t.TempDir()
	got, err := InstallIcons(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	for _, size := range IconSizes {
		path := filepath.Join(root, "hicolor", fmt.Sprintf("%dx%d", size, size), "apps", IconName+".png")
		f, err := os.Open(path)
		require.NoError(t, err, path)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, size, img.Bounds().Dx())
	}

	// a second install keeps existing files
	_, err = InstallIcons(root)
	require.NoError(t, err)
}
