package assets

import (
	_ "embed"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed zoha_icon.svg
var iconSVG string

// IconName is the icon theme name the window uses
const IconName = "zoha"

// IconSizes are the sizes installed into the icon theme
var IconSizes = []int{16, 32, 48, 64, 128, 256}

// RenderIcon renders the embedded SVG icon at the specified size
func RenderIcon(size int) (image.Image, error) {
	return renderSVGToSize(iconSVG, size)
}

// renderSVGToSize renders an SVG string to an RGBA image of the specified size
func renderSVGToSize(svgData string, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icon size %d", size)
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("parse icon: %w", err)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	rasterizer := rasterx.NewDasher(size, size, scanner)
	icon.Draw(rasterizer, 1.0)

	return rgba, nil
}

// InstallIcons writes the icon as PNGs into an icon theme layout under root
// (root/hicolor/<n>x<n>/apps/zoha.png) and returns root for use as an icon
// theme search path. Files already present are kept.
func InstallIcons(root string) (string, error) {
	for _, size := range IconSizes {
		dir := filepath.Join(root, "hicolor", fmt.Sprintf("%dx%d", size, size), "apps")
		path := filepath.Join(dir, IconName+".png")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		img, err := RenderIcon(size)
		if err != nil {
			return "", err
		}
		if err := writePNG(path, img); err != nil {
			return "", err
		}
	}
	return root, nil
}

// DefaultIconRoot is where InstallIcons puts the icons by default
func DefaultIconRoot() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, IconName, "icons")
	}
	return filepath.Join(os.TempDir(), IconName+"-icons")
}

func writePNG(path string, img image.Image) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
