// Package imageio decodes scene-file image assets (skybox faces,
// material textures) into texture.Texture2D and encodes the final
// raster to JPEG (spec §6 "8-bit RGBA raster encoded as JPEG at quality
// 100"). Grounded in the retrieved teacher's loaders.LoadImage, widened
// from a Vec3-array result to the byte-packed Texture2D this spec's
// material/texture layer consumes.
package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder

	"github.com/anvilrender/tracer/pkg/texture"
)

// skyboxFaceNames is the conventional face-file naming LoadSkyboxDir looks
// for, in the +X,-X,+Y,-Y,+Z,-Z order GLOBALS.Skybox lists faces in.
var skyboxFaceNames = [6]string{"px", "nx", "py", "ny", "pz", "nz"}

// skyboxExtensions are tried in order for each conventional face name.
var skyboxExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}

// Load decodes a PNG, JPEG, BMP, or TIFF file (auto-detected from its
// header) into a byte-packed, interleaved RGBA texture.
func Load(path string) (*texture.Texture2D, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}

	tex, err := fromImage(img)
	if err != nil {
		return nil, fmt.Errorf("imageio: %s: %w", path, err)
	}
	return tex, nil
}

func fromImage(img image.Image) (*texture.Texture2D, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]uint8, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*width + x) * 4
			pixels[i+0] = uint8(r >> 8)
			pixels[i+1] = uint8(g >> 8)
			pixels[i+2] = uint8(b >> 8)
			pixels[i+3] = uint8(a >> 8)
		}
	}

	return texture.NewByteTexture2D(width, height, pixels)
}

// LoadSkybox decodes the six cube-map face files, in the +X,-X,+Y,-Y,+Z,-Z
// order the scene file lists them in (spec §6 GLOBALS.Skybox), and
// validates they share dimensions and format before assembling a CubeMap.
func LoadSkybox(paths [6]string) (*texture.CubeMap, error) {
	var faces [6]*texture.Texture2D
	for i, p := range paths {
		t, err := Load(p)
		if err != nil {
			return nil, fmt.Errorf("imageio: skybox face %d: %w", i, err)
		}
		faces[i] = t
	}
	return texture.NewCubeMap(faces)
}

// LoadSkyboxDir loads a skybox from a directory of conventionally named
// face files (px/nx/py/ny/pz/nz, spec §6 "-Skybox <path>"), as an
// alternative to the scene file's explicit six-path GLOBALS.Skybox list.
func LoadSkyboxDir(dir string) (*texture.CubeMap, error) {
	var paths [6]string
	for i, name := range skyboxFaceNames {
		found := ""
		for _, ext := range skyboxExtensions {
			candidate := filepath.Join(dir, name+ext)
			if _, err := os.Stat(candidate); err == nil {
				found = candidate
				break
			}
		}
		if found == "" {
			return nil, fmt.Errorf("imageio: no %s.{jpg,jpeg,png,bmp,tif,tiff} face found in %s", name, dir)
		}
		paths[i] = found
	}
	return LoadSkybox(paths)
}

// SaveJPEG encodes a rendered raster to a file at quality 100 (spec §6
// "render-to-file output").
func SaveJPEG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: 100}); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}
