package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Convert the last frame from ARGB bytes to an RGBA image.
func (r *Progressive) Image() (*image.RGBA, error) {
	if r.frame == 0 {
		return nil, ErrNoFrame
	}
	return argbToRGBA(r.pixels, int(r.tracer.Width()), int(r.tracer.Height())), nil
}

func argbToRGBA(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		src := pixels[i*4 : i*4+4]
		dst := img.Pix[i*4 : i*4+4]
		dst[0], dst[1], dst[2], dst[3] = src[1], src[2], src[3], src[0]
	}
	return img
}

// Write the last frame to a file. The format is selected by the file
// extension: png, bmp, tiff or ppm.
func (r *Progressive) Save(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".bmp", ".tif", ".tiff", ".ppm":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedImageType, ext)
	}

	img, err := r.Image()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	switch ext {
	case ".png":
		err = png.Encode(w, img)
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".ppm":
		err = writePPM(w, img)
	}
	if err != nil {
		return fmt.Errorf("renderer: could not encode %s: %w", path, err)
	}
	if err = w.Flush(); err != nil {
		return err
	}

	logger.Noticef("wrote frame to %s", path)
	return nil
}

// Write the last frame as a binary PPM (P6) image.
func (r *Progressive) WritePPM(w io.Writer) error {
	img, err := r.Image()
	if err != nil {
		return err
	}
	return writePPM(w, img)
}

func writePPM(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	row := make([]byte, bounds.Dx()*3)
	for y := 0; y < bounds.Dy(); y++ {
		pix := img.Pix[y*img.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			copy(row[x*3:x*3+3], pix[x*4:x*4+3])
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
