package resizer

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// codec reads and writes one image format.
type codec struct {
	name   string
	decode func(r io.Reader) (image.Image, error)
	encode func(w io.Writer, img image.Image) error
}

// decoders are picked by extension, never by sniffing: tga registers with
// the image package under an empty magic string and would claim every file.
var decoders = map[imaging.Format]func(r io.Reader) (image.Image, error){
	imaging.JPEG: jpeg.Decode,
	imaging.PNG:  png.Decode,
	imaging.GIF:  gif.Decode,
	imaging.BMP:  bmp.Decode,
	imaging.TIFF: tiff.Decode,
}

// codecFor picks the codec for a file extension such as ".tga" or "png".
func codecFor(ext string) (codec, error) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	if ext == ".tga" {
		return codec{
			name:   "TGA",
			decode: tga.Decode,
			encode: tga.Encode,
		}, nil
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return codec{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	decode, ok := decoders[format]
	if !ok {
		return codec{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return codec{
		name:   format.String(),
		decode: decode,
		encode: func(w io.Writer, img image.Image) error {
			return imaging.Encode(w, img, format)
		},
	}, nil
}
