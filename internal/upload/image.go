package upload

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var imageMIME = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// verifyImage decodes the whole file, attaches the decoded image and its MIME type, and
// rewinds the stream so the save step reads it from the start. The header is checked
// against maxPixels first so an oversized image is refused before any pixel is allocated.
func verifyImage(f *File, maxPixels int64) error {
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return newError(CodeInvalidImage, err)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return newError(CodeInvalidImage, fmt.Errorf("image is %dx%d, over %d pixels", cfg.Width, cfg.Height, maxPixels))
	}
	if err := f.rewind(); err != nil {
		return newError(CodeInvalidImage, err)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return newError(CodeInvalidImage, err)
	}
	f.Image = img
	f.Format = format
	f.ContentType = imageMIME[format]
	if err := f.rewind(); err != nil {
		return newError(CodeInvalidImage, err)
	}
	return nil
}
