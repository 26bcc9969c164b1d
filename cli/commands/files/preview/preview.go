package preview

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/qeesung/image2ascii/convert"
)

type Kind int

const (
	TooLarge Kind = iota
	Text
	Image
	Binary
)

var imgExts = [...]string{
	".jpg", ".jpeg", ".png",
}

func isLikelyImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, imgExt := range imgExts {
		if ext == imgExt {
			return true
		}
	}

	return false
}

// Classify decides how a file's contents can be shown in the terminal.
// A nil slice means the file was never downloaded because of its size.
func Classify(name string, contents []byte) Kind {
	switch {
	case contents == nil:
		return TooLarge
	case isLikelyImage(name):
		return Image
	case utf8.Valid(contents):
		return Text
	default:
		return Binary
	}
}

func imageToAscii(contents []byte, width, height int) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(contents))
	if err != nil {
		return "", err
	}

	if img.Bounds().Empty() {
		return "", errors.New("image is empty")
	}

	converter := convert.NewImageConverter()
	options := convert.DefaultOptions
	options.Colored = true
	options.FitScreen = false
	options.FixedWidth = width
	options.FixedHeight = height

	return converter.Image2ASCIIString(img, &options), nil
}
