package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, TooLarge, Classify("big.bin", nil))
	assert.Equal(t, Text, Classify("notes.txt", []byte("hello")))
	assert.Equal(t, Text, Classify("empty.txt", []byte{}))
	assert.Equal(t, Image, Classify("photo.JPG", []byte{0xff, 0xd8}))
	assert.Equal(t, Binary, Classify("blob.bin", []byte{0xff, 0xfe, 0xfd}))
}

func TestImageToAscii(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	ascii, err := imageToAscii(buf.Bytes(), 4, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, ascii)

	_, err = imageToAscii([]byte("not an image"), 4, 4)
	assert.Error(t, err)
}
