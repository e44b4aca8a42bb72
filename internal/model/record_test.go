package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_UploadedText(t *testing.T) {
	assert.Equal(t, "-", (*Record)(nil).UploadedText())
	assert.Equal(t, "-", (&Record{}).UploadedText())
	assert.Equal(t, "a.png\nb.png", (&Record{Paths: []string{"a.png", "b.png"}}).UploadedText())
}

func TestFields(t *testing.T) {
	fields := Fields("uploads/")

	files := fields[KindFiles]
	assert.Equal(t, "records_with_files", files.Table)
	assert.Equal(t, "files", files.Column)
	assert.Equal(t, ElementGeneric, files.Element)
	assert.Equal(t, "uploads/c.txt", files.UploadTo(&Record{}, "c.txt"))

	images := fields[KindImages]
	assert.Equal(t, "images", images.Column)
	assert.Equal(t, ElementImage, images.Element)
	assert.Equal(t, "image", images.Element.String())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("images")
	assert.NoError(t, err)
	assert.Equal(t, KindImages, k)

	_, err = ParseKind("videos")
	assert.Error(t, err)
}
