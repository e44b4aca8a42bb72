package upload

import (
	"errors"
	"image"
	"io"
)

// File is one validated member of a batch. It reads and seeks over the uploaded bytes.
type File struct {
	Name        string
	Size        int64
	ContentType string
	// Format and Image are set for image fields only.
	Format string
	Image  image.Image

	content io.ReadSeeker
	closer  io.Closer
}

func (f *File) Read(p []byte) (int, error) {
	if f.content == nil {
		return 0, io.EOF
	}
	return f.content.Read(p)
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.content == nil {
		return 0, errors.New("upload: file has no content")
	}
	return f.content.Seek(offset, whence)
}

// Close releases the underlying stream, if it needs releasing.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

func (f *File) rewind() error {
	_, err := f.Seek(0, io.SeekStart)
	return err
}

// Batch is the ordered sequence of files submitted together in one field.
type Batch []*File

// Close closes every file and returns the first error.
func (b Batch) Close() error {
	var first error
	for _, f := range b {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewFile wraps already-validated content, for callers that build batches outside a form.
func NewFile(name string, size int64, contentType string, content io.ReadSeeker) *File {
	f := &File{Name: name, Size: size, ContentType: contentType, content: content}
	if c, ok := content.(io.Closer); ok {
		f.closer = c
	}
	return f
}
