package upload

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filearray/internal/model"
)

func newFileServer(t *testing.T, png []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/media/photo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})
	mux.HandleFunc("/media/notes.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "some notes")
	})
	mux.HandleFunc("/media/large.bin", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte{'x'}, 4096))
	})
	mux.HandleFunc("/media/missing.png", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAdapter_Validate_URLSource(t *testing.T) {
	ctx := context.Background()
	srv := newFileServer(t, pngBytes(t))

	t.Run("fetches every line in order", func(t *testing.T) {
		a := NewAdapter(FieldConfig{Source: SourceURL}, srv.Client())
		batch, err := a.Validate(ctx, Submission{
			URLs: srv.URL + "/media/photo.png\n\n" + srv.URL + "/media/notes.txt\n",
		})
		require.NoError(t, err)
		defer batch.Close()

		require.Len(t, batch, 2)
		assert.Equal(t, "photo.png", batch[0].Name)
		assert.Equal(t, "notes.txt", batch[1].Name)
		assert.Equal(t, int64(len("some notes")), batch[1].Size)

		b, err := io.ReadAll(batch[1])
		require.NoError(t, err)
		assert.Equal(t, "some notes", string(b))
	})

	t.Run("image flavor verifies content", func(t *testing.T) {
		a := NewAdapter(FieldConfig{Source: SourceURL, Kind: model.ElementImage}, srv.Client())

		batch, err := a.Validate(ctx, Submission{URLs: srv.URL + "/media/photo.png"})
		require.NoError(t, err)
		assert.Equal(t, "image/png", batch[0].ContentType)

		_, err = a.Validate(ctx, Submission{URLs: srv.URL + "/media/notes.txt"})
		assert.Equal(t, CodeInvalidImage, validationCode(t, err))
	})

	t.Run("non-200 is invalid", func(t *testing.T) {
		a := NewAdapter(FieldConfig{Source: SourceURL}, srv.Client())
		_, err := a.Validate(ctx, Submission{URLs: srv.URL + "/media/missing.png"})
		assert.Equal(t, CodeInvalid, validationCode(t, err))
	})

	t.Run("body over the size cap is invalid", func(t *testing.T) {
		a := NewAdapter(FieldConfig{Source: SourceURL, MaxFetchBytes: 1024}, srv.Client())
		_, err := a.Validate(ctx, Submission{URLs: srv.URL + "/media/large.bin"})
		assert.Equal(t, CodeInvalid, validationCode(t, err))

		batch, err := a.Validate(ctx, Submission{URLs: srv.URL + "/media/notes.txt"})
		require.NoError(t, err)
		assert.Len(t, batch, 1)
	})

	t.Run("body exactly at the cap is kept", func(t *testing.T) {
		a := NewAdapter(FieldConfig{Source: SourceURL, MaxFetchBytes: 4096}, srv.Client())
		batch, err := a.Validate(ctx, Submission{URLs: srv.URL + "/media/large.bin"})
		require.NoError(t, err)
		require.Len(t, batch, 1)
		assert.Equal(t, int64(4096), batch[0].Size)
	})

	t.Run("non-http scheme is invalid", func(t *testing.T) {
		a := NewAdapter(FieldConfig{Source: SourceURL}, srv.Client())
		_, err := a.Validate(ctx, Submission{URLs: "ftp://example.com/a.png"})
		assert.Equal(t, CodeInvalid, validationCode(t, err))
	})

	t.Run("blank textarea on optional field", func(t *testing.T) {
		a := NewAdapter(FieldConfig{Source: SourceURL}, srv.Client())
		batch, err := a.Validate(ctx, Submission{URLs: "  \n "})
		require.NoError(t, err)
		assert.Empty(t, batch)
	})
}

func TestLastSegment(t *testing.T) {
	u, _ := url.Parse("https://cdn.example.com/a/b/c.jpg?x=1")
	assert.Equal(t, "c.jpg", lastSegment(u))

	u, _ = url.Parse("https://cdn.example.com/a/")
	assert.Equal(t, "", lastSegment(u))
}
