package sanitize

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	storeMocks "filearray/internal/storage/mocks"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in, dir, name, ext string
	}{
		{"path/to/files/a.png", "path/to/files/", "a", ".png"},
		{"a.tar.gz", "", "a.tar", ".gz"},
		{"dir/noext", "dir/", "noext", ""},
		{"dir/.env", "dir/", ".env", ""},
	}
	for _, tt := range tests {
		dir, name, ext := Split(tt.in)
		assert.Equal(t, tt.dir, dir, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
		assert.Equal(t, tt.ext, ext, tt.in)
	}
}

func TestIsASCII(t *testing.T) {
	assert.True(t, IsASCII("report-2024"))
	assert.False(t, IsASCII("отчёт"))
	assert.False(t, IsASCII("%D0%BE%D1%82"))
	assert.True(t, IsASCII("100%zz"))
}

func TestSanitizer_FreePathUnchanged(t *testing.T) {
	ctx := context.Background()
	store := new(storeMocks.MockStorage)
	store.On("Exists", ctx, "path/to/files/c.png").Return(false, nil).Once()

	s := New(store, "abc", 5)
	got, err := s.Sanitize(ctx, "path/to/files/c.png")

	require.NoError(t, err)
	assert.Equal(t, "path/to/files/c.png", got)
	store.AssertExpectations(t)
}

func TestSanitizer_TransliteratesNonASCII(t *testing.T) {
	ctx := context.Background()
	store := new(storeMocks.MockStorage)
	store.On("Exists", ctx, mock.Anything).Return(false, nil)

	s := New(store, "abc", 5)
	got, err := s.Sanitize(ctx, "path/to/files/Привет мир.JPG")

	require.NoError(t, err)
	assert.Equal(t, "path/to/files/privet-mir.JPG", got)
	for _, r := range got {
		assert.LessOrEqual(t, r, rune(127))
	}
}

func TestSanitizer_ResolvesCollisions(t *testing.T) {
	ctx := context.Background()
	store := new(storeMocks.MockStorage)
	store.On("Exists", ctx, "path/to/files/a.png").Return(true, nil).Once()
	store.On("Exists", ctx, mock.MatchedBy(func(k string) bool { return k != "path/to/files/a.png" })).
		Return(true, nil).Twice()
	store.On("Exists", ctx, mock.Anything).Return(false, nil).Once()

	s := New(store, "xyz", 4)
	got, err := s.Sanitize(ctx, "path/to/files/a.png")

	require.NoError(t, err)
	assert.NotEqual(t, "path/to/files/a.png", got)
	assert.Regexp(t, regexp.MustCompile(`^path/to/files/a_[xyz]{4}\.png$`), got)
	store.AssertNumberOfCalls(t, "Exists", 4)
}

func TestSanitizer_SuffixUsesInjectedSource(t *testing.T) {
	ctx := context.Background()
	store := new(storeMocks.MockStorage)
	store.On("Exists", ctx, "a.txt").Return(true, nil).Once()
	store.On("Exists", ctx, "a_bbb.txt").Return(false, nil).Once()

	s := New(store, "ab", 3)
	s.intn = func(int) int { return 1 }

	got, err := s.Sanitize(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a_bbb.txt", got)
}

func TestSanitizer_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := new(storeMocks.MockStorage)
	store.On("Exists", ctx, mock.Anything).Return(false, nil)

	s := New(store, "", 0)
	first, err := s.Sanitize(ctx, "uploads/Фото 1.png")
	require.NoError(t, err)
	second, err := s.Sanitize(ctx, first)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasSuffix(first, ".png"))
}

func TestSanitizer_ExistsError(t *testing.T) {
	ctx := context.Background()
	store := new(storeMocks.MockStorage)
	store.On("Exists", ctx, "a.txt").Return(false, errors.New("backend down"))

	_, err := New(store, "ab", 3).Sanitize(ctx, "a.txt")
	assert.ErrorContains(t, err, "backend down")
}
