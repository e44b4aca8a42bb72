// Package sanitize turns proposed storage paths into ASCII-safe keys that are not yet taken.
package sanitize

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"path"
	"strings"

	"github.com/gosimple/slug"
)

// Exister is the part of the storage backend the sanitizer needs.
type Exister interface {
	Exists(ctx context.Context, key string) (bool, error)
}

// Sanitizer produces collision-free, transliterated storage paths.
type Sanitizer struct {
	store    Exister
	alphabet []rune
	length   int
	intn     func(n int) int
}

// New returns a Sanitizer drawing collision suffixes of the given length from alphabet.
func New(store Exister, alphabet string, length int) *Sanitizer {
	if alphabet == "" {
		alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	}
	if length <= 0 {
		length = 5
	}
	return &Sanitizer{
		store:    store,
		alphabet: []rune(alphabet),
		length:   length,
		intn:     rand.IntN,
	}
}

// Sanitize returns proposed unchanged when it is ASCII and free. A base name with non-ASCII
// characters is slugified; while the candidate exists in storage, a random suffix is appended
// to the base name and the check repeats. There is no retry cap.
func (s *Sanitizer) Sanitize(ctx context.Context, proposed string) (string, error) {
	dir, name, ext := Split(proposed)
	if !IsASCII(name) {
		name = Transliterate(name)
	}

	candidate := dir + name + ext
	for {
		exists, err := s.store.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check %q exists: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = dir + name + "_" + s.suffix() + ext
	}
}

func (s *Sanitizer) suffix() string {
	var b strings.Builder
	b.Grow(s.length)
	for i := 0; i < s.length; i++ {
		b.WriteRune(s.alphabet[s.intn(len(s.alphabet))])
	}
	return b.String()
}

// Split breaks a slash-separated path into its directory (with trailing slash, or empty),
// base name without extension, and extension (with leading dot, or empty).
func Split(p string) (dir, name, ext string) {
	dir, file := path.Split(p)
	ext = path.Ext(file)
	name = strings.TrimSuffix(file, ext)
	if name == "" {
		// dotfiles such as ".env" have no extension
		name, ext = ext, ""
	}
	return dir, name, ext
}

// IsASCII reports whether the URL-unescaped name holds only ASCII characters.
func IsASCII(name string) bool {
	if u, err := url.PathUnescape(name); err == nil {
		name = u
	}
	for _, r := range name {
		if r > 127 {
			return false
		}
	}
	return true
}

// Transliterate converts name into a lower-case ASCII slug.
func Transliterate(name string) string {
	if u, err := url.PathUnescape(name); err == nil {
		name = u
	}
	out := slug.Make(name)
	if out == "" {
		return "file"
	}
	return out
}
