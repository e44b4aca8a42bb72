package model

import "fmt"

// Kind names a record type that owns an array of uploaded files.
type Kind string

const (
	KindFiles  Kind = "files"
	KindImages Kind = "images"
)

// Element tells what an array column holds.
type Element int

const (
	ElementGeneric Element = iota
	ElementImage
)

func (e Element) String() string {
	switch e {
	case ElementImage:
		return "image"
	default:
		return "file"
	}
}

// UploadTo computes the storage path of one uploaded file for a record.
type UploadTo func(r *Record, filename string) string

// PrefixUploadTo returns an UploadTo that prepends a fixed prefix to the file name.
func PrefixUploadTo(prefix string) UploadTo {
	return func(_ *Record, filename string) string {
		return prefix + filename
	}
}

// ArrayField statically declares which column of which table holds a record type's paths.
type ArrayField struct {
	Kind     Kind
	Table    string
	Column   string
	Element  Element
	Label    string
	HelpText string
	UploadTo UploadTo
}

// Fields returns the declared array fields keyed by kind. Every kind uses prefix for its paths.
func Fields(prefix string) map[Kind]ArrayField {
	up := PrefixUploadTo(prefix)
	return map[Kind]ArrayField{
		KindFiles: {
			Kind:     KindFiles,
			Table:    "records_with_files",
			Column:   "files",
			Element:  ElementGeneric,
			Label:    "Upload files",
			HelpText: "Uploading new files deletes the old ones",
			UploadTo: up,
		},
		KindImages: {
			Kind:     KindImages,
			Table:    "records_with_images",
			Column:   "images",
			Element:  ElementImage,
			Label:    "Upload images",
			HelpText: "Uploading new images deletes the old ones",
			UploadTo: up,
		},
	}
}

// ParseKind validates a kind coming from a URL or CLI flag.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindFiles, KindImages:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}
