package upload

import (
	"mime/multipart"

	"filearray/internal/model"
)

// Source selects where a batch comes from.
type Source int

const (
	// SourceUpload reads multipart file parts.
	SourceUpload Source = iota
	// SourceURL fetches newline-separated HTTP(S) links.
	SourceURL
)

// DefaultFieldName is the multipart field carrying the batch.
const DefaultFieldName = "files"

// FieldConfig parameterizes an Adapter.
type FieldConfig struct {
	Name           string
	Source         Source
	Kind           model.Element
	Required       bool
	Label          string
	HelpText       string
	MaxNameLength  int
	AllowEmptyFile bool
	// MaxImagePixels bounds width*height of image files before they are decoded.
	MaxImagePixels int64
	// MaxFetchBytes bounds the body read for one URL-sourced file.
	MaxFetchBytes int64
}

// ClearName is the form key of the "clear" checkbox for the field.
func (c FieldConfig) ClearName() string { return c.fieldName() + "-clear" }

// URLsName is the form key of the link textarea for the field.
func (c FieldConfig) URLsName() string { return c.fieldName() + "-urls" }

func (c FieldConfig) fieldName() string {
	if c.Name == "" {
		return DefaultFieldName
	}
	return c.Name
}

// Submission is the raw form input for one array field.
type Submission struct {
	Files []*multipart.FileHeader
	URLs  string
	Clear bool
}

// Descriptor is what an admin form needs to render the field.
type Descriptor struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	HelpText string `json:"help_text"`
	Required bool   `json:"required"`
	UseURL   bool   `json:"use_url"`
	Kind     string `json:"kind"`
	Multiple bool   `json:"multiple"`
}
