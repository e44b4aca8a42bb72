package upload

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"filearray/internal/model"
)

// Adapter validates the batch submitted for one array field.
type Adapter struct {
	cfg    FieldConfig
	client *http.Client
}

// NewAdapter builds an Adapter. client is only used by SourceURL fields; nil means
// NewHTTPClient(0).
func NewAdapter(cfg FieldConfig, client *http.Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = DefaultFieldName
	}
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &Adapter{cfg: cfg, client: client}
}

// Config returns the field configuration the adapter was built with.
func (a *Adapter) Config() FieldConfig { return a.cfg }

// Descriptor describes the field for the admin form.
func (a *Adapter) Descriptor() Descriptor {
	return Descriptor{
		Name:     a.cfg.Name,
		Label:    a.cfg.Label,
		HelpText: a.cfg.HelpText,
		Required: a.cfg.Required,
		UseURL:   a.cfg.Source == SourceURL,
		Kind:     a.cfg.Kind.String(),
		Multiple: true,
	}
}

// raw is an unvalidated batch member.
type raw struct {
	missing bool
	name    string
	size    int64
	open    func() (io.ReadSeeker, io.Closer, error)
}

// Validate turns a submission into a batch of files ready to stage, or fails with a
// *ValidationError. An empty batch means "leave the array alone". On error every opened
// stream is closed; on success the caller owns the batch and must Close it.
func (a *Adapter) Validate(ctx context.Context, sub Submission) (Batch, error) {
	hasInput := a.hasInput(sub)
	if !a.cfg.Required && sub.Clear {
		if hasInput {
			return nil, newError(CodeContradiction, nil)
		}
		return Batch{}, nil
	}
	if !hasInput {
		if a.cfg.Required {
			return nil, newError(CodeRequired, nil)
		}
		return Batch{}, nil
	}

	var items []raw
	switch a.cfg.Source {
	case SourceURL:
		fetched, err := a.fetchAll(ctx, sub.URLs)
		if err != nil {
			return nil, err
		}
		items = fetched
	default:
		items = fromHeaders(sub.Files)
	}

	for _, it := range items {
		if err := a.checkAttributes(it); err != nil {
			return nil, err
		}
	}

	batch := make(Batch, 0, len(items))
	for _, it := range items {
		f, err := a.openFile(it)
		if err != nil {
			_ = batch.Close()
			return nil, err
		}
		batch = append(batch, f)
	}
	return batch, nil
}

func (a *Adapter) hasInput(sub Submission) bool {
	if a.cfg.Source == SourceURL {
		return strings.TrimSpace(sub.URLs) != ""
	}
	return len(sub.Files) > 0
}

func fromHeaders(headers []*multipart.FileHeader) []raw {
	items := make([]raw, 0, len(headers))
	for _, fh := range headers {
		if fh == nil {
			items = append(items, raw{missing: true})
			continue
		}
		items = append(items, raw{
			name: fh.Filename,
			size: fh.Size,
			open: func() (io.ReadSeeker, io.Closer, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, nil, err
				}
				return f, f, nil
			},
		})
	}
	return items
}

func (a *Adapter) checkAttributes(it raw) error {
	if it.missing {
		return newError(CodeInvalid, nil)
	}
	if n := len([]rune(it.name)); a.cfg.MaxNameLength > 0 && n > a.cfg.MaxNameLength {
		return maxLengthError(a.cfg.MaxNameLength, n)
	}
	if it.name == "" {
		return newError(CodeInvalid, nil)
	}
	if !a.cfg.AllowEmptyFile && it.size == 0 {
		return newError(CodeEmpty, nil)
	}
	return nil
}

func (a *Adapter) openFile(it raw) (*File, error) {
	content, closer, err := it.open()
	if err != nil {
		return nil, newError(CodeInvalid, err)
	}
	f := &File{Name: it.name, Size: it.size, content: content, closer: closer}

	if a.cfg.Kind == model.ElementImage {
		if err := verifyImage(f, a.cfg.MaxImagePixels); err != nil {
			_ = f.Close()
			return nil, err
		}
		return f, nil
	}

	mt, err := mimetype.DetectReader(f)
	if err == nil {
		f.ContentType = mt.String()
	}
	if err := f.rewind(); err != nil {
		_ = f.Close()
		return nil, newError(CodeInvalid, err)
	}
	return f, nil
}
