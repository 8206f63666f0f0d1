package converter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"inkwell-cms/models"
)

// Converter renders one document format as an HTML fragment. Implementations
// only read the file at path.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
	Format() Format
	Name() string
}

// Registry routes a staged file to the converter for its declared format.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	converters map[Format]Converter
}

// NewRegistry returns a registry with the PDF and DOCX converters registered.
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[Format]Converter)}
	r.Register(NewPDFConverter())
	r.Register(NewDOCXConverter())
	return r
}

func (r *Registry) Register(c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[c.Format()] = c
}

func (r *Registry) Get(format Format) Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[format]
}

// Convert runs the converter for format against path. Every failure,
// including a panic inside a parsing engine, comes back as a conversion error
// carrying a readable cause.
func (r *Registry) Convert(ctx context.Context, path string, format Format) (html string, err error) {
	c := r.Get(format)
	if c == nil {
		return "", models.ConversionError(fmt.Sprintf("unsupported file type %q", format), nil)
	}

	defer func() {
		if rec := recover(); rec != nil {
			html = ""
			err = models.ConversionError(fmt.Sprintf("could not convert %s document", c.Name()), fmt.Errorf("%v", rec))
		}
	}()

	html, err = c.Convert(ctx, path)
	if err != nil {
		return "", normalize(c.Name(), err)
	}
	return html, nil
}

func normalize(name string, err error) error {
	var domainErr *models.Error
	if errors.As(err, &domainErr) && domainErr.Code == models.CodeConversion {
		return domainErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return models.ConversionError("conversion cancelled", err)
	}
	return models.ConversionError(fmt.Sprintf("could not convert %s document", name), err)
}
