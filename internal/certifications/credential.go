package certifications

import (
	"bytes"
	"fmt"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Credential is a staged credential file that parsed as a PDF.
type Credential struct {
	File  uploads.File
	Pages int
}

// InspectCredential parses file as a PDF and returns its page count.
func InspectCredential(file uploads.File) (*Credential, error) {
	if len(file.Data) == 0 {
		return nil, ErrInvalidCredential
	}

	count, err := api.PageCount(bytes.NewReader(file.Data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: no pages", ErrInvalidCredential)
	}

	return &Credential{File: file, Pages: count}, nil
}

// stagedCredential returns the parsed credential file bound to field, or nil
// when field selects no new file.
func stagedCredential(field uploads.ImageField, images uploads.Source) (*Credential, error) {
	if field.PlaceholderRef == "" || images == nil {
		return nil, nil
	}
	file, ok := images.Lookup(field.PlaceholderRef)
	if !ok {
		return nil, nil
	}
	return InspectCredential(file)
}
