// Package uploads stores files attached to profile updates in an
// S3-compatible bucket. The account service only receives the resulting
// Object reference.
package uploads

import (
	"context"
	"io"

	"github.com/dmitrijs2005/jobportal/internal/common"
)

// Object describes a stored file.
type Object struct {
	Key         string
	URL         string
	FileName    string
	ContentType string
	Size        int64
}

// File is an incoming attachment before it is stored.
type File struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Uploader interface {
	Upload(ctx context.Context, f File) (*Object, error)
}

// Disabled is the Uploader used when no bucket is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, File) (*Object, error) {
	return nil, common.ErrUploadNotAvailable
}
