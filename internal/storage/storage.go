// Package storage persists uploaded résumé files to local disk or an
// S3-compatible bucket behind a single interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxResumeSize is the upload size cap (5 MiB)
	MaxResumeSize = 5 << 20

	pdfContentType = "application/pdf"
)

var (
	// ErrUnsupportedMedia is returned for anything that is not a PDF
	ErrUnsupportedMedia = errors.New("unsupported media type")
	// ErrFileTooLarge is returned when an upload exceeds MaxResumeSize
	ErrFileTooLarge = errors.New("file too large")
)

// Upload describes one résumé file received from a referral submission
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// Storage stores résumé uploads and returns a resolvable URL for each.
// Store failures surface synchronously; retrying is the caller's decision.
type Storage interface {
	Store(ctx context.Context, upload *Upload) (string, error)
	// Remove deletes a previously stored file, best-effort
	Remove(ctx context.Context, url string) error
}

// prepare validates the upload and returns the body reader (with the sniffed
// prefix re-attached) plus a collision-resistant object key.
func prepare(upload *Upload) (io.Reader, string, error) {
	if upload.Size > MaxResumeSize {
		return nil, "", ErrFileTooLarge
	}
	if upload.ContentType != pdfContentType {
		return nil, "", ErrUnsupportedMedia
	}

	// The declared type is client-controlled; sniff the leading bytes too.
	head := make([]byte, 512)
	n, err := io.ReadFull(upload.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	head = head[:n]
	if http.DetectContentType(head) != pdfContentType {
		return nil, "", ErrUnsupportedMedia
	}

	body := io.MultiReader(strings.NewReader(string(head)), upload.Reader)
	return body, storageKey(upload.Filename), nil
}

// storageKey builds a unique object name preserving the original extension
func storageKey(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf"
	}
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("resume-%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
