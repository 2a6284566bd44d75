package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	// MaxImageBytes caps uploads at 5 MiB.
	MaxImageBytes = 5 << 20

	publicPrefix = "/assets/images/"
)

var (
	ErrNotImage = errors.New("only image files are allowed")
	ErrTooLarge = errors.New("file exceeds the 5 MiB limit")
)

// Saver persists an uploaded image to the working-data directory and to the
// publicly servable directory. Both copies are identical bytes.
type Saver struct {
	WorkDir   string
	PublicDir string
}

// SaveImage validates the upload and writes it to both directories, returning
// the public-relative path to store on the product row. If either write
// fails no copy is left behind.
func (s *Saver) SaveImage(fh *multipart.FileHeader) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	if fh.Size > MaxImageBytes {
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageBytes {
		return "", ErrTooLarge
	}

	// Timestamp plus a random integer keeps names unique in practice.
	filename := fmt.Sprintf("product-%d-%d%s",
		time.Now().UnixMilli(), rand.Intn(1_000_000_000), filepath.Ext(fh.Filename))

	if err := os.MkdirAll(s.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.MkdirAll(s.PublicDir, 0o755); err != nil {
		return "", fmt.Errorf("create public dir: %w", err)
	}

	workPath := filepath.Join(s.WorkDir, filename)
	if err := os.WriteFile(workPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.PublicDir, filename), data, 0o644); err != nil {
		_ = os.Remove(workPath)
		return "", fmt.Errorf("write public copy: %w", err)
	}

	return publicPrefix + filename, nil
}

// Remove deletes both copies of a previously saved image. Used to roll back
// a creation whose row write failed.
func (s *Saver) Remove(publicPath string) error {
	filename := path.Base(publicPath)
	if filename == "." || filename == "/" {
		return nil
	}
	workErr := os.Remove(filepath.Join(s.WorkDir, filename))
	publicErr := os.Remove(filepath.Join(s.PublicDir, filename))
	return errors.Join(workErr, publicErr)
}
