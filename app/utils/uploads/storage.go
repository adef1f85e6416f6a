package uploads

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Rakhulsr/vendoz/app/helpers"
	"go.uber.org/zap"
)

var ErrNoFile = errors.New("no file uploaded")

var safeExt = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// Storage keeps uploaded images on local disk under one directory.
type Storage struct {
	dir  string
	now  func() time.Time
	rand func() int64
}

func NewStorage(dir string) (*Storage, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Storage{
		dir:  dir,
		now:  time.Now,
		rand: func() int64 { return rand.Int63n(1_000_000_000) },
	}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

// GenerateName builds "<stem>-<unix millis>-<random><ext>" from the client's filename.
func (s *Storage) GenerateName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := filepath.Ext(base)
	stem := helpers.SanitizeFilenameStem(strings.TrimSuffix(base, ext))
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%s-%d-%d%s", stem, s.now().UnixMilli(), s.rand(), ext)
}

// Save copies the multipart file to disk and returns the stored filename.
func (s *Storage) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if file == nil || header == nil {
		return "", ErrNoFile
	}

	name := s.GenerateName(header.Filename)
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// Remove deletes a stored file. Failures are logged, never returned.
func (s *Storage) Remove(name string) {
	if name == "" || name != filepath.Base(name) {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		zap.S().Warnf("Failed to remove upload %s: %v", name, err)
	}
}
