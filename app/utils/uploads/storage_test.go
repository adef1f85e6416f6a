package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }
	s.rand = func() int64 { return 42 }
	return s
}

func TestGenerateName(t *testing.T) {
	s := fixedStorage(t)

	cases := map[string]string{
		"summer shirt.jpg":      "summer_shirt-1700000000123-42.jpg",
		"../../etc/passwd":      "passwd-1700000000123-42",
		"..\\windows\\evil.png": "evil-1700000000123-42.png",
		"naïve café.JPEG":       "nave_caf-1700000000123-42.JPEG",
		"archive.tar.gz":        "archive.tar-1700000000123-42.gz",
		"photo.p!ng":            "photo-1700000000123-42",
		"   ":                   "file-1700000000123-42",
	}
	for in, want := range cases {
		assert.Equal(t, want, s.GenerateName(in), in)
	}
}

func multipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func TestSaveAndRemove(t *testing.T) {
	s := fixedStorage(t)
	file, header := multipartFile(t, "my shirt.png", []byte("png-bytes"))

	name, err := s.Save(file, header)
	require.NoError(t, err)
	assert.Equal(t, "my_shirt-1700000000123-42.png", name)

	stored, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))

	s.Remove(name)
	_, err = os.Stat(filepath.Join(s.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	// removing twice or outside the directory is a no-op
	s.Remove(name)
	s.Remove("../" + name)
}

func TestSaveWithoutFile(t *testing.T) {
	_, err := fixedStorage(t).Save(nil, nil)
	assert.ErrorIs(t, err, ErrNoFile)
}
