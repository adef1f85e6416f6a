package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rakhulsr/vendoz/app/utils/uploads"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const maxUploadSize = 10 << 20

// formValue returns a multipart field and whether the client sent it at all.
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		if vals, ok := r.PostForm[key]; ok && len(vals) > 0 {
			return strings.TrimSpace(vals[0]), true
		}
		return "", false
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.TrimSpace(vals[0]), true
}

func formString(r *http.Request, key string) *string {
	v, ok := formValue(r, key)
	if !ok {
		return nil
	}
	return &v
}

func formDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	v, ok := formValue(r, key)
	if !ok || v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &d, nil
}

func formInt(r *http.Request, key string) (*int, error) {
	v, ok := formValue(r, key)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", key)
	}
	return &n, nil
}

// queryInt reads a base-10 query parameter. Missing or malformed values yield 0.
func queryInt(r *http.Request, key string) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	neg := strings.HasPrefix(v, "-")
	v = strings.TrimLeft(strings.TrimPrefix(v, "-"), "0")
	n, err := cast.ToIntE(v)
	if err != nil || strings.ContainsAny(v, "xXoObB_") {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

func parseForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadSize)
	}
	return r.ParseForm()
}

// saveUpload stores the "image" file when one was sent. An empty name means no file.
func saveUpload(r *http.Request, storage *uploads.Storage) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	return storage.Save(file, header)
}
