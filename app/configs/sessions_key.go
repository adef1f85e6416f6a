package configs

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gorilla/securecookie"
)

// GenerateSecret returns a base64 encoded random key suitable for JWT_SECRET.
func GenerateSecret(length int) (string, error) {
	if length < 32 {
		return "", fmt.Errorf("secret length %d is too short, use at least 32 bytes", length)
	}

	key := securecookie.GenerateRandomKey(length)
	if key == nil {
		return "", errors.New("could not generate random key")
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

// GenerateAndPrintSecret writes a fresh JWT_SECRET line to out and, when path is set,
// to that file as well.
func GenerateAndPrintSecret(out io.Writer, path string) error {
	secret, err := GenerateSecret(64)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("JWT_SECRET=%s\n", secret)
	if _, err := fmt.Fprint(out, line); err != nil {
		return err
	}

	if path == "" {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write secret to %s: %w", path, err)
	}

	fmt.Fprintf(out, "Secret written to %s. Rotating it invalidates every issued token.\n", path)
	return nil
}
