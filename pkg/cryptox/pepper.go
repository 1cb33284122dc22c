package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// The pepper is appended to every password before hashing. It either comes
// from configuration directly or lives in a file that is created on first use.
var (
	pepperMu   sync.RWMutex
	pepper     string
	pepperFile = filepath.Join("data", "pepper")
)

// SetPepper installs a pepper supplied by configuration.
func SetPepper(p string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = p
}

// SetPepperPath sets the file the pepper is read from (or written to).
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperFile = file
	pepper = ""
}

// LoadPepper resolves the pepper now so misconfiguration fails at startup
// instead of on the first login.
func LoadPepper() error {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	if pepper != "" {
		return nil
	}

	p, err := loadOrGeneratePepper(pepperFile)
	if err != nil {
		return err
	}
	pepper = p
	return nil
}

// GetPepper returns the active pepper, loading it on first use.
func GetPepper() string {
	pepperMu.RLock()
	p := pepper
	pepperMu.RUnlock()
	if p != "" {
		return p
	}

	if err := LoadPepper(); err != nil {
		slog.Error("failed to load or generate pepper", slog.Any("err", err))
		os.Exit(1)
	}

	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

func loadOrGeneratePepper(file string) (string, error) {
	file = filepath.Clean(file)

	b, err := os.ReadFile(file)
	if err == nil {
		if len(b) == 0 {
			return "", errors.New("pepper file is empty")
		}
		return string(b), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return "", err
	}

	raw := make([]byte, keyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	p := base64.RawURLEncoding.EncodeToString(raw)

	if err := os.WriteFile(file, []byte(p), 0600); err != nil {
		return "", err
	}
	return p, nil
}
