// Package authcache persists the last successful login between launches.
// The encoding is reversible base64, not a security boundary: anyone with
// read access to the file can recover the credentials.
package authcache

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var ErrMalformedCache = errors.New("malformed auth cache")

type Cache struct {
	path string
	log  *slog.Logger
}

func New(path string, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}

	return &Cache{
		path: path,
		log:  log,
	}
}

// Save overwrites the cache with the credentials of the current session.
func (c *Cache) Save(login, password string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(login + ":" + password))

	if err := os.WriteFile(c.path, []byte(encoded), 0o600); err != nil {
		c.log.Error("write auth cache", slog.Any("error", err))

		return fmt.Errorf("os.WriteFile: %w", err)
	}

	return nil
}

// Load returns the cached credentials, if any. The pair is not validated
// here; callers re-authenticate through the credential store. Malformed
// content degrades to "no cached session".
func (c *Cache) Load() (string, string, bool) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Error("read auth cache", slog.Any("error", err))
		}

		return "", "", false
	}

	data := strings.TrimSpace(string(raw))
	if data == "" {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		c.log.Error("decode auth cache",
			slog.Any("error", fmt.Errorf("%w: %w", ErrMalformedCache, err)))

		return "", "", false
	}

	login, password, found := strings.Cut(string(decoded), ":")
	if !found {
		c.log.Error("decode auth cache", slog.Any("error", ErrMalformedCache))

		return "", "", false
	}

	return login, password, true
}

// Clear removes the cache file. A missing file is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove: %w", err)
	}

	return nil
}
