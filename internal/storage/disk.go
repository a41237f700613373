// Package storage persists uploaded images on local disk under the media
// directory. Files are referenced by the relative /media/... path stored on
// the owning record.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Disk struct {
	Root string
}

func NewDisk(root string) *Disk {
	return &Disk{Root: root}
}

// SaveVendorImage writes the uploaded file under
// <root>/vendor_images/<vendorCode>/ with a timestamped name and returns
// the public /media path.
func (d *Disk) SaveVendorImage(vendorCode, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(d.Root, "vendor_images", vendorCode)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), sanitize(filename))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: write: %w", err)
	}

	rel := filepath.ToSlash(filepath.Join("vendor_images", vendorCode, name))
	return "/media/" + rel, nil
}

func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
