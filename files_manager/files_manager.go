package files_manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"img2pdf/contracts"
)

var ErrNotDirectory = errors.New("not a valid directory")

// CheckRootDir fails with ErrNotDirectory unless root names an existing
// directory.
func CheckRootDir(root string) error {
	if root == "" {
		return fmt.Errorf("root directory is %w", ErrNotDirectory)
	}
	stat, err := os.Stat(root)
	if err != nil || !stat.IsDir() {
		return fmt.Errorf("%s is %w", root, ErrNotDirectory)
	}
	return nil
}

// ListImages returns the images directly inside dir in name order.
// Subdirectories and unsupported files are left out.
func ListImages(dir string) ([]contracts.ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	images := make([]contracts.ImageFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind := contracts.Classify(entry.Name())
		if kind == contracts.Unsupported {
			continue
		}
		images = append(images, contracts.ImageFile{
			Path: filepath.Join(dir, entry.Name()),
			Kind: kind,
		})
	}
	return images, nil
}

// CountImages returns how many files directly inside dir have an image
// extension, WebP included.
func CountImages(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && contracts.IsImage(entry.Name()) {
			count++
		}
	}
	return count, nil
}

// PDFPath is where the document for folder is written: a sibling of the
// folder named after it.
func PDFPath(folder string) string {
	folder = filepath.Clean(folder)
	return filepath.Join(filepath.Dir(folder), filepath.Base(folder)+".pdf")
}
