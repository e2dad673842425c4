package storage

import (
	"os"
	"path/filepath"
)

// localStorage keeps uploads on the local filesystem, one subdirectory per
// raw user email, standing in for an object store in single-instance
// deployments.
type localStorage struct {
	root string
}

func NewLocalStorage(root string) Provider {
	return &localStorage{root: root}
}

func (l *localStorage) Upload(userEmail string, fileName string, data []byte, contentType string) (string, error) {
	userDir := filepath.Join(l.root, userEmail)
	if err := os.MkdirAll(userDir, os.ModePerm); err != nil {
		return "", err
	}

	path := filepath.Join(userDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (l *localStorage) Delete(userEmail string, fileName string) error {
	err := os.Remove(filepath.Join(l.root, userEmail, fileName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *localStorage) PublicLink(userEmail string, fileName string) string {
	return filepath.Join(l.root, userEmail, fileName)
}
