// Package uploads abstracts the external image storage collaborator.
// Handlers never write files themselves; a failed save surfaces as
// UploadFailed, distinct from validation errors, and aborts the operation.
package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gamegalaxy/exchange/apperr"
)

// ImageStore saves an uploaded image for an owner under a logical folder
// ("profile_pictures", "games_pictures") and returns its public URL.
type ImageStore interface {
	Save(ownerID uint, file *multipart.FileHeader, folder string) (string, error)
}

// DiskStore writes images below a base directory that the server exposes
// at /uploads.
type DiskStore struct {
	BaseDir string
}

func NewDiskStore() *DiskStore {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return &DiskStore{BaseDir: dir}
}

func (s *DiskStore) Save(ownerID uint, file *multipart.FileHeader, folder string) (string, error) {
	name := fmt.Sprintf("%d_%s%s", ownerID, uuid.NewString(), filepath.Ext(file.Filename))
	dir := filepath.Join(s.BaseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.UploadFailed, "Failed to upload picture", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", apperr.Wrap(apperr.UploadFailed, "Failed to upload picture", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", apperr.Wrap(apperr.UploadFailed, "Failed to upload picture", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", apperr.Wrap(apperr.UploadFailed, "Failed to upload picture", err)
	}

	return "/uploads/" + folder + "/" + name, nil
}
