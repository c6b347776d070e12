package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/bertogassin/OMNIXIUS/config"
	"github.com/gofiber/fiber/v2"
)

// errNoFile distinguishes "field absent" (fine, uploads are optional) from a
// rejected file.
var errNoFile = errors.New("no file")

// saveUpload stores a multipart image under <uploadDir>/<kind>/ with a
// timestamp-based filename and returns the path relative to the upload dir.
func saveUpload(c *fiber.Ctx, cfg *config.Config, field, kind string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", errNoFile
	}
	return storeFile(c, cfg, file, kind)
}

func storeFile(c *fiber.Ctx, cfg *config.Config, file *multipart.FileHeader, kind string) (string, error) {
	if file.Size > cfg.MaxFileSize {
		return "", errors.New("File too large")
	}

	mime := file.Header.Get("Content-Type")
	if !cfg.ImageTypeAllowed(mime) {
		return "", errors.New("Only JPEG, PNG and WebP images are allowed")
	}

	ext := ".webp"
	switch mime {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	rel := filepath.ToSlash(filepath.Join(kind, filename))
	if err := c.SaveFile(file, filepath.Join(cfg.UploadDir, kind, filename)); err != nil {
		return "", errors.New("Could not save file")
	}
	return rel, nil
}
