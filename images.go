package recetario

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/gif"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, optionally resizes it to
// maxImageWidth, and encodes it as JPEG. Returns the target filename and
// the encoded bytes.
func processImage(src io.Reader, originalName string) (string, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return slugifyFilename(originalName) + ".jpg", buf.Bytes(), nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	slug := Slugify(base)
	if slug == "" {
		slug = "receta"
	}
	return slug
}

// ensureUniqueFilename appends a counter while the filename already exists
// in the uploads directory.
func (a *App) ensureUniqueFilename(filename string) string {
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	base := strings.TrimSuffix(filename, ".jpg")
	candidate := filename
	counter := 1
	for {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err != nil {
			return candidate
		}
		counter++
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
}

// handleImageUpload accepts a recipe photo from an authenticated user,
// re-encodes it, stores it under the static dir, and returns the public
// URL for the recipe form's imagen_url field.
func (a *App) handleImageUpload(c echo.Context) error {
	if CurrentUser(c) == nil {
		return c.JSON(http.StatusUnauthorized, apiError{Error: "No autorizado"})
	}

	file, err := c.FormFile("imagen")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "Falta el archivo de imagen"})
	}
	if file.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, apiError{Error: "Archivo demasiado grande (máx 10MB)"})
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	filename, data, err := processImage(src, file.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "Imagen no válida"})
	}
	filename = a.ensureUniqueFilename(filename)

	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"url": "/public/" + uploadsSubdir + "/" + filename,
	})
}
