package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type uploadResponse struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR",
				fmt.Sprintf("File too large. Maximum size is %d bytes", s.cfg.MaxUploadBytes))
			return
		}
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "No file uploaded")
		return
	}
	defer file.Close()

	// Sniff the real content type; the client-declared one is not trusted.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		s.logger.Printf("read upload error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		return
	}
	contentType := http.DetectContentType(head[:n])
	fallbackExt, ok := allowedImageTypes[contentType]
	if !ok {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Only PNG, JPG, and WEBP images are allowed")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		s.logger.Printf("rewind upload error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = fallbackExt
	}
	filename := uuid.NewString() + ext

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		s.logger.Printf("create upload dir error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		return
	}

	dst, err := os.OpenFile(filepath.Join(s.cfg.UploadDir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Printf("create upload file error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		s.logger.Printf("write upload error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		return
	}

	s.respondJSON(w, http.StatusCreated, uploadResponse{
		Path:     "/uploads/" + filename,
		Filename: filename,
		Size:     size,
	})
}
