package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/services"
)

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(us services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: us}
}

// Upload сохраняет файл из поля "file"; необязательное поле "folder" задает префикс ключа.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get file from form: %w", err))
		return
	}
	defer file.Close()

	uploaded, err := h.uploadService.Upload(r.Context(), r.FormValue("folder"), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, uploaded)
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		badRequestResponse(w, r, errors.New("key query parameter is required"))
		return
	}
	if err := h.uploadService.Delete(r.Context(), key); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
