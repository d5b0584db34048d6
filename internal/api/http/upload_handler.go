package http

import (
	"io"
	"net/http"

	"github.com/komolbek/raadarenda-sub001/internal/service"
)

// maxUploadMemory bounds the multipart parse buffer, not the file size.
const maxUploadMemory = 10 << 20

type UploadHandler struct {
	uploadSvc service.UploadService
}

func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// Upload accepts a multipart "file" field, normalizes the image and
// returns its public URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondValidation(w, r, []string{"expected multipart form data"})
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		respondValidation(w, r, []string{"missing file field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, err)
		return
	}

	url, err := h.uploadSvc.UploadImage(r.Context(), data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, map[string]string{"url": url})
}
