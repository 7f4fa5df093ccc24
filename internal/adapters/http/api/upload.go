package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"

	service "github.com/okian/dfsviz/internal/app"
)

// Upload defaults.
const (
	uploadField      = "file"
	defaultFilename  = "upload.csv"
	multipartMemory  = 8 << 20
	multipartFormTyp = "multipart/form-data"
)

// UploadHandler handles slate uploads.
type UploadHandler struct {
	deps     UploadDependencies
	maxBytes int64
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(deps UploadDependencies, maxBytes int64) *UploadHandler {
	return &UploadHandler{deps: deps, maxBytes: maxBytes}
}

// HandleUpload handles POST /api/upload. The slate is either the "file" part of a
// multipart form or the raw body, named by ?filename=. Parse failures answer 422
// with the same envelope as a success.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload"
	filename, body, err := h.uploadSource(w, r)
	if err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrPayloadTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer body.Close()

	res, err := h.deps.Upload(r.Context(), filename, body)
	if err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrPayloadTooLarge, err))
			return
		}
		writeServiceError(w, op, err)
		return
	}
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

// uploadSource caps the body at the upload limit. Multipart bodies get extra
// room for the form framing; the service enforces the limit on the file itself.
func (h *UploadHandler) uploadSource(w http.ResponseWriter, r *http.Request) (string, io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != multipartFormTyp {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
		name := path.Base(r.URL.Query().Get("filename"))
		if name == "." || name == "/" {
			name = defaultFilename
		}
		return name, r.Body, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartSlack)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return "", nil, fmt.Errorf("parse form: %w", err)
	}
	f, hdr, err := r.FormFile(uploadField)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrMissingFile, err)
	}
	return hdr.Filename, f, nil
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || errors.Is(err, service.ErrTooLarge)
}
