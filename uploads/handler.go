package uploads

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/user/blog-go/apperror"
)

// formField is the multipart field carrying the image.
const formField = "image"

// UploadResponse is the body returned by POST /api/upload.
type UploadResponse struct {
	Message  string `json:"message" example:"File uploaded successfully"`
	ImageURL string `json:"imageUrl" example:"/uploads/V1StGXR8_Z5jdHi6B-myT.png"`
	Filename string `json:"filename" example:"V1StGXR8_Z5jdHi6B-myT.png"`
}

// Handler exposes upload and download endpoints.
type Handler struct {
	store *LocalStore
	log   logrus.FieldLogger
}

// NewHandler creates an upload Handler.
func NewHandler(store *LocalStore, log logrus.FieldLogger) *Handler {
	return &Handler{store: store, log: log}
}

// RegisterRoutes mounts POST / and GET /{filename} (expected at /api/upload).
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", h.HandleUpload())
	router.Get("/{filename}", h.HandleServe())
}

// RegisterStatic mounts GET /* for the public /uploads prefix.
func (h *Handler) RegisterStatic(router chi.Router) {
	router.Get("/*", h.HandleServe())
}

// HandleUpload godoc
// @Summary Upload an image
// @Description Stores an image on the server and returns its public URL. The content type is detected from the bytes.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} uploads.UploadResponse
// @Failure 400 {object} apperror.ErrorResponse "No file uploaded or not an image"
// @Failure 413 {object} apperror.ErrorResponse "File too large"
// @Router /upload [post]
func (h *Handler) HandleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Leave room for the multipart envelope around the file itself.
		r.Body = http.MaxBytesReader(w, r.Body, h.store.MaxSize()+1<<20)
		file, _, err := r.FormFile(formField)
		if err != nil {
			var maxErr *http.MaxBytesError
			switch {
			case errors.As(err, &maxErr):
				apperror.WriteError(w, apperror.NewPayloadTooLargeError("File too large", err))
			case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
				apperror.WriteError(w, apperror.NewBadRequestError("No file uploaded", err))
			default:
				apperror.WriteError(w, apperror.NewBadRequestError("Invalid upload", err))
			}
			return
		}
		defer file.Close()

		stored, err := h.store.Save(r.Context(), file)
		if err != nil {
			switch {
			case errors.Is(err, ErrTooLarge):
				apperror.WriteError(w, apperror.NewPayloadTooLargeError("File too large", err))
			case errors.Is(err, ErrNotImage):
				apperror.WriteError(w, apperror.NewBadRequestError("Only image files are allowed", err))
			case errors.Is(err, ErrEmptyFile):
				apperror.WriteError(w, apperror.NewBadRequestError("No file uploaded", err))
			default:
				h.log.WithError(err).Error("failed to store upload")
				apperror.WriteError(w, apperror.NewInternalError("failed to store upload", err))
			}
			return
		}

		h.log.WithFields(logrus.Fields{"filename": stored.Filename, "mime": stored.MIME, "size": stored.Size}).Info("file uploaded")
		apperror.WriteJSON(w, http.StatusOK, UploadResponse{
			Message:  "File uploaded successfully",
			ImageURL: stored.URL(),
			Filename: stored.Filename,
		})
	}
}

// HandleServe godoc
// @Summary Download an uploaded image
// @Tags uploads
// @Produce octet-stream
// @Param filename path string true "File name"
// @Success 200 {file} file
// @Failure 400 {object} apperror.ErrorResponse "Invalid file name"
// @Failure 404 {object} apperror.ErrorResponse "File not found"
// @Router /upload/{filename} [get]
func (h *Handler) HandleServe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")
		if name == "" {
			name = strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		}

		f, err := h.store.Open(name)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidName):
				apperror.WriteError(w, apperror.NewBadRequestError("Invalid file name", err))
			case errors.Is(err, ErrFileNotFound):
				apperror.WriteError(w, apperror.NewNotFoundError("File not found", err))
			default:
				apperror.WriteError(w, apperror.NewInternalError("failed to open file", err))
			}
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			apperror.WriteError(w, apperror.NewInternalError("failed to stat file", err))
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}
