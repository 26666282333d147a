package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/skons/warehouse/internal/imaging"
	"github.com/skons/warehouse/internal/store"
)

// Uploads beyond this are rejected before decoding.
const maxUploadBytes = 10 << 20

// PhotosHandler manages item photo attachments.
type PhotosHandler struct {
	DB *sql.DB
}

// Upload handles POST /api/items/{id}/photos. Accepts a multipart form with
// a "photo" field, downscales the image and stores it on the item.
func (h *PhotosHandler) Upload(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo field required")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			jsonError(w, http.StatusBadRequest, "only JPEG and PNG images are supported")
			return
		}
		jsonError(w, http.StatusBadRequest, "failed to process image")
		return
	}

	filename := uuid.NewString() + ".jpg"
	claims := GetClaims(r.Context())
	photo, err := store.CreatePhoto(r.Context(), h.DB, itemID, filename, header.Filename, processed.MIME, processed.Data, claims.Name)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("photo uploaded", "item_id", itemID, "photo_id", photo.ID, "size_kb", photo.SizeKB, "by", claims.EmployeeID)
	jsonResponse(w, http.StatusCreated, photo)
}

// List handles GET /api/items/{id}/photos, newest first.
func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, itemID)
	if err != nil {
		storeError(w, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	photos, err := store.ListPhotos(r.Context(), h.DB, itemID)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, photos)
}

// Serve handles GET /api/photos/{id}, returning the image bytes.
func (h *PhotosHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid photo id")
		return
	}

	data, mime, err := store.GetPhotoData(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "photo not found")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Delete handles DELETE /api/photos/{id}.
func (h *PhotosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid photo id")
		return
	}

	if err := store.DeletePhoto(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("photo deleted", "photo_id", id, "by", claims.EmployeeID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo deleted"})
}
