package handlers

import (
	"fmt"
	"io"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/artisanhub/marketplace-api/internal/domain/booking"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/httpresp"
	"github.com/artisanhub/marketplace-api/internal/middleware"
	"github.com/artisanhub/marketplace-api/internal/models"
	"github.com/artisanhub/marketplace-api/internal/storage"
)

const maxDeliverableBytes = 50 << 20

type DeliverableHandler struct {
	db    *gorm.DB
	store *storage.DeliverableStore
	log   zerolog.Logger
}

func NewDeliverableHandler(
	db *gorm.DB,
	store *storage.DeliverableStore,
	log zerolog.Logger,
) *DeliverableHandler {
	return &DeliverableHandler{db: db, store: store, log: log}
}

// Upload attaches a file to a booking the creative owns. Image uploads get
// a webp preview next to the original; preview failures only cost the
// preview.
func (h *DeliverableHandler) Upload(c *gin.Context) {
	creativeID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var b models.Booking
	if err := h.db.First(&b, bookingID).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}
	if b.CreativeID != creativeID {
		httperr.Forbidden(c, "not_your_booking", "You do not own this booking.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "file is required.")
		return
	}
	if fileHeader.Size > maxDeliverableBytes {
		httperr.BadRequest(c, "file_too_large", "File exceeds the upload limit.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not read upload.")
		return
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not read upload.")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	key := fmt.Sprintf("bookings/%s/%s%s", b.PublicID, uuid.NewString(), path.Ext(fileHeader.Filename))

	if err := h.store.Upload(c.Request.Context(), key, body, contentType); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("deliverable upload failed")
		httperr.Internal(c, "upload_failed", "Could not store file.")
		return
	}

	previewKey := ""
	if storage.IsPreviewable(contentType) {
		if preview, err := storage.MakePreview(body); err == nil {
			previewKey = key + ".preview.webp"
			if err := h.store.Upload(c.Request.Context(), previewKey, preview, "image/webp"); err != nil {
				h.log.Warn().Err(err).Str("key", previewKey).Msg("preview upload failed")
				previewKey = ""
			}
		} else {
			h.log.Warn().Err(err).Str("key", key).Msg("preview generation failed")
		}
	}

	d := models.Deliverable{
		BookingID:   b.ID,
		ObjectKey:   key,
		PreviewKey:  previewKey,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		SizeBytes:   fileHeader.Size,
	}
	if err := h.db.Create(&d).Error; err != nil {
		httperr.Internal(c, "upload_failed", "Could not record file.")
		return
	}

	httpresp.Created(c, d)
}

func (h *DeliverableHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var b models.Booking
	if err := h.db.First(&b, bookingID).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}
	if b.ClientID != userID && b.CreativeID != userID {
		httperr.Forbidden(c, "not_your_booking", "You do not own this booking.")
		return
	}

	var files []models.Deliverable
	if err := h.db.Where("booking_id = ?", b.ID).Find(&files).Error; err != nil {
		httperr.Internal(c, "deliverables_fetch_failed", "Could not load files.")
		return
	}

	httpresp.List(c, files)
}

// Download hands out a presigned URL. Clients only get one once the
// booking's payment state unlocked deliverables; the creative always can.
func (h *DeliverableHandler) Download(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	fileID, ok := paramUint(c, "fileId")
	if !ok {
		return
	}

	var d models.Deliverable
	if err := h.db.First(&d, fileID).Error; err != nil {
		httperr.NotFound(c, "file_not_found", "File not found.")
		return
	}

	var b models.Booking
	if err := h.db.First(&b, d.BookingID).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	switch userID {
	case b.CreativeID:
		// owner always has access
	case b.ClientID:
		if err := domain.CanAccessDeliverables(&b); err != nil {
			respondBusiness(c, err)
			return
		}
	default:
		httperr.Forbidden(c, "not_your_booking", "You do not own this booking.")
		return
	}

	url, err := h.store.PresignGet(c.Request.Context(), d.ObjectKey, 15*time.Minute)
	if err != nil {
		h.log.Error().Err(err).Str("key", d.ObjectKey).Msg("presign failed")
		httperr.Internal(c, "download_failed", "Could not create download link.")
		return
	}

	httpresp.OK(c, gin.H{"url": url, "expires_in": int((15 * time.Minute).Seconds())})
}
