package handlers

import (
	"encoding/json"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"soulboard/internal/config"
	"soulboard/internal/models"
)

// CreativeHandler uploads ad assets to S3. The returned URL is what a draft's
// creative step expects.
type CreativeHandler struct {
	s3Client      *s3.Client
	bucket        string
	publicBaseURL string
}

func NewCreativeHandler(s3Config *config.S3Config) *CreativeHandler {
	return &CreativeHandler{
		s3Client:      s3Config.Client,
		bucket:        s3Config.Bucket,
		publicBaseURL: s3Config.PublicBaseURL,
	}
}

// UploadCreative handles multiple file uploads to S3
// @Tags Creatives
// @Summary Upload creatives
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Creative files"
// @Success 201 {array} models.Creative
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/creatives/upload [post]
func (h *CreativeHandler) UploadCreative(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20 // 32MB max memory
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "No files uploaded")
		return
	}

	uploadedBy := userIDFromContext(r)

	var uploaded []*models.Creative
	uploader := manager.NewUploader(h.s3Client)

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("Failed to open file %s: %v", fileHeader.Filename, err)
			continue
		}

		creative := &models.Creative{
			ID:         uuid.NewString(),
			Name:       fileHeader.Filename,
			Type:       getFileType(fileHeader),
			Size:       fileHeader.Size,
			UploadedBy: uploadedBy,
			UploadedAt: time.Now().UTC(),
		}

		key := filepath.Join("creatives", creative.ID+filepath.Ext(fileHeader.Filename))

		_, err = uploader.Upload(r.Context(), &s3.PutObjectInput{
			Bucket: aws.String(h.bucket),
			Key:    aws.String(key),
			Body:   file,
		})
		file.Close()

		if err != nil {
			log.Printf("Failed to upload file %s to S3: %v", fileHeader.Filename, err)
			continue
		}

		creative.URL = strings.TrimRight(h.publicBaseURL, "/") + "/" + key
		uploaded = append(uploaded, creative)
	}

	if len(uploaded) == 0 {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "upload_failed", "Failed to upload any files")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(uploaded); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Helper function to determine file type
func getFileType(header *multipart.FileHeader) models.CreativeType {
	switch header.Header.Get("Content-Type") {
	case "image/jpeg", "image/png", "image/gif":
		return models.CreativeTypeImage
	case "video/mp4", "video/quicktime":
		return models.CreativeTypeVideo
	default:
		return models.CreativeTypeImage
	}
}
