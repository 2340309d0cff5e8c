package models

import "time"

type CreativeType string

const (
	CreativeTypeImage CreativeType = "image"
	CreativeTypeVideo CreativeType = "video"
)

// Creative is an uploaded ad asset. Its URL becomes the content URI of the
// campaign draft it is attached to.
type Creative struct {
	ID         string       `json:"id"`
	Name       string       `json:"name" validate:"required"`
	Type       CreativeType `json:"type" validate:"required,oneof=image video"`
	URL        string       `json:"url"`
	Size       int64        `json:"size"`
	UploadedBy string       `json:"uploaded_by"`
	UploadedAt time.Time    `json:"uploaded_at"`
}
