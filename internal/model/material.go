package model

import "time"

// MaterialType enumerates supported learning-material formats.
type MaterialType string

const (
	MaterialTypePDF          MaterialType = "pdf"
	MaterialTypeVideo        MaterialType = "video"
	MaterialTypeImage        MaterialType = "image"
	MaterialTypeDocument     MaterialType = "document"
	MaterialTypeLink         MaterialType = "link"
	MaterialTypePresentation MaterialType = "presentation"
)

// Material represents a learning-material entity.
type Material struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        MaterialType `json:"type"`
	URL         string       `json:"url,omitempty"`
	FilePath    string       `json:"filePath,omitempty"`
	FileName    string       `json:"fileName,omitempty"`
	FileSize    int64        `json:"fileSize,omitempty"`
	MimeType    string       `json:"mimeType,omitempty"`
	Category    string       `json:"category,omitempty"`
	Difficulty  Difficulty   `json:"difficulty"`
	ViewCount   int          `json:"viewCount"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// EntityID implements store.Entity.
func (m Material) EntityID() string { return m.ID }

// CreateMaterialRequest is the payload for creating a new material.
type CreateMaterialRequest struct {
	Title       string       `json:"title" validate:"required,min=3,max=200"`
	Description string       `json:"description,omitempty" validate:"max=1000"`
	Type        MaterialType `json:"type" validate:"required,oneof=pdf video image document link presentation"`
	URL         string       `json:"url,omitempty" validate:"omitempty,url"`
	FilePath    string       `json:"filePath,omitempty"`
	FileName    string       `json:"fileName,omitempty"`
	FileSize    int64        `json:"fileSize,omitempty" validate:"min=0"`
	MimeType    string       `json:"mimeType,omitempty"`
	Category    string       `json:"category,omitempty" validate:"max=100"`
	Difficulty  Difficulty   `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// UpdateMaterialRequest is the payload for updating an existing material.
type UpdateMaterialRequest struct {
	Title       string       `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description string       `json:"description,omitempty" validate:"max=1000"`
	Type        MaterialType `json:"type,omitempty" validate:"omitempty,oneof=pdf video image document link presentation"`
	URL         string       `json:"url,omitempty" validate:"omitempty,url"`
	FilePath    string       `json:"filePath,omitempty"`
	FileName    string       `json:"fileName,omitempty"`
	FileSize    int64        `json:"fileSize,omitempty" validate:"min=0"`
	MimeType    string       `json:"mimeType,omitempty"`
	Category    string       `json:"category,omitempty" validate:"max=100"`
	Difficulty  Difficulty   `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// UploadResult is the metadata returned by the upload passthrough. The
// backend forwards files to a third-party object store and relays its
// response shape unchanged.
type UploadResult struct {
	PublicID         string `json:"public_id"`
	SecureURL        string `json:"secure_url"`
	OriginalFilename string `json:"original_filename"`
	Format           string `json:"format"`
	ResourceType     string `json:"resource_type"`
	Bytes            int64  `json:"bytes"`
	Width            int    `json:"width,omitempty"`
	Height           int    `json:"height,omitempty"`
}
