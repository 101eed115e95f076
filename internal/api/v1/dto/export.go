package dto

import "time"

// ExportCreateDTO selects which dataset to snapshot.
type ExportCreateDTO struct {
	Dataset string `json:"dataset" validate:"required,oneof=assessments courses"`
}

// ExportResponseDTO describes the uploaded snapshot and its download link.
type ExportResponseDTO struct {
	Dataset     string    `json:"dataset"`
	ObjectKey   string    `json:"object_key"`
	DownloadURL string    `json:"download_url"`
	RowCount    int       `json:"row_count"`
	ExpiresAt   time.Time `json:"expires_at"`
}
