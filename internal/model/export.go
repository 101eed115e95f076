package model

import "time"

// ExportSnapshot describes one CSV snapshot of a dataset uploaded to object
// storage. DownloadURL is a presigned GET link that stops working at
// ExpiresAt.
type ExportSnapshot struct {
	Dataset     string    `json:"dataset"`
	ObjectKey   string    `json:"object_key"`
	DownloadURL string    `json:"download_url"`
	RowCount    int       `json:"row_count"`
	ExpiresAt   time.Time `json:"expires_at"`
}
