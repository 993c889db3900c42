package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CreateConversionRequest represents a request to convert a CrossLite export
type CreateConversionRequest struct {
	Body struct {
		Name    string `json:"name" maxLength:"200" required:"false" doc:"Base name used for single-channel output" example:"main-hang"`
		Content string `json:"content" minLength:"1" required:"true" doc:"CrossLite text export"`
	}
}

// ConvertedPreset is one R1 preset produced by a conversion
type ConvertedPreset struct {
	Name        string `json:"name" doc:"Output name, without extension"`
	Channel     string `json:"channel" doc:"Source channel name"`
	BandCount   int    `json:"band_count" doc:"Number of EQ bands found for the channel"`
	XML         string `json:"xml" doc:"R1 preset XML"`
	StorageKey  string `json:"storage_key,omitempty" doc:"Object key of the stored preset"`
	DownloadURL string `json:"download_url,omitempty" doc:"Pre-signed download URL for the stored preset"`
}

// CreateConversionResponseBody is the body of the create conversion response
type CreateConversionResponseBody struct {
	ID           string            `json:"id" doc:"Conversion unique identifier"`
	MultiChannel bool              `json:"multi_channel" doc:"Whether the export contained several channels"`
	Outputs      []ConvertedPreset `json:"outputs" doc:"Converted presets, one per channel"`
}

// CreateConversionResponse represents the response from a conversion
type CreateConversionResponse struct {
	Body CreateConversionResponseBody
}

// GetConversionRequest represents a request to fetch a stored conversion
type GetConversionRequest struct {
	ID string `path:"id" doc:"Conversion ID"`
}

// GetConversionResponse wraps a stored conversion record
type GetConversionResponse struct {
	Body *Conversion
}

// ListConversionsRequest represents a request to list recent conversions
type ListConversionsRequest struct {
	Limit int `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum number of records"`
}

// ListConversionsResponse holds recent conversion records
type ListConversionsResponse struct {
	Body struct {
		Conversions []*Conversion `json:"conversions" doc:"Most recent conversions first"`
	}
}

// GetPresetDownloadRequest represents a request for a stored preset download URL
type GetPresetDownloadRequest struct {
	ID   string `path:"id" doc:"Conversion ID"`
	Name string `path:"name" doc:"Output name"`
}

// GetPresetDownloadResponse holds a pre-signed download URL
type GetPresetDownloadResponse struct {
	Body struct {
		DownloadURL string `json:"download_url" doc:"Pre-signed download URL"`
	}
}

// Conversion is a stored record of one conversion (for internal use and history)
type Conversion struct {
	ID           string    `json:"id"`
	SourceName   string    `json:"source_name"`
	MultiChannel bool      `json:"multi_channel"`
	Channels     []string  `json:"channels"`
	StorageKeys  []string  `json:"storage_keys,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
