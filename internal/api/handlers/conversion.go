package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/RMahshie/crossr1/internal/parser"
	"github.com/RMahshie/crossr1/internal/processing"
	"github.com/RMahshie/crossr1/internal/repository"
	"github.com/RMahshie/crossr1/internal/storage"
	"github.com/RMahshie/crossr1/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultPresetName names the output of a single-channel export when the request has no name
const DefaultPresetName = "preset"

// ConversionHandler handles conversion-related HTTP requests.
// repo and store may be nil when history or storage is disabled.
type ConversionHandler struct {
	repo            repository.ConversionRepository
	store           storage.PresetStore
	conversionSvc   processing.ConversionService
	maxContentBytes int64
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(repo repository.ConversionRepository, store storage.PresetStore, conversionSvc processing.ConversionService, maxContentBytes int64) *ConversionHandler {
	return &ConversionHandler{
		repo:            repo,
		store:           store,
		conversionSvc:   conversionSvc,
		maxContentBytes: maxContentBytes,
	}
}

// CreateConversion converts a CrossLite export into R1 presets
func (h *ConversionHandler) CreateConversion(ctx context.Context, req *models.CreateConversionRequest) (*models.CreateConversionResponse, error) {
	if h.maxContentBytes > 0 && int64(len(req.Body.Content)) > h.maxContentBytes {
		return nil, huma.NewError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Export too large, limit is %d bytes", h.maxContentBytes))
	}

	baseName := processing.SanitizeFilename(req.Body.Name)
	if baseName == "" {
		baseName = DefaultPresetName
	}

	doc, err := h.conversionSvc.ConvertDocument(req.Body.Content, baseName)
	if err != nil {
		if errors.Is(err, parser.ErrMalformedNumber) || errors.Is(err, models.ErrInvalidBand) {
			return nil, huma.Error422UnprocessableEntity("Export contains an invalid EQ band", err)
		}
		return nil, huma.Error500InternalServerError("Failed to convert export", err)
	}

	conversionID := uuid.New()
	log.Info().
		Str("conversionID", conversionID.String()).
		Bool("multiChannel", doc.MultiChannel).
		Int("outputs", len(doc.Outputs)).
		Msg("Converted export")

	outputs := make([]models.ConvertedPreset, 0, len(doc.Outputs))
	var keys []string
	for _, out := range doc.Outputs {
		preset := models.ConvertedPreset{
			Name:      out.Name,
			Channel:   out.Channel,
			BandCount: out.BandCount,
			XML:       out.XML,
		}

		if h.store != nil {
			key := storage.PresetKey(conversionID.String(), out.Name)
			if err := h.store.PutPreset(ctx, key, out.XML); err != nil {
				h.discardPresets(ctx, keys)
				return nil, huma.Error500InternalServerError("Failed to store preset", err)
			}
			keys = append(keys, key)
			url, err := h.store.GenerateDownloadURL(ctx, key)
			if err != nil {
				h.discardPresets(ctx, keys)
				return nil, huma.Error500InternalServerError("Failed to prepare download", err)
			}
			preset.StorageKey = key
			preset.DownloadURL = url
		}

		outputs = append(outputs, preset)
	}

	if h.repo != nil {
		channels := make([]string, 0, len(doc.Outputs))
		for _, out := range doc.Outputs {
			channels = append(channels, out.Channel)
		}
		conversion := &models.Conversion{
			ID:           conversionID.String(),
			SourceName:   baseName,
			MultiChannel: doc.MultiChannel,
			Channels:     channels,
			StorageKeys:  keys,
			CreatedAt:    time.Now(),
		}
		if err := h.repo.Create(ctx, conversion); err != nil {
			h.discardPresets(ctx, keys)
			return nil, huma.Error500InternalServerError("Failed to record conversion", err)
		}
	}

	return &models.CreateConversionResponse{
		Body: models.CreateConversionResponseBody{
			ID:           conversionID.String(),
			MultiChannel: doc.MultiChannel,
			Outputs:      outputs,
		},
	}, nil
}

// GetConversion returns a stored conversion record
func (h *ConversionHandler) GetConversion(ctx context.Context, req *models.GetConversionRequest) (*models.GetConversionResponse, error) {
	if h.repo == nil {
		return nil, huma.Error503ServiceUnavailable("Conversion history is disabled")
	}

	conversionID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid conversion ID", err)
	}

	conversion, err := h.lookup(ctx, conversionID)
	if err != nil {
		return nil, err
	}

	return &models.GetConversionResponse{Body: conversion}, nil
}

// ListConversions returns the most recent conversion records
func (h *ConversionHandler) ListConversions(ctx context.Context, req *models.ListConversionsRequest) (*models.ListConversionsResponse, error) {
	if h.repo == nil {
		return nil, huma.Error503ServiceUnavailable("Conversion history is disabled")
	}

	conversions, err := h.repo.ListRecent(ctx, req.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list conversions", err)
	}

	resp := &models.ListConversionsResponse{}
	resp.Body.Conversions = conversions
	return resp, nil
}

// GetPresetDownload returns a fresh download URL for a stored preset
func (h *ConversionHandler) GetPresetDownload(ctx context.Context, req *models.GetPresetDownloadRequest) (*models.GetPresetDownloadResponse, error) {
	if h.store == nil {
		return nil, huma.Error503ServiceUnavailable("Preset storage is disabled")
	}

	conversionID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid conversion ID", err)
	}

	key := storage.PresetKey(conversionID.String(), processing.SanitizeFilename(req.Name))
	if h.repo != nil {
		conversion, err := h.lookup(ctx, conversionID)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(conversion.StorageKeys, key) {
			return nil, huma.Error404NotFound("Preset not found")
		}
	}

	url, err := h.store.GenerateDownloadURL(ctx, key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to prepare download", err)
	}

	resp := &models.GetPresetDownloadResponse{}
	resp.Body.DownloadURL = url
	return resp, nil
}

// discardPresets removes presets uploaded by a request that then failed.
// Deletion is best effort and runs even if the request context is done.
func (h *ConversionHandler) discardPresets(ctx context.Context, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := h.store.DeletePreset(ctx, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to discard preset")
		}
	}
	if len(keys) > 0 {
		log.Warn().Int("presets", len(keys)).Msg("Discarded presets of failed conversion")
	}
}

func (h *ConversionHandler) lookup(ctx context.Context, id uuid.UUID) (*models.Conversion, error) {
	conversion, err := h.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, huma.Error404NotFound("Conversion not found", err)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load conversion", err)
	}
	return conversion, nil
}
