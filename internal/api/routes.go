package api

import (
	"net/http"

	"github.com/RMahshie/crossr1/internal/api/handlers"
	"github.com/RMahshie/crossr1/internal/processing"
	"github.com/RMahshie/crossr1/internal/repository"
	"github.com/RMahshie/crossr1/internal/storage"
	"github.com/danielgtaylor/huma/v2"
)

// Deps are the collaborators of the conversion routes. Repo and Store are optional.
type Deps struct {
	Repo            repository.ConversionRepository
	Store           storage.PresetStore
	ConversionSvc   processing.ConversionService
	MaxContentBytes int64
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, deps Deps) {
	conversionHandler := handlers.NewConversionHandler(deps.Repo, deps.Store, deps.ConversionSvc, deps.MaxContentBytes)

	huma.Register(api, huma.Operation{
		OperationID: "createConversion",
		Method:      http.MethodPost,
		Path:        "/api/conversions",
		Summary:     "Convert a CrossLite export",
		Description: "Converts a CrossLite EQ text export into one R1 preset per channel",
		Tags:        []string{"Conversion"},
	}, conversionHandler.CreateConversion)

	huma.Register(api, huma.Operation{
		OperationID: "listConversions",
		Method:      http.MethodGet,
		Path:        "/api/conversions",
		Summary:     "List recent conversions",
		Description: "Returns the most recent conversion records, newest first",
		Tags:        []string{"Conversion"},
	}, conversionHandler.ListConversions)

	huma.Register(api, huma.Operation{
		OperationID: "getConversion",
		Method:      http.MethodGet,
		Path:        "/api/conversions/{id}",
		Summary:     "Get a conversion",
		Description: "Returns a stored conversion record",
		Tags:        []string{"Conversion"},
	}, conversionHandler.GetConversion)

	huma.Register(api, huma.Operation{
		OperationID: "getPresetDownload",
		Method:      http.MethodGet,
		Path:        "/api/conversions/{id}/outputs/{name}",
		Summary:     "Get a preset download URL",
		Description: "Returns a pre-signed download URL for one stored preset",
		Tags:        []string{"Conversion"},
	}, conversionHandler.GetPresetDownload)
}
