package api

import (
	"fmt"
	"net/http"

	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/pkg/openapi"
)

// buildSpec generates the OpenAPI document for the estimation API.
func buildSpec(cfg *config.Config) (*openapi.Spec, error) {
	s := openapi.NewSpec(cfg.API.Docs.Title, cfg.Version)
	s.SetDescription(cfg.API.Docs.Description)
	s.AddServer(cfg.API.BasePath)

	s.Components.AddSchemas(map[string]*openapi.Schema{
		"AnalyzeCommand": {
			Type:     "object",
			Required: []string{"images"},
			Properties: map[string]*openapi.Schema{
				"images": {
					Type:        "array",
					Description: "Base64-encoded bed photos",
					Items:       &openapi.Schema{Type: "string", Format: "byte"},
				},
				"truckClass":    {Type: "string", Description: "Truck class override", Example: "4t"},
				"materialType":  {Type: "string", Description: "Fallback material type", Example: "As殻"},
				"ensembleCount": {Type: "integer", Description: "Trials per estimation round", Example: 3},
			},
		},
		"Estimate": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"createdAt":     {Type: "string", Format: "date-time"},
				"truckClass":    {Type: "string"},
				"ensembleCount": {Type: "integer"},
				"result":        openapi.SchemaRef("Result"),
			},
		},
		"Result": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"heightM":          {Type: "number", Description: "Cargo height above the bed rim in meters"},
				"fillRatioL":       {Type: "number"},
				"fillRatioW":       {Type: "number"},
				"taperRatio":       {Type: "number"},
				"packingDensity":   {Type: "number"},
				"effectivePacking": {Type: "number"},
				"volume":           {Type: "number", Description: "Estimated cargo volume in cubic meters"},
				"tonnage":          {Type: "number", Description: "Estimated cargo weight in tonnes"},
				"density":          {Type: "number", Description: "Material density in t/m³"},
				"materialType":     {Type: "string"},
				"reasoning":        {Type: "string"},
			},
		},
		"CalculateCommand": {
			Type:     "object",
			Required: []string{"height"},
			Properties: map[string]*openapi.Schema{
				"height":         {Type: "number", Description: "Cargo height above the bed rim in meters"},
				"fillRatioL":     {Type: "number"},
				"fillRatioW":     {Type: "number"},
				"taperRatio":     {Type: "number"},
				"packingDensity": {Type: "number"},
				"materialType":   {Type: "string"},
				"truckClass":     {Type: "string"},
			},
		},
		"ValidateParams": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"height":         {Type: "number"},
				"fillRatioL":     {Type: "number"},
				"fillRatioW":     {Type: "number"},
				"taperRatio":     {Type: "number"},
				"packingDensity": {Type: "number"},
			},
		},
	})

	s.Paths["/estimates"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Run the ensemble tonnage analysis on bed photos",
			Tags:        []string{"estimates"},
			RequestBody: openapi.RequestBodyJSON("AnalyzeCommand", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Completed estimate", "Estimate"),
				400: openapi.ResponseRef("BadRequest"),
				422: openapi.ResponseRef("Unprocessable"),
			},
		},
	}

	s.Paths["/estimates/calculate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Compute tonnage from explicit parameters",
			Tags:        []string{"estimates"},
			RequestBody: openapi.RequestBodyJSON("CalculateCommand", true),
			Responses: map[int]*openapi.Response{
				200: {Description: "Calculation result"},
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	s.Paths["/estimates/validate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Validate parameters against the spec ranges",
			Tags:        []string{"estimates"},
			RequestBody: openapi.RequestBodyJSON("ValidateParams", true),
			Responses: map[int]*openapi.Response{
				200: {Description: "Validation result with clamped parameters"},
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	s.Paths["/spec"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Fetch the active estimation spec document",
			Tags:    []string{"spec"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Estimation spec document"},
			},
		},
	}

	return s, nil
}

func registerDocs(mux *http.ServeMux, cfg *config.Config) error {
	s, err := buildSpec(cfg)
	if err != nil {
		return err
	}

	data, err := openapi.MarshalJSON(s)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(data))
	return nil
}
