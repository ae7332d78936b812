package http

// GenerateRequest is the wire form of a content-generation call.
type GenerateRequest struct {
	Requirements string `json:"requirements" binding:"required"`
	IncludePDF   *bool  `json:"include_pdf"`
	IncludePPT   *bool  `json:"include_ppt"`
	OutputDir    string `json:"output_dir,omitempty"`
}

// StatusResponse reports whether the generator is ready to use.
type StatusResponse struct {
	Status            string          `json:"status"`
	Message           string          `json:"message"`
	HasGeneratorKey   bool            `json:"has_generator_key"`
	AvailableFeatures map[string]bool `json:"available_features"`
}
