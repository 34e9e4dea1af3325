package generation

// GenerationRequest is the inbound body of the generate endpoint.
type GenerationRequest struct {
	Message string            `json:"message" validate:"required"`
	Model   string            `json:"model,omitempty"`
	Config  *GenerationConfig `json:"config,omitempty"`
}

// GenerationConfig holds the optional tuning parameters forwarded to the upstream model.
// A nil field is never sent upstream.
type GenerationConfig struct {
	MaxOutputTokens   *int32   `json:"maxOutputTokens,omitempty" validate:"omitempty,gte=0"`
	Temperature       *float32 `json:"temperature,omitempty" validate:"omitempty,gte=0"`
	TopP              *float32 `json:"topP,omitempty" validate:"omitempty,gte=0"`
	TopK              *float32 `json:"topK,omitempty" validate:"omitempty,gte=0"`
	StopSequences     []string `json:"stopSequences,omitempty"`
	SystemInstruction string   `json:"systemInstruction,omitempty"`
}

// GenerationResponse is the body returned for every generate call.
// Success is the only discriminator: an empty Text with Success=true is a valid result.
type GenerationResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Succeeded builds the success shape.
func Succeeded(text string) GenerationResponse {
	return GenerationResponse{Text: text, Success: true}
}

// Failed builds the error shape, text is always empty.
func Failed(message string) GenerationResponse {
	return GenerationResponse{Text: "", Success: false, Error: message}
}
