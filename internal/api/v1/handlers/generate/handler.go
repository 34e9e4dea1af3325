package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/relatewell/genproxy/internal/services/generation"
	"github.com/relatewell/genproxy/pkg/httpext"
)

const (
	maxBodyBytes = 1 << 20

	errMessageRequired = "Message is required"
	errInvalidFormat   = "Invalid request format"
)

// use a single instance of Validate, it caches struct info
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// HandleGenerate forwards one prompt to the generation service and always answers
// with a GenerationResponse body.
func HandleGenerate(svc generation.Service, w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("Unexpected failure while generating content")
			httpext.WriteJSON(w, http.StatusInternalServerError, generation.Failed(generation.GenericErrorMessage))
		}
	}()

	var req generation.GenerationRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.WriteJSON(w, http.StatusBadRequest, generation.Failed(errInvalidFormat))
		return
	}

	if err := validate.Struct(req); err != nil {
		message := validationMessage(err)
		logger.Warn().Err(err).Msg("Request validation failed")
		httpext.WriteJSON(w, http.StatusBadRequest, generation.Failed(message))
		return
	}

	// trace level log of the JSON request body pretty printed
	if logger.Trace().Enabled() {
		prettyJSON, err := json.MarshalIndent(req, "", "    ")
		if err == nil {
			logger.Trace().RawJSON("request_body", prettyJSON).Msg("Incoming generate request")
		}
	}

	logger.Info().
		Str("model", req.Model).
		Bool("has_config", req.Config != nil).
		Msg("Received generate request")

	text, err := svc.Generate(r.Context(), req)
	if err != nil {
		logger.Error().
			Err(err).
			Str("kind", string(generation.KindOf(err))).
			Msg("Failed to generate content")
		httpext.WriteJSON(w, http.StatusInternalServerError, generation.Failed(generation.ClientMessage(err)))
		return
	}

	httpext.WriteJSON(w, http.StatusOK, generation.Succeeded(text))
}

func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Sprintf("Invalid request: %v", err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.StructField() == "Message" {
			return errMessageRequired
		}
		problems = append(problems, fmt.Sprintf("%s must be %s %s", fe.Field(), fe.Tag(), fe.Param()))
	}

	return "Invalid request: " + strings.Join(problems, ", ")
}
