package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/api/middleware"
	appErrors "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/errors"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// DeviceIDHeader identifies the handset. Guest state is scoped to it, and
// reconciliation needs it at login to know which guest store to merge.
const DeviceIDHeader = "X-Device-ID"

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	defer r.Body.Close()

	logger := middleware.LoggerFromContext(r.Context())

	err := json.NewDecoder(r.Body).Decode(dest)

	if errors.Is(err, io.EOF) {
		logger.Warn("Empty request body")
		response.Error(w, appErrors.BadRequestError("Request body cannot be empty"))

		return err
	}

	if err != nil {
		logger.Warn("Failed to decode request body", "error", err.Error())
		response.Error(w, appErrors.BadRequestError("Invalid JSON body"))

		return err
	}

	return nil
}

func validateStruct(w http.ResponseWriter, r *http.Request, validate *validator.Validate, data any) bool {
	if err := validate.Struct(data); err != nil {

		logger := middleware.LoggerFromContext(r.Context())

		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			logger.Warn("Request validation failed", "error", validationErrs.Error())
			response.ValidationError(w, validationErrs)
		} else {
			logger.Error("Unexpected validation error", "error", err.Error())
			response.Error(w, appErrors.InternalError("Unexpected validation error"))
		}

		return false
	}

	return true
}

func deviceID(w http.ResponseWriter, r *http.Request) (string, bool) {

	id := r.Header.Get(DeviceIDHeader)

	if id == "" {
		response.Error(w, appErrors.BadRequestError("Device ID header is required"))
		return "", false
	}

	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {

	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, appErrors.BadRequestError("Invalid "+name))
		return 0, false
	}

	return id, true
}
