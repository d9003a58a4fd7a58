package router

import (
	"encoding/json"
	"net/http"
)

type handlerToolkit struct {
	request        *http.Request
	responseWriter http.ResponseWriter
	validator      *structValidator
	pathParamValue pathParamValueFunc
}

func (h *handlerToolkit) BindParams() *ParamsBinder {
	return &ParamsBinder{
		req:            h.request,
		validator:      h.validator,
		pathParamValue: h.pathParamValue,
	}
}

func (h *handlerToolkit) BindPayload(receiver interface{}) error {
	ctx := h.request.Context()
	if err := json.NewDecoder(h.request.Body).Decode(receiver); err != nil {
		logger.WithError(err).Info(ctx, "Failed to decode payload")
		return BadRequestError("Failed to decode payload: " + err.Error())
	}
	return h.validator.validateStruct(ctx, receiver)
}

func (h *handlerToolkit) WriteEnvelope(statusCode int, message string, data interface{}) error {
	// Headers are ignored once status is written
	h.responseWriter.Header().Set("content-type", "application/json")
	h.responseWriter.WriteHeader(statusCode)
	return json.NewEncoder(h.responseWriter).Encode(NewEnvelope(statusCode, message, data))
}
