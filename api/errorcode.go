package api

import (
	"github.com/bitmark-inc/covid-tracker/pipeline"
)

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1000: "dataset unavailable",
		1001: pipeline.ErrUnknownRegion.Error(),
	}

	errorInternalServer     = errorJSON(999)
	errorDatasetUnavailable = errorJSON(1000)
	errorUnknownRegion      = errorJSON(1001)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
