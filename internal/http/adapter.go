package http

import (
	"net/http"

	"outlog/internal/shared/loggers"
	"outlog/internal/shared/svcerrors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	RequestID  string      `json:"requestId"`
	SourceName string      `json:"sourceName,omitempty"`
	Error      ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// adapt turns an AppHttpHandler into a http.HandlerFunc that answers errors as ErrorResponse.
func adapt(h AppHttpHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.Handle(w, r)
		if err == nil {
			return
		}

		svcErr := toServiceError(err)
		logger := loggers.Ctx(r.Context())
		switch {
		case svcErr.IsInternalError():
			logger.Error().Err(svcErr.Cause).Str(loggers.FieldErrorCode, svcErr.Code).Msg("compaction request failed")
		case svcErr.IsPayloadTooLarge():
			logger.Warn().Str(loggers.FieldErrorCode, svcErr.Code).Msg(svcErr.Message)
		default:
			logger.Debug().Str(loggers.FieldErrorCode, svcErr.Code).Msg(svcErr.Message)
		}

		writeError(w, r, svcErr)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.setServiceError(svcErr)
	}

	_ = writeJSON(w, svcErr.HttpStatusCode, ErrorResponse{
		RequestID:  requestID(r),
		SourceName: sourceName(r),
		Error: ErrorDetail{
			Category: svcErr.Category,
			Code:     svcErr.Code,
			Message:  svcErr.Message,
		},
	})
}
