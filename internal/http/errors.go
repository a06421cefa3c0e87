package http

import (
	"errors"
	"fmt"
	"net/http"

	"outlog/internal/shared/svcerrors"
)

// http layer errors
const (
	codeBodyTooLarge = "HTTP_1000"
)

func errBodyTooLarge(limit int64, cause error) *svcerrors.ServiceError {
	return svcerrors.NewPayloadTooLargeError(codeBodyTooLarge, fmt.Sprintf("log body exceeds %d bytes", limit), cause)
}

// toServiceError resolves what a handler returned into the error the client sees.
// A body cut off by MaxBytesReader surfaces from the compactor as an unreadable body (CMP_1000),
// so the size limit is checked first.
func toServiceError(err error) *svcerrors.ServiceError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge(tooLarge.Limit, err)
	}
	if svcErr, ok := svcerrors.As(err); ok {
		return svcErr
	}
	return svcerrors.NewInternalErrorUndefined(err)
}
