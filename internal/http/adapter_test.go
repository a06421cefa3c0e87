package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"outlog/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handlerFunc adapts a function to AppHttpHandler.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (f handlerFunc) Handle(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

func TestAdapt_MapsErrors(t *testing.T) {
	t.Parallel()

	bodyTooLarge := fmt.Errorf("failed to scan line 3: %w", &http.MaxBytesError{Limit: 4})

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedDetail ErrorDetail
	}{
		{
			name:           "unreadable body",
			err:            svcerrors.NewInvalidArgumentError("CMP_1000", "unreadable log body", nil),
			expectedStatus: http.StatusBadRequest,
			expectedDetail: ErrorDetail{Category: "invalid_argument", Code: "CMP_1000", Message: "unreadable log body"},
		},
		{
			name:           "no inputs matched",
			err:            svcerrors.NewNotFoundError("CMP_1001", "no outlogs matched", nil),
			expectedStatus: http.StatusNotFound,
			expectedDetail: ErrorDetail{Category: "not_found", Code: "CMP_1001", Message: "no outlogs matched"},
		},
		{
			name:           "output write failed hides the cause",
			err:            svcerrors.NewInternalError("CMP_9001", assert.AnError),
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: ErrorDetail{Category: "internal", Code: "CMP_9001", Message: "internal server error"},
		},
		{
			name:           "body over the limit wins over CMP_1000",
			err:            svcerrors.NewInvalidArgumentError("CMP_1000", "unreadable log body", bodyTooLarge),
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedDetail: ErrorDetail{Category: "payload_too_large", Code: "HTTP_1000", Message: "log body exceeds 4 bytes"},
		},
		{
			name:           "plain error",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: ErrorDetail{Category: "internal", Code: "SYS_9001", Message: "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := adapt(handlerFunc(func(w http.ResponseWriter, r *http.Request) error {
				return tt.err
			}))

			req := httptest.NewRequest(http.MethodPost, "/compactions", nil)
			req.Header.Set(headerRequestID, "req-"+tt.expectedDetail.Code)
			req.Header.Set(headerSourceName, "run_3.log")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "req-"+tt.expectedDetail.Code, resp.RequestID)
			assert.Equal(t, "run_3.log", resp.SourceName)
			assert.Equal(t, tt.expectedDetail, resp.Error)
		})
	}
}

func TestAdapt_RecordsErrorCodeOnWriter(t *testing.T) {
	t.Parallel()

	handler := adapt(handlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		return svcerrors.NewInvalidArgumentError("CMP_1000", "source name too long", nil)
	}))

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	handler.ServeHTTP(appWriter, httptest.NewRequest(http.MethodPost, "/compactions", nil))

	assert.Equal(t, "CMP_1000", appWriter.errorCode())
	assert.Equal(t, http.StatusBadRequest, appWriter.statusCode())
}

func TestAdapt_SuccessLeavesResponseAlone(t *testing.T) {
	t.Parallel()

	handler := adapt(handlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		return writeJSON(w, http.StatusOK, PatternsResponse{Patterns: []PatternResponse{}})
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/patterns", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"patterns":[]}`, rr.Body.String())
}
