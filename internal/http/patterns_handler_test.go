package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	compactormocks "outlog/internal/compactors/mocks"
	"outlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPatternsHandler_Handle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCompactionService := compactormocks.NewMockCompactionService(ctrl)
	handler := NewPatternsHandler(mockCompactionService, models.DefaultFrameMarker)

	mockCompactionService.EXPECT().Patterns().Return([]models.Pattern{
		{
			Name:             "tail",
			PrefixLines:      []string{">>>>>>/p/a.py(1)f()"},
			SuffixBlock:      []string{">>>>>>/p/b.py(2)g()"},
			IsVariableSuffix: true,
		},
		{
			Name:  "pair",
			Lines: []string{">>>>>>/p/a.py(1)f()", ">>>>>>/p/c.py(3)h()"},
		},
	})

	rr := httptest.NewRecorder()
	require.NoError(t, handler.Handle(rr, httptest.NewRequest(http.MethodGet, "/patterns", nil)))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp PatternsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Patterns, 2)

	assert.Equal(t, "tail", resp.Patterns[0].Name)
	assert.True(t, resp.Patterns[0].IsVariableSuffix)
	assert.Equal(t, []models.TraceFrame{{File: "/p/a.py", Line: 1, Function: "f"}}, resp.Patterns[0].Frames)
	assert.Equal(t, []models.TraceFrame{{File: "/p/b.py", Line: 2, Function: "g"}}, resp.Patterns[0].SuffixFrames)

	assert.Equal(t, "pair", resp.Patterns[1].Name)
	assert.Equal(t, []models.TraceFrame{
		{File: "/p/a.py", Line: 1, Function: "f"},
		{File: "/p/c.py", Line: 3, Function: "h"},
	}, resp.Patterns[1].Frames)
	assert.Empty(t, resp.Patterns[1].SuffixFrames)
}
