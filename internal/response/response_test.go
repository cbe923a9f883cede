package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordon0907/ark-tribe-log/internal/tribelog"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&tribelog.DecodeError{Kind: tribelog.ErrMarkerNotFound}, "marker_not_found"},
		{fmt.Errorf("wrapped: %w", &tribelog.DecodeError{Kind: tribelog.ErrCountMismatch}), "count_mismatch"},
		{&tribelog.DecodeError{Kind: tribelog.ErrMalformedHeader, Err: &tribelog.DecodeError{Kind: tribelog.ErrUnexpectedEOF}}, "malformed_header"},
		{errors.New("permission denied"), "io"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err))
	}
}

func TestDecodeFailed(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/tribelog", nil), rec)

	err := &tribelog.DecodeError{Kind: tribelog.ErrMalformedHeader, Offset: 21, Expected: "ArrayProperty\x00", Actual: "MapProperty\x00"}
	require.NoError(t, DecodeFailed(c, err))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/api/tribelog", body.Path)
	require.NotNil(t, body.Decode)
	assert.Equal(t, "malformed_header", body.Decode.Kind)
	assert.EqualValues(t, 21, body.Decode.Offset)
	assert.Equal(t, "MapProperty\x00", body.Decode.Actual)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, DecodeFailed(c, errors.New("read save file: no such file")))
	body = APIError{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Decode)
}
