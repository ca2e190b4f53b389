package response

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/util"
	"Ripple/internal/service"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var stdErr error
	var target struct{ N int }
	stdErr = stdjson.Unmarshal([]byte(`{"N":"x"}`), &target)
	require.Error(t, stdErr)

	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"mapped", service.ErrPostNotFound, NotFound, service.ErrPostNotFound.Error()},
		{"forbidden", service.ErrPostForbidden, Forbidden, service.ErrPostForbidden.Error()},
		{"validation", fmt.Errorf("%w: 字段 [Content]", util.ErrValidation), BadRequest, ""},
		{"json", stdErr, BadRequest, "Json错误"},
		{"unknown", errors.New("dial tcp: refused"), InternalServerError, service.UnExpectedError.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			Error(c, tc.err)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, 200, w.Code)
			assert.Equal(t, tc.wantCode, resp.Code)
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, resp.Message)
			}
		})
	}
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, map[string]int{"n": 1})

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, Ok, resp.Code)
	assert.Equal(t, "success", resp.Message)
}
