package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franks42/uuidv7-go/internal/generator"
)

const testBatchMax = 100

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewHandler(generator.NewUUIDv7Generator(), testBatchMax)
	h.RegisterRoutes(r)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestGenerateID(t *testing.T) {
	r := newTestRouter(t)

	code, env := doRequest(t, r, http.MethodPost, "/api/v1/ids", nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var data struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.ID, 36)
	assert.Equal(t, byte('7'), data.ID[14])
	assert.Contains(t, "89ab", string(data.ID[19]))
}

func TestGenerateBatch(t *testing.T) {
	r := newTestRouter(t)

	code, env := doRequest(t, r, http.MethodPost, "/api/v1/ids/batch", gin.H{"count": 50})
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var data struct {
		IDs []string `json:"ids"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.IDs, 50)
	assert.True(t, sort.StringsAreSorted(data.IDs), "batch must be in creation order")
}

func TestGenerateBatch_CountBounds(t *testing.T) {
	r := newTestRouter(t)

	for _, count := range []int{0, -5, testBatchMax + 1} {
		t.Run(fmt.Sprintf("count=%d", count), func(t *testing.T) {
			code, env := doRequest(t, r, http.MethodPost, "/api/v1/ids/batch", gin.H{"count": count})
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, "BAD_REQUEST", env.Error.Code)
		})
	}
}

func TestValidateID(t *testing.T) {
	r := newTestRouter(t)

	t.Run("valid id", func(t *testing.T) {
		code, env := doRequest(t, r, http.MethodPost, "/api/v1/ids/validate",
			gin.H{"id": "0194e093-ef2f-7b1c-8000-3a4d3f151d8e"})
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Valid  bool   `json:"valid"`
			Reason string `json:"reason"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.True(t, data.Valid)
		assert.Empty(t, data.Reason)
	})

	t.Run("invalid id", func(t *testing.T) {
		code, env := doRequest(t, r, http.MethodPost, "/api/v1/ids/validate", gin.H{"id": "not-a-uuid"})
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Valid  bool   `json:"valid"`
			Reason string `json:"reason"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.False(t, data.Valid)
		assert.NotEmpty(t, data.Reason)
	})
}

func TestParseID(t *testing.T) {
	r := newTestRouter(t)

	code, env := doRequest(t, r, http.MethodGet, "/api/v1/ids/0194e093-ef2f-7b1c-8000-3a4d3f151d8e", nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var data parseResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, uint64(1738934578991), data.TimestampMs)
	assert.Equal(t, uint16(2844), data.CounterA)
	assert.Equal(t, uint32(14925), data.CounterBHi)
	assert.Equal(t, uint32(1058348430), data.CounterBLo)
	assert.Equal(t, "b1c00003a4d3f151d8e", data.CounterHex)
	assert.Equal(t, data.TimestampMs, data.Key.TimestampMs)
}

func TestParseID_Invalid(t *testing.T) {
	r := newTestRouter(t)

	code, env := doRequest(t, r, http.MethodGet, "/api/v1/ids/garbage", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNPROCESSABLE_ENTITY", env.Error.Code)
}

func TestGenerateThenParse(t *testing.T) {
	r := newTestRouter(t)

	_, env := doRequest(t, r, http.MethodPost, "/api/v1/ids", nil)
	var data struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	code, env := doRequest(t, r, http.MethodGet, "/api/v1/ids/"+data.ID, nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)
}
