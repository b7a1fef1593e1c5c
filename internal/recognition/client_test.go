package recognition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shoetrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDecodesMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req detectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "aGVsbG8=", req.Image)
		assert.Equal(t, "image/jpeg", req.MimeType)

		json.NewEncoder(w).Encode(models.Detection{
			Color:          "Red/Black",
			Size:           "42",
			WholesalePrice: 8500,
			RetailerPrice:  12500,
			Brand:          "Nike",
			Confidence:     0.91,
			Notes:          "clear frame",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 0)
	detection, err := c.Detect(context.Background(), "aGVsbG8=")
	require.NoError(t, err)

	assert.True(t, detection.IsMatch())
	assert.Equal(t, "Nike", detection.Brand)
	assert.Equal(t, int64(12500), detection.RetailerPrice)
}

func TestDetectLowConfidenceIsValidEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Detection{
			Brand:      "Nike",
			Confidence: 0.1,
			Notes:      "blurry frame",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	detection, err := c.Detect(context.Background(), "x")
	require.NoError(t, err, "low confidence is not a gateway failure")
	assert.False(t, detection.IsMatch())
}

func TestDetectNoneDetectedIsNotAMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Detection{
			Brand:      models.BrandNoneDetected,
			Confidence: 0.9,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	detection, err := c.Detect(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, detection.IsMatch())
}

func TestDetectServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	_, err := c.Detect(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, models.IsTransient(err))
}

func TestDetectMalformedBodyIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{truncated"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	_, err := c.Detect(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, models.IsTransient(err))
}

func TestDetectNetworkFailureIsTransient(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", 0)
	_, err := c.Detect(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, models.IsTransient(err))
}
