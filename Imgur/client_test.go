package Imgur

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	var gotAuth, gotImage, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/image", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotImage = body["image"]
		gotType = body["type"]

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"status":  200,
			"data":    map[string]string{"link": "https://i.imgur.com/abc123.jpg"},
		})
	}))
	defer server.Close()

	client := NewClient("546c25a59c58ad7")
	client.BaseURL = server.URL

	link, err := client.Upload(context.Background(), []byte("photo-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.imgur.com/abc123.jpg", link)
	assert.Equal(t, "Client-ID 546c25a59c58ad7", gotAuth)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("photo-bytes")), gotImage)
	assert.Equal(t, "base64", gotType)
}

func TestUploadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"status":  400,
			"data":    map[string]string{"error": "Invalid client_id"},
		})
	}))
	defer server.Close()

	client := NewClient("bad-id")
	client.BaseURL = server.URL

	_, err := client.Upload(context.Background(), []byte("photo-bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Invalid client_id")
}

func TestUploadUnreachableHost(t *testing.T) {
	client := NewClient("546c25a59c58ad7")
	client.BaseURL = "http://127.0.0.1:1"

	_, err := client.Upload(context.Background(), []byte("photo-bytes"))
	assert.Error(t, err)
}
