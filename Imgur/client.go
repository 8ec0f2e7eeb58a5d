package Imgur

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client talks to the Imgur image host. One POST per image, no batch endpoint.
type Client struct {
	ClientID   string
	BaseURL    string
	HTTPClient *http.Client
}

type uploadRequest struct {
	Image string `json:"image"`
	Type  string `json:"type"`
}

type uploadResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		Link  string `json:"link"`
		Error string `json:"error"`
	} `json:"data"`
}

// NewClient creates an Imgur client using anonymous Client-ID authorization.
func NewClient(clientID string) *Client {
	return &Client{
		ClientID:   clientID,
		BaseURL:    "https://api.imgur.com/3",
		HTTPClient: http.DefaultClient,
	}
}

// Upload posts one image as base64 and returns its public URL.
func (c *Client) Upload(ctx context.Context, photo []byte) (string, error) {
	payload := uploadRequest{
		Image: base64.StdEncoding.EncodeToString(photo),
		Type:  "base64",
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshaling JSON: %v", err)
	}

	url := fmt.Sprintf("%s/image", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.ClientID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error uploading image: %v", err)
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error decoding response: %v", err)
	}
	if !result.Success || result.Data.Link == "" {
		return "", fmt.Errorf("image upload rejected (status %d): %s", resp.StatusCode, result.Data.Error)
	}
	return result.Data.Link, nil
}
