package EmailJS

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client talks to the EmailJS transactional relay. One POST per report.
type Client struct {
	ServiceID  string
	TemplateID string
	UserID     string
	BaseURL    string
	HTTPClient *http.Client
}

type sendRequest struct {
	ServiceID      string                 `json:"service_id"`
	TemplateID     string                 `json:"template_id"`
	UserID         string                 `json:"user_id"`
	TemplateParams map[string]interface{} `json:"template_params"`
}

func NewClient(serviceID, templateID, userID string) *Client {
	return &Client{
		ServiceID:  serviceID,
		TemplateID: templateID,
		UserID:     userID,
		BaseURL:    "https://api.emailjs.com/api/v1.0",
		HTTPClient: http.DefaultClient,
	}
}

// Send posts the template parameters to the relay. A 2xx status means the
// report is considered delivered. There is no idempotency token: a retry after
// a false-negative failure (timeout after the relay actually accepted the
// message) can produce a duplicate email.
func (c *Client) Send(ctx context.Context, templateParams map[string]interface{}) error {
	payload := sendRequest{
		ServiceID:      c.ServiceID,
		TemplateID:     c.TemplateID,
		UserID:         c.UserID,
		TemplateParams: templateParams,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %v", err)
	}

	url := fmt.Sprintf("%s/email/send", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email relay returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
