package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const brevoAPIURL = "https://api.brevo.com/v3/smtp/email"

// Client sends transactional email through the Brevo REST API. An
// unconfigured client reports itself as such and refuses to send, which lets
// the service degrade to log-only in development.
type Client struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	configured bool
}

func NewClient(apiKey, fromEmail, fromName string) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	if apiKey != "" && fromEmail != "" && fromName != "" {
		c.apiKey = apiKey
		c.fromEmail = fromEmail
		c.fromName = fromName
		c.configured = true
	}
	return c
}

func (c *Client) IsConfigured() bool {
	return c.configured
}

type sendEmailReq struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HtmlContent string              `json:"htmlContent"`
}

func (c *Client) SendEmail(ctx context.Context, toEmail, subject, html string) error {
	if !c.configured {
		return fmt.Errorf("brevo client not configured, email to %s for subject %q skipped", toEmail, subject)
	}
	if toEmail == "" || subject == "" || html == "" {
		return errors.New("toEmail, subject and html content cannot be empty")
	}

	reqBody := sendEmailReq{
		Sender:      map[string]string{"email": c.fromEmail, "name": c.fromName},
		To:          []map[string]string{{"email": toEmail}},
		Subject:     subject,
		HtmlContent: html,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal email request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPIURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create brevo request: %w", err)
	}
	httpReq.Header.Set("api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("brevo send email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]interface{}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errorBody); decodeErr != nil {
			return fmt.Errorf("brevo API error: status %d, failed to decode error body: %v", resp.StatusCode, decodeErr)
		}
		return fmt.Errorf("brevo API error: status %d, body: %v", resp.StatusCode, errorBody)
	}
	return nil
}

func (c *Client) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Welcome to Slice&amp;Stack! Verify your account to start ordering.</p>`,
		name,
	)
	return c.SendEmail(ctx, toEmail, "Welcome to Slice&Stack", html)
}

func (c *Client) SendVerificationOtp(ctx context.Context, toEmail, name, code string, ttl time.Duration) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your Slice&amp;Stack verification code is <b>%s</b>. It is valid for %d minutes.</p>`,
		name, code, int(ttl.Minutes()),
	)
	return c.SendEmail(ctx, toEmail, "Verify your Slice&Stack account", html)
}

func (c *Client) SendResetOtp(ctx context.Context, toEmail, name, code string, ttl time.Duration) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your Slice&amp;Stack password reset code is <b>%s</b>. It is valid for %d minutes. If you did not request a reset, ignore this email.</p>`,
		name, code, int(ttl.Minutes()),
	)
	return c.SendEmail(ctx, toEmail, "Reset your Slice&Stack password", html)
}
