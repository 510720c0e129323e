package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mailmerge/internal/domain"
)

// Client talks to the Microsoft Graph REST API using a delegated access
// token supplied per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Graph client rooted at baseURL, e.g.
// "https://graph.microsoft.com/v1.0".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendMailRequest struct {
	Message message `json:"message"`
}

type message struct {
	Subject      string      `json:"subject"`
	Body         itemBody    `json:"body"`
	ToRecipients []recipient `json:"toRecipients"`
}

type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type emailAddress struct {
	Address string `json:"address"`
}

// SendMail delivers one HTML message through POST /me/sendMail on behalf of
// the token's user. Graph responds 202 Accepted on success.
func (c *Client) SendMail(ctx context.Context, token, to, subject, htmlBody string) error {
	if token == "" {
		return domain.ErrNoToken
	}

	payload := sendMailRequest{
		Message: message{
			Subject:      subject,
			Body:         itemBody{ContentType: "HTML", Content: htmlBody},
			ToRecipients: []recipient{{EmailAddress: emailAddress{Address: to}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode sendMail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/me/sendMail", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: provider returned %d", domain.ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send mail: unexpected status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

type meResponse struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// Me fetches the signed-in user's profile from GET /me. Accounts without a
// mailbox report the principal name instead of a mail address.
func (c *Client) Me(ctx context.Context, token string) (*domain.UserInfo, error) {
	if token == "" {
		return nil, domain.ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return nil, fmt.Errorf("build me request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: provider returned %d", domain.ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}

	var me meResponse
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	email := me.Mail
	if email == "" {
		email = me.UserPrincipalName
	}
	return &domain.UserInfo{ID: me.ID, Email: email, DisplayName: me.DisplayName}, nil
}
