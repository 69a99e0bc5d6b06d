package twilio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samirrijal/textmaps/internal/core/domain"
)

// Client implements ports.Messenger against the Twilio Messages REST API.
// Outbound MMS carries one direction step as text plus one media URL.
type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	sender     string
	http       *http.Client
}

// New creates a messaging client. sender is the shortcode or number the
// messages come from.
func New(baseURL, accountSID, authToken, sender string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		accountSID: accountSID,
		authToken:  authToken,
		sender:     sender,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts one message. At least one of body and mediaURLs is required.
// A non-201 response becomes a *domain.DeliveryError carrying the provider's
// raw error payload.
func (c *Client) Send(ctx context.Context, to, body string, mediaURLs []string) error {
	if body == "" && len(mediaURLs) == 0 {
		return errors.New("need at least one of body, media URLs")
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.sender)
	if body != "" {
		form.Set("Body", body)
	}
	for _, m := range mediaURLs {
		form.Add("MediaUrl", m)
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &domain.DeliveryError{To: to, Err: err}
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.DeliveryError{To: to, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.DeliveryError{
			To:      to,
			Payload: string(payload),
			Err:     fmt.Errorf("HTTP %d from messaging provider", resp.StatusCode),
		}
	}
	return nil
}
