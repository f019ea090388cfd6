package panels

import "context"

// EmailRequest is the payload for the backend's send email endpoint.
type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	DryRun  bool   `json:"dry_run,omitempty"`
}

// EmailResult is the backend's acknowledgement of a send request.
type EmailResult struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Email is the client for the backend's communication endpoints.
type Email struct {
	client *Client
}

// NewEmail creates an email client on top of the shared client.
func NewEmail(c *Client) *Email {
	return &Email{client: c}
}

// Send submits an email for delivery. The backend decides the provider;
// with DryRun set it validates and logs without sending.
func (e *Email) Send(ctx context.Context, req EmailRequest) (*EmailResult, error) {
	var res EmailResult
	if err := e.client.Post(ctx, "/api/communication/send_email", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
