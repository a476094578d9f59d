package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fast2SMSProvider talks to the Fast2SMS bulkV2 endpoint. The API key is sent
// in the "authorization" header, not as a Bearer token.
type Fast2SMSProvider struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	senderID   string
}

type fast2smsPayload struct {
	Route    string `json:"route"`
	SenderID string `json:"sender_id,omitempty"`
	Message  string `json:"message"`
	Numbers  string `json:"numbers"`
}

type fast2smsResult struct {
	Return    bool     `json:"return"`
	RequestID string   `json:"request_id"`
	Message   []string `json:"message"`
}

func NewFast2SMSProvider(endpoint, apiKey, senderID string) *Fast2SMSProvider {
	return &Fast2SMSProvider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		senderID:   senderID,
	}
}

func (f *Fast2SMSProvider) SendSMS(ctx context.Context, request *SMSRequest) (*SMSResponse, error) {
	payload := fast2smsPayload{
		Route:    "v3",
		SenderID: f.senderID,
		Message:  request.Message,
		Numbers:  request.To,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode SMS payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("authorization", f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return &SMSResponse{Status: "failed", Error: err.Error()}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read SMS response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("fast2sms returned status %d", resp.StatusCode)
		return &SMSResponse{Status: "failed", Error: err.Error()}, err
	}

	var result fast2smsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode SMS response: %w", err)
	}

	if !result.Return {
		err := fmt.Errorf("fast2sms rejected message: %v", result.Message)
		return &SMSResponse{Status: "failed", Error: err.Error()}, err
	}

	return &SMSResponse{
		MessageID: result.RequestID,
		Status:    "sent",
	}, nil
}
