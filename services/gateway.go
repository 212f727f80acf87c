package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPaid    = "PAID"
	StatusPending = "PENDING"
	StatusFailed  = "FAILED"
	StatusUnknown = "UNKNOWN"
)

type SessionMeta struct {
	UserCode    string
	OrderRef    string
	Description string
}

type GatewaySession struct {
	HostedURL string
	JobRef    string
}

// Gateway is the hosted payment provider contract. PayGateway is the live
// implementation; tests swap in a stub.
type Gateway interface {
	CreateSession(amount decimal.Decimal, meta SessionMeta) (*GatewaySession, error)
	GetStatus(jobRef, paymentRef string) (string, error)
}

var PayGateway Gateway = &HostedGateway{
	Client: &http.Client{Timeout: 15 * time.Second},
}

type HostedGateway struct {
	Client *http.Client
}

func (g *HostedGateway) CreateSession(amount decimal.Decimal, meta SessionMeta) (*GatewaySession, error) {
	payload := map[string]any{
		"amount":      amount.StringFixed(2),
		"currency":    "GBP",
		"user_code":   meta.UserCode,
		"order_ref":   meta.OrderRef,
		"description": meta.Description,
	}

	var result struct {
		HostedURL string `json:"hosted_url"`
		JobRef    string `json:"job_ref"`
		Error     struct {
			ID  int    `json:"id"`
			Msg string `json:"msg"`
		} `json:"error"`
	}
	if err := g.post("/v1/sessions", payload, &result); err != nil {
		return nil, err
	}
	if result.Error.ID != 0 {
		return nil, fmt.Errorf("gateway error: %s", result.Error.Msg)
	}
	if result.JobRef == "" {
		return nil, fmt.Errorf("gateway returned no job ref")
	}

	return &GatewaySession{HostedURL: result.HostedURL, JobRef: result.JobRef}, nil
}

func (g *HostedGateway) GetStatus(jobRef, paymentRef string) (string, error) {
	payload := map[string]any{
		"job_ref":     jobRef,
		"payment_ref": paymentRef,
	}

	var result struct {
		Status string `json:"status"`
		Error  struct {
			ID  int    `json:"id"`
			Msg string `json:"msg"`
		} `json:"error"`
	}
	if err := g.post("/v1/status", payload, &result); err != nil {
		return "", err
	}
	if result.Error.ID != 0 {
		return "", fmt.Errorf("gateway error: %s", result.Error.Msg)
	}

	return result.Status, nil
}

func (g *HostedGateway) post(path string, payload any, out any) error {
	body, _ := json.Marshal(payload)
	url := os.Getenv("GATEWAY_API_URL") + path

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+os.Getenv("GATEWAY_API_KEY"))

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode error: %v", err)
	}
	return nil
}

var (
	paidMarks    = []string{"PAID", "SUCCESS", "CAPTURE"}
	failedMarks  = []string{"FAIL", "CANCEL", "DECLIN", "EXPIR", "REJECT"}
	pendingMarks = []string{"PENDING", "PROCESS", "AUTHOR", "CREATED"}
)

// NormalizeStatus maps the gateway's free-form status vocabulary onto the four
// states the reconciler acts on. Any vocabulary drift is fixed here and nowhere
// else.
func NormalizeStatus(raw string) string {
	status := strings.ToUpper(strings.TrimSpace(raw))
	if status == "" {
		return StatusUnknown
	}

	for _, mark := range paidMarks {
		if strings.Contains(status, mark) {
			return StatusPaid
		}
	}
	for _, mark := range failedMarks {
		if strings.Contains(status, mark) {
			return StatusFailed
		}
	}
	for _, mark := range pendingMarks {
		if strings.Contains(status, mark) {
			return StatusPending
		}
	}
	return StatusUnknown
}
