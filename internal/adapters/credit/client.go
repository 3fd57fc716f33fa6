package credit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"fundline/internal/tools"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

// Ensure Client implements the bureau contract
var _ tools.CreditBureau = (*Client)(nil)

// Client calls a soft-pull credit bureau API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a bureau client.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "credit bureau URL is required")
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger.Get().With("component", "credit_bureau"),
	}, nil
}

type pullRequest struct {
	FullName    string `json:"full_name"`
	SSNLast4    string `json:"ssn_last4"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	PullType    string `json:"pull_type"`
}

type pullResponse struct {
	Score        int      `json:"score"`
	Bureau       string   `json:"bureau"`
	OpenTrades   int      `json:"open_trades"`
	Derogatories int      `json:"derogatories"`
	Notes        []string `json:"notes"`
}

// Pull runs a soft credit pull for one applicant.
func (c *Client) Pull(ctx context.Context, req tools.CreditPullRequest) (*tools.CreditReport, error) {
	body, err := json.Marshal(pullRequest{
		FullName:    req.FullName,
		SSNLast4:    req.SSNLast4,
		DateOfBirth: req.DateOfBirth,
		PullType:    "soft",
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode pull request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pulls", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create pull request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(errors.ErrExternal, "bureau request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read bureau response")
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warnf("Bureau returned %d: %s", resp.StatusCode, string(respBody))
		return nil, errors.Wrapf(errors.ErrExternal, "bureau error (%d)", resp.StatusCode)
	}

	var wire pullResponse
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, errors.Wrap(err, "decode bureau response")
	}

	return &tools.CreditReport{
		Score:        wire.Score,
		Bureau:       wire.Bureau,
		OpenTrades:   wire.OpenTrades,
		Derogatories: wire.Derogatories,
		Notes:        wire.Notes,
	}, nil
}
