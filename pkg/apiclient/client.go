// Package apiclient implements the remote backend of the personal-finance
// API. Every authenticated call reads the bearer token from the token store;
// a rejected token is removed so the caller can route the user back to login.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/azhovnerik/personal-finance-mobile/pkg/auth"
	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// ClientConfig represents the configuration for the API client.
type ClientConfig struct {
	BaseURL string
	Tokens  auth.Store
	Timeout time.Duration // Default: 30 seconds
}

// Client is a personal-finance API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     auth.Store
	now        func() time.Time
}

// NewClient creates a new API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    config.BaseURL,
		tokens:     config.Tokens,
		now:        time.Now,
	}
}

// Login exchanges credentials for a bearer token and stores it.
func (c *Client) Login(email, password string) (string, error) {
	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/api/v2/user/auth/login", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", parseError(resp)
	}

	var loginResp models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if err := c.tokens.SetToken(loginResp.Token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return loginResp.Token, nil
}

// ListTransactions fetches the transaction list matching the filter, encoded
// as query parameters.
func (c *Client) ListTransactions(f filter.Filter) ([]models.Transaction, error) {
	endpoint := fmt.Sprintf("%s/api/v2/transactions", c.baseURL)
	if query := f.Query().Encode(); query != "" {
		endpoint = fmt.Sprintf("%s?%s", endpoint, query)
	}

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.doAuthorized(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var transactions []models.Transaction
	if err := json.NewDecoder(resp.Body).Decode(&transactions); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return transactions, nil
}

// CreateTransaction submits a new transaction. A bare calendar date gets the
// current wall-clock time appended so the backend can order same-day records,
// and the local time-zone identifier rides along. A missing idempotency key
// is generated here, so a resubmission of the same request value would still
// produce a fresh key: callers that retry must reuse the returned request.
func (c *Client) CreateTransaction(txnReq models.CreateTransactionRequest) (*models.Transaction, error) {
	now := c.now()
	if len(txnReq.Date) == len(filter.DateLayout) {
		txnReq.Date = txnReq.Date + "T" + now.Format("15:04:05")
	}
	if txnReq.Timezone == "" {
		txnReq.Timezone = now.Location().String()
	}
	if txnReq.IdempotencyKey == "" {
		txnReq.IdempotencyKey = uuid.NewString()
	}

	body, err := json.Marshal(txnReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/api/v2/transactions", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.doAuthorized(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, parseError(resp)
	}

	var created models.Transaction
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &created, nil
}

// DeleteTransaction removes the transaction with the given id.
func (c *Client) DeleteTransaction(id string) error {
	req, err := http.NewRequest("DELETE", fmt.Sprintf("%s/api/v2/transactions/%s/delete", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.doAuthorized(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return parseError(resp)
	}

	return nil
}

// ListAccounts fetches the user's accounts.
func (c *Client) ListAccounts() ([]models.Account, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/api/v2/accounts", c.baseURL), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.doAuthorized(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var accounts []models.Account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return accounts, nil
}

// CategoryTree fetches the category tree, optionally restricted to one
// category type.
func (c *Client) CategoryTree(categoryType models.CategoryType) ([]models.CategoryNode, error) {
	endpoint := fmt.Sprintf("%s/api/v2/categories/tree", c.baseURL)
	if categoryType != "" {
		endpoint = fmt.Sprintf("%s?type=%s", endpoint, categoryType)
	}

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.doAuthorized(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var tree []models.CategoryNode
	if err := json.NewDecoder(resp.Body).Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return tree, nil
}

// doAuthorized attaches the stored bearer token and executes the request. A
// missing token short-circuits before any network traffic; a 401 response
// removes the stored token. Both surface as models.ErrSessionExpired.
func (c *Client) doAuthorized(req *http.Request) (*http.Response, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	if token == "" {
		return nil, models.ErrSessionExpired
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.tokens.RemoveToken(); err != nil {
			return nil, fmt.Errorf("failed to remove rejected token: %w", err)
		}
		return nil, models.ErrSessionExpired
	}

	return resp, nil
}

// parseError parses a non-success response into an APIError, keeping the
// error envelope's message when the body carries one.
func parseError(resp *http.Response) error {
	apiErr := &models.APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Message
	}

	return apiErr
}
