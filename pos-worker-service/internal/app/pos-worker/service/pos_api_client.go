package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"webpos/pos-worker-service/internal/app/pos-worker/entity"

	"github.com/golang-jwt/jwt/v5"
)

const (
	serviceSubject  = "pos-worker"
	serviceRole     = "admin"
	serviceTokenTTL = 5 * time.Minute

	backupPath  = "/api/v1/backup"
	restorePath = "/api/v1/backup/restore"
)

var ErrPOSUnavailable = errors.New("pos-service request failed")

// serviceClaims mirror the staff claims pos-service expects. StaffID 0 marks
// a service caller.
type serviceClaims struct {
	StaffID int64  `json:"staff_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

type POSAPIClient struct {
	baseURL    string
	secret     []byte
	httpClient *http.Client
}

func NewPOSAPIClient(baseURL, jwtSecret string, timeout time.Duration) *POSAPIClient {
	return &POSAPIClient{
		baseURL: baseURL,
		secret:  []byte(jwtSecret),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *POSAPIClient) FetchBackup(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, backupPath, nil)
}

func (c *POSAPIClient) RestoreBackup(ctx context.Context, snapshot []byte) (*entity.RestoreResult, error) {
	body, err := c.do(ctx, http.MethodPost, restorePath, snapshot)
	if err != nil {
		return nil, err
	}

	var result entity.RestoreResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal restore response: %w", err)
	}
	return &result, nil
}

func (c *POSAPIClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	token, err := c.serviceToken()
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPOSUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %s returned status %d: %s", ErrPOSUnavailable, method, path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *POSAPIClient) serviceToken() (string, error) {
	now := time.Now()
	claims := serviceClaims{
		Role: serviceRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   serviceSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(serviceTokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}
	return signed, nil
}
