// Package payment talks to the external payment gateway.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/servio-inc/servio/internal/application/subscription/usecases"
	"github.com/servio-inc/servio/internal/shared/config"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

const (
	defaultVerifyTimeout = 10 * time.Second
	// Maximum response body size for the gateway verify endpoint (64KB)
	maxVerifyResponseSize = 64 << 10
)

// verifyResponse is the gateway's answer for a transaction lookup.
type verifyResponse struct {
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// GatewayVerifier confirms transaction references against the payment
// gateway before any subscription state changes. The gateway is the source
// of truth for whether money actually moved.
type GatewayVerifier struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     logger.Interface
}

func NewGatewayVerifier(cfg config.PaymentConfig, logger logger.Interface) *GatewayVerifier {
	timeout := defaultVerifyTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &GatewayVerifier{
		baseURL:   cfg.GatewayURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

var _ usecases.PaymentVerifier = (*GatewayVerifier)(nil)

// Verify confirms the reference corresponds to a captured payment of at
// least expectedAmount cents. Gateway unavailability is reported as a
// verification failure rather than an internal error: an unverifiable
// payment must never activate a subscription.
func (v *GatewayVerifier) Verify(ctx context.Context, reference string, expectedAmount int64) error {
	url := fmt.Sprintf("%s/v1/transactions/%s", v.baseURL, reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.NewPaymentVerificationError("failed to build gateway request", err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+v.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Errorw("payment gateway request failed", "reference", reference, "error", err)
		return apperrors.NewPaymentVerificationError("payment gateway unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVerifyResponseSize))
	if err != nil {
		v.logger.Errorw("failed to read gateway response", "reference", reference, "error", err)
		return apperrors.NewPaymentVerificationError("failed to read gateway response")
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to payload checks
	case http.StatusNotFound:
		v.logger.Warnw("payment reference unknown to gateway", "reference", reference)
		return apperrors.NewPaymentVerificationError("payment reference not found")
	default:
		v.logger.Errorw("unexpected gateway response",
			"reference", reference,
			"status_code", resp.StatusCode)
		return apperrors.NewPaymentVerificationError(
			fmt.Sprintf("unexpected gateway status %d", resp.StatusCode))
	}

	var payload verifyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		v.logger.Errorw("failed to decode gateway response", "reference", reference, "error", err)
		return apperrors.NewPaymentVerificationError("invalid gateway response")
	}

	if payload.Status != "captured" {
		v.logger.Warnw("payment not captured",
			"reference", reference,
			"gateway_status", payload.Status)
		return apperrors.NewPaymentVerificationError(
			fmt.Sprintf("payment not captured: status=%s", payload.Status))
	}

	if payload.Amount < expectedAmount {
		v.logger.Warnw("payment amount below quote",
			"reference", reference,
			"paid", payload.Amount,
			"expected", expectedAmount)
		return apperrors.NewPaymentVerificationError(
			fmt.Sprintf("paid amount %d below expected %d", payload.Amount, expectedAmount))
	}

	v.logger.Debugw("payment verified", "reference", reference, "amount", payload.Amount)
	return nil
}
