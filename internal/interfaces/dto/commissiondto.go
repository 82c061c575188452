package dto

import (
	"time"

	"github.com/servio-inc/servio/internal/domain/commission"
)

type CommissionPolicyResponse struct {
	OnboardingRate          int  `json:"onboarding_rate"`
	RenewalRate             int  `json:"renewal_rate"`
	EnableRenewalCommission bool `json:"enable_renewal_commission"`
	MinRenewalDays          int  `json:"min_renewal_days"`
	CommissionDurationDays  int  `json:"commission_duration_days"`
}

func NewCommissionPolicyResponse(policy *commission.Policy) CommissionPolicyResponse {
	return CommissionPolicyResponse{
		OnboardingRate:          policy.OnboardingRate(),
		RenewalRate:             policy.RenewalRate(),
		EnableRenewalCommission: policy.EnableRenewalCommission(),
		MinRenewalDays:          policy.MinRenewalDays(),
		CommissionDurationDays:  policy.CommissionDurationDays(),
	}
}

type CommissionRecordResponse struct {
	CommissionID string     `json:"commission_id"`
	InstallerID  uint       `json:"installer_id"`
	BusinessID   uint       `json:"business_id"`
	Type         string     `json:"type"`
	Amount       int64      `json:"amount"`
	Status       string     `json:"status"`
	Reference    string     `json:"reference"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewCommissionRecordResponse(record *commission.Record) CommissionRecordResponse {
	return CommissionRecordResponse{
		CommissionID: record.CID(),
		InstallerID:  record.InstallerID(),
		BusinessID:   record.BusinessID(),
		Type:         string(record.CommissionType()),
		Amount:       record.Amount(),
		Status:       string(record.Status()),
		Reference:    record.TransactionReference(),
		PaidAt:       record.PaidAt(),
		CreatedAt:    record.CreatedAt(),
	}
}

func NewCommissionRecordResponses(records []*commission.Record) []CommissionRecordResponse {
	out := make([]CommissionRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewCommissionRecordResponse(record))
	}
	return out
}
