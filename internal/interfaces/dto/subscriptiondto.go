package dto

import (
	"time"

	"github.com/servio-inc/servio/internal/domain/subscription"
)

type SubscriptionResponse struct {
	SID          string     `json:"sid"`
	BusinessID   uint       `json:"business_id"`
	PlanTier     string     `json:"plan_tier"`
	Cycle        string     `json:"cycle,omitempty"`
	Status       string     `json:"status"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	AmountPaid   int64      `json:"amount_paid"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelReason *string    `json:"cancel_reason,omitempty"`
}

func NewSubscriptionResponse(sub *subscription.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		SID:          sub.SID(),
		BusinessID:   sub.BusinessID(),
		PlanTier:     sub.PlanTier().String(),
		Status:       sub.Status().String(),
		StartDate:    sub.StartDate(),
		AmountPaid:   sub.AmountPaid(),
		CancelledAt:  sub.CancelledAt(),
		CancelReason: sub.CancelReason(),
	}

	if sub.Cycle() != "" {
		resp.Cycle = sub.Cycle().String()
	}
	if !sub.EndDate().IsZero() {
		endDate := sub.EndDate()
		resp.EndDate = &endDate
	}

	return resp
}

type ModuleGrantResponse struct {
	ModuleCode string     `json:"module_code"`
	IsActive   bool       `json:"is_active"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

func NewModuleGrantResponse(grant *subscription.ModuleGrant) ModuleGrantResponse {
	return ModuleGrantResponse{
		ModuleCode: grant.ModuleCode(),
		IsActive:   grant.IsActive(),
		ExpiryDate: grant.ExpiryDate(),
	}
}

func NewModuleGrantResponses(grants []*subscription.ModuleGrant) []ModuleGrantResponse {
	out := make([]ModuleGrantResponse, 0, len(grants))
	for _, grant := range grants {
		out = append(out, NewModuleGrantResponse(grant))
	}
	return out
}
