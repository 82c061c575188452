package usecases

import (
	"context"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/commission"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type ListCommissionsQuery struct {
	InstallerID *uint
	BusinessID  *uint
	Status      string
	Type        string
	Offset      int
	Limit       int
}

type ListCommissionsResult struct {
	Records []*commission.Record
	Total   int64
}

type ListCommissionsUseCase struct {
	recordRepo commission.RecordRepository
	logger     logger.Interface
}

func NewListCommissionsUseCase(recordRepo commission.RecordRepository, logger logger.Interface) *ListCommissionsUseCase {
	return &ListCommissionsUseCase{
		recordRepo: recordRepo,
		logger:     logger,
	}
}

func (uc *ListCommissionsUseCase) Execute(ctx context.Context, query ListCommissionsQuery) (*ListCommissionsResult, error) {
	filter := commission.RecordFilter{
		InstallerID: query.InstallerID,
		BusinessID:  query.BusinessID,
	}
	if query.Status != "" {
		status := commission.Status(query.Status)
		filter.Status = &status
	}
	if query.Type != "" {
		commissionType := commission.Type(query.Type)
		filter.Type = &commissionType
	}

	records, total, err := uc.recordRepo.List(ctx, filter, query.Offset, query.Limit)
	if err != nil {
		uc.logger.Errorw("failed to list commission records", "error", err)
		return nil, fmt.Errorf("failed to list commission records: %w", err)
	}

	return &ListCommissionsResult{
		Records: records,
		Total:   total,
	}, nil
}
