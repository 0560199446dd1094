package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

const (
	latestReportKey = "demand:report:latest"

	latestReportTTL = 30 * 24 * time.Hour // 30 days
)

type runReportRepository struct {
	client *redis.Client
}

func NewRunReportRepository(client *redis.Client) domain.RunReportRepository {
	return &runReportRepository{
		client: client,
	}
}

// SaveLatest replaces the stored report. Only the most recent run is kept.
func (r *runReportRepository) SaveLatest(ctx context.Context, report *domain.RunReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidReportData, err)
	}

	return r.client.Set(ctx, latestReportKey, data, latestReportTTL).Err()
}

func (r *runReportRepository) GetLatest(ctx context.Context) (*domain.RunReport, error) {
	data, err := r.client.Get(ctx, latestReportKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}

	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReportData, err)
	}

	return &report, nil
}
