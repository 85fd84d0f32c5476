package analytics

import (
	"context"

	"otodoke_life/pkg/logger"
	"otodoke_life/pkg/metrics"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const totalScansKey = "analytics:total_scans"

// AnalyticsUseCase 掃描次數
type AnalyticsUseCase interface {
	TotalScans(ctx context.Context) (ScanCount, error)
}

type analyticsUseCase struct {
	source     ReportSource
	cache      Cache
	pathFilter string
}

// NewAnalyticsUseCase pathFilter 例如 /letter
func NewAnalyticsUseCase(source ReportSource, cache Cache, pathFilter string) AnalyticsUseCase {
	return &analyticsUseCase{
		source:     source,
		cache:      cache,
		pathFilter: pathFilter,
	}
}

// TotalScans 先查快取, miss 時呼叫 GA
func (a *analyticsUseCase) TotalScans(ctx context.Context) (ScanCount, error) {
	if v, ok := a.cache.Get(ctx, totalScansKey); ok {
		metrics.AnalyticsFetch.WithLabelValues("cache", metrics.ResultOK).Inc()
		return v, nil
	}

	rows, err := a.source.PageViews(ctx)
	if err != nil {
		metrics.AnalyticsFetch.WithLabelValues("report", metrics.ResultError).Inc()
		logger.Log.Error("fetch analytics report", zap.Error(err))
		return ScanCount{}, err
	}
	metrics.AnalyticsFetch.WithLabelValues("report", metrics.ResultOK).Inc()

	total := SumScans(rows, a.pathFilter)
	count := ScanCount{TotalScans: total, Display: humanize.Comma(total)}
	a.cache.Set(ctx, totalScansKey, count)

	logger.Log.Debug("analytics report", zap.Int("rows", len(rows)), zap.Int64("total_scans", total))
	return count, nil
}
