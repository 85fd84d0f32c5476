// Package analytics 以 Google Analytics 的 page view 統計信件被開啟 (掃描) 的次數.
package analytics

import (
	"context"
	"errors"
	"strings"
)

// ErrNotConfigured 沒有設定 GA 憑證
var ErrNotConfigured = errors.New("analytics is not configured")

// PageView report 的一列
type PageView struct {
	Path  string
	Views int64
}

// ScanCount /api/analytics 的回應
type ScanCount struct {
	TotalScans int64  `json:"totalScans"`
	Display    string `json:"display"`
}

// ReportSource 取得最近 30 天各頁面的瀏覽數
type ReportSource interface {
	PageViews(ctx context.Context) ([]PageView, error)
}

// SumScans 加總 path 含有 filter 的列
func SumScans(rows []PageView, filter string) int64 {
	var total int64
	for _, r := range rows {
		if strings.Contains(r.Path, filter) {
			total += r.Views
		}
	}
	return total
}
