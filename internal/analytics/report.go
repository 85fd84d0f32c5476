package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"otodoke_life/pkg/config"
	errprocess "otodoke_life/pkg/err"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

const (
	readonlyScope = "https://www.googleapis.com/auth/analytics.readonly"
	reportWindow  = "30daysAgo"
)

// GAReportSource Google Analytics Data API v1beta runReport
type GAReportSource struct {
	service  *analyticsdata.Service
	property string
}

// NewGAReportSource opts 可替換 endpoint 與 http client
func NewGAReportSource(ctx context.Context, propertyID string, opts ...option.ClientOption) (*GAReportSource, error) {
	svc, err := analyticsdata.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create analyticsdata service: %w", err)
	}
	return &GAReportSource{
		service:  svc,
		property: "properties/" + propertyID,
	}, nil
}

// NewGAReportSourceFromConfig 以 service account 的 email 與 private key 建立 JWT client
func NewGAReportSourceFromConfig(ctx context.Context, cfg config.AnalyticsConfig) (*GAReportSource, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	jwtCfg := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(unescapePrivateKey(cfg.PrivateKey)),
		Scopes:     []string{readonlyScope},
		TokenURL:   google.JWTTokenURL,
	}
	return NewGAReportSource(ctx, cfg.PropertyID, option.WithHTTPClient(jwtCfg.Client(ctx)))
}

// unescapePrivateKey .env 內的 key 以字面 \n 表示換行
func unescapePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// PageViews 最近 30 天, 每個 pagePath 的 screenPageViews
func (g *GAReportSource) PageViews(ctx context.Context) ([]PageView, error) {
	resp, err := g.service.Properties.RunReport(g.property, &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{{StartDate: reportWindow, EndDate: "today"}},
		Metrics:    []*analyticsdata.Metric{{Name: "screenPageViews"}},
		Dimensions: []*analyticsdata.Dimension{{Name: "pagePath"}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, errprocess.Setf("run report %s: %w", g.property, err)
	}

	rows := make([]PageView, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if len(row.DimensionValues) == 0 || len(row.MetricValues) == 0 {
			continue
		}
		views, err := strconv.ParseInt(row.MetricValues[0].Value, 10, 64)
		if err != nil {
			views = 0
		}
		rows = append(rows, PageView{Path: row.DimensionValues[0].Value, Views: views})
	}
	return rows, nil
}
