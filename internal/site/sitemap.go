package site

import (
	"encoding/xml"
	"strings"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapPaths 首頁與所有公開頁面
var SitemapPaths = []string{"", "/about", "/donate", "/faq", "/letter", "/privacy", "/terms"}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap 首頁 priority 1.0, 其他 0.8, 每週更新
func Sitemap(baseURL string, lastMod time.Time) ([]byte, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	set := urlset{XMLNS: sitemapNS}
	for _, p := range SitemapPaths {
		priority := "0.8"
		if p == "" {
			priority = "1.0"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + p,
			LastMod:    lastMod.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   priority,
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
