// Package codec 把信件內容轉成可放進 URL fragment 的字串, 以及反向解碼.
//
// 兩種格式:
//
//	legacy:  data=<base64(encodeURIComponent(JSON{message,name,created}))>
//	compact: <lz-string compressToEncodedURIComponent("m:..,n:..,w:..,t:<epoch ms>")>
//
// compact 沒有前綴, 以是否有 "data=" 區分兩者. 所有函式都是純函式.
package codec

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"otodoke_life/internal/letter/domain"

	"github.com/zeebo/blake3"
)

// LegacyMarker legacy fragment 的前綴
const LegacyMarker = "data="

// Codec 持有顯示日期用的時區
type Codec struct {
	loc *time.Location
}

// Default 日本時間
var Default = NewWithOffset(9)

// New 以指定時區建立 Codec
func New(loc *time.Location) *Codec {
	if loc == nil {
		loc = time.UTC
	}
	return &Codec{loc: loc}
}

// NewWithOffset 以 UTC 偏移 (小時) 建立 Codec
func NewWithOffset(hours int) *Codec {
	name := fmt.Sprintf("UTC%+d", hours)
	if hours == 9 {
		name = "JST"
	}
	return New(time.FixedZone(name, hours*60*60))
}

// Location 顯示日期所用的時區
func (c *Codec) Location() *time.Location {
	return c.loc
}

// FormatDate 把時間轉成 createdAt 的顯示字串
func (c *Codec) FormatDate(t time.Time) string {
	return t.In(c.loc).Format(domain.DateLayout)
}

// Encode 依 scheme 編碼
func (c *Codec) Encode(in domain.ComposerInput, scheme domain.Scheme) (string, error) {
	switch scheme {
	case domain.SchemeLegacy:
		return c.EncodeLegacy(in)
	case domain.SchemeCompact, "":
		return c.EncodeCompact(in)
	default:
		return "", domain.NewValidationError(fmt.Sprintf("unknown scheme %q", scheme))
	}
}

// Identify 判斷 fragment 的格式, 不會失敗
func Identify(fragment string) domain.Scheme {
	f := normalizeFragment(fragment)
	switch {
	case f == "":
		return domain.SchemeNone
	case strings.HasPrefix(f, LegacyMarker):
		return domain.SchemeLegacy
	default:
		return domain.SchemeCompact
	}
}

// DecodeFragment 先判斷格式再交給對應的 decoder; legacy 失敗不會改試 compact
func (c *Codec) DecodeFragment(fragment string) (*domain.MessageRecord, error) {
	switch Identify(fragment) {
	case domain.SchemeNone:
		return nil, domain.NewNoDataError()
	case domain.SchemeLegacy:
		return c.DecodeLegacy(fragment)
	case domain.SchemeCompact:
		return c.DecodeCompact(fragment)
	default:
		return nil, domain.NewCorruptError(domain.SchemeNone, "unrecognized fragment", nil)
	}
}

// FragmentFromURL 從完整的 letter URL 取出 fragment; 沒有 '#' 的 http(s) URL 視為沒有資料,
// 其他字串當作 fragment 本身
func FragmentFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[i+1:]
	}
	if u, err := url.Parse(raw); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return ""
	}
	return raw
}

// normalizeFragment 去掉開頭的 '#' 與空白; base64 與 lz-string 的字元集都不含 '%',
// 所以若掃描器把 fragment 做了 percent-encoding 可以安全還原
func normalizeFragment(fragment string) string {
	f := strings.TrimSpace(fragment)
	f = strings.TrimPrefix(f, "#")
	if strings.Contains(f, "%") {
		if u, err := url.PathUnescape(f); err == nil {
			f = u
		}
	}
	return strings.TrimSpace(f)
}

// recordID 由 fragment 推導的 id, 同一 fragment 永遠得到同一 id
func recordID(payload string) string {
	sum := blake3.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:8])
}

// normalizeCreated legacy 的 created 可能是日期、RFC3339 或任意字串; 能解析就轉成顯示格式
func (c *Codec) normalizeCreated(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if t, err := time.ParseInLocation(domain.DateLayout, raw, c.loc); err == nil {
		return t.Format(domain.DateLayout)
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return c.FormatDate(t)
	}
	return raw
}
