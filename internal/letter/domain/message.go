package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultRecipientName 未填寫收件人時的名稱
	DefaultRecipientName = "匿名"
	// MaxMessageLength 超過就拒絕編碼 (以 code point 計算)
	MaxMessageLength = 5000
	// MaxNameLength 收件人與寫信人名稱上限
	MaxNameLength = 50
	// DateLayout createdAt 的顯示格式
	DateLayout = "2006-01-02"
)

// Scheme 產生 fragment 的編碼方式
type Scheme string

const (
	// SchemeNone fragment 為空
	SchemeNone Scheme = "none"
	// SchemeLegacy #data=<base64(percentEncode(json))>
	SchemeLegacy Scheme = "legacy"
	// SchemeCompact #<lz-string(m:..,n:..,w:..,t:..)>
	SchemeCompact Scheme = "compact"
)

// ParseScheme 解析使用者指定的編碼方式, 空字串視為 compact
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeCompact:
		return SchemeCompact, nil
	case SchemeLegacy:
		return SchemeLegacy, nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown scheme %q", s))
	}
}

// MessageRecord 解碼後的信件內容
type MessageRecord struct {
	ID            string `json:"id"`
	Message       string `json:"message"`
	RecipientName string `json:"recipientName"`
	WriterName    string `json:"writerName"`
	CreatedAt     string `json:"createdAt"`
	Scheme        Scheme `json:"scheme"`
}

// ComposerInput 首頁表單送出的內容, 編碼前先 Normalize
type ComposerInput struct {
	Message       string
	RecipientName string
	WriterName    string
	CreatedAt     time.Time
}

// Normalize 去除前後空白、補上預設值並檢查長度, 不會截斷內容
func (in ComposerInput) Normalize() (ComposerInput, error) {
	out := ComposerInput{
		Message:       strings.TrimSpace(in.Message),
		RecipientName: strings.TrimSpace(in.RecipientName),
		WriterName:    strings.TrimSpace(in.WriterName),
		CreatedAt:     in.CreatedAt,
	}

	if out.Message == "" {
		return out, NewValidationError("メッセージを入力してください")
	}
	if n := utf8.RuneCountInString(out.Message); n > MaxMessageLength {
		return out, NewValidationError(fmt.Sprintf("メッセージは%d文字以内で入力してください（現在%d文字）", MaxMessageLength, n))
	}
	if utf8.RuneCountInString(out.RecipientName) > MaxNameLength {
		return out, NewValidationError(fmt.Sprintf("お名前は%d文字以内で入力してください", MaxNameLength))
	}
	if utf8.RuneCountInString(out.WriterName) > MaxNameLength {
		return out, NewValidationError(fmt.Sprintf("差出人の名前は%d文字以内で入力してください", MaxNameLength))
	}

	if out.RecipientName == "" {
		out.RecipientName = DefaultRecipientName
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now()
	}
	return out, nil
}

// SampleRecord 解碼失敗時可改看的範例信件
func SampleRecord() MessageRecord {
	return MessageRecord{
		ID:            "sample",
		Message:       "テストメッセージです。この画面が表示されれば、アニメーション機能は正常に動作しています。",
		RecipientName: "テストユーザー",
		WriterName:    "",
		CreatedAt:     "2025-06-10",
	}
}
