package domain

import "unicode/utf8"

// LengthStatus 訊息長度對 QR 讀取的影響
type LengthStatus string

const (
	LengthEmpty    LengthStatus = "empty"
	LengthShort    LengthStatus = "short"
	LengthMedium   LengthStatus = "medium"
	LengthLong     LengthStatus = "long"
	LengthVeryLong LengthStatus = "very_long"
	LengthTooLong  LengthStatus = "too_long"
)

// LengthClass ClassifyLength 的結果, 只作為提示顯示
type LengthClass struct {
	Status   LengthStatus `json:"status"`
	Severity int          `json:"severity"`
	Label    string       `json:"label"`
	Length   int          `json:"length"`
	Max      int          `json:"max"`
}

// Rejected 超過上限, 不能編碼
func (c LengthClass) Rejected() bool {
	return c.Status == LengthTooLong
}

type lengthBand struct {
	upTo     int
	status   LengthStatus
	severity int
	label    string
}

// bands 依上限遞增排列, severity 不可遞減
var bands = []lengthBand{
	{0, LengthEmpty, 0, "メッセージを入力してください"},
	{200, LengthShort, 0, "短め：読み取りやすいQRコードになります"},
	{500, LengthMedium, 1, "標準：問題なく読み取れます"},
	{1000, LengthLong, 2, "長め：端末によっては読み取りにくい場合があります"},
	{MaxMessageLength, LengthVeryLong, 3, "とても長い：読み取れない可能性があります。印刷サイズを大きくしてください"},
}

var tooLong = lengthBand{status: LengthTooLong, severity: 4, label: "文字数の上限を超えています"}

// ClassifyLength 依 code point 數分類訊息長度
func ClassifyLength(message string) LengthClass {
	n := utf8.RuneCountInString(message)

	band := tooLong
	for _, b := range bands {
		if n <= b.upTo {
			band = b
			break
		}
	}

	return LengthClass{
		Status:   band.status,
		Severity: band.severity,
		Label:    band.label,
		Length:   n,
		Max:      MaxMessageLength,
	}
}
