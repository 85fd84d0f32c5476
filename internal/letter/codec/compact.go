package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"otodoke_life/internal/letter/domain"

	lzstring "github.com/daku10/go-lz-string"
)

// compact 格式的單字母 key
const (
	keyMessage   = "m"
	keyRecipient = "n"
	keyWriter    = "w"
	keyTimestamp = "t"
)

// EncodeCompact 預設格式. 收件人為預設值、寫信人為空時省略以縮短 QR 內容
func (c *Codec) EncodeCompact(in domain.ComposerInput) (string, error) {
	in, err := in.Normalize()
	if err != nil {
		return "", err
	}

	fields := []field{{keyMessage, in.Message}}
	if in.RecipientName != domain.DefaultRecipientName {
		fields = append(fields, field{keyRecipient, in.RecipientName})
	}
	if in.WriterName != "" {
		fields = append(fields, field{keyWriter, in.WriterName})
	}
	fields = append(fields, field{keyTimestamp, strconv.FormatInt(in.CreatedAt.UnixMilli(), 10)})

	out, err := lzstring.CompressToEncodedURIComponent(joinFields(fields))
	if err != nil {
		return "", fmt.Errorf("compress compact payload: %w", err)
	}
	return out, nil
}

// DecodeCompact 解壓縮後解析欄位; 解壓縮失敗、格式錯誤或沒有 message 都是 corrupt
func (c *Codec) DecodeCompact(fragment string) (*domain.MessageRecord, error) {
	payload := normalizeFragment(fragment)
	if payload == "" {
		return nil, domain.NewNoDataError()
	}

	text, err := decompress(payload)
	if err != nil {
		return nil, domain.NewCorruptError(domain.SchemeCompact, "decompress", err)
	}

	fields, err := splitFields(text)
	if err != nil {
		return nil, domain.NewCorruptError(domain.SchemeCompact, "parse fields", err)
	}

	rec := &domain.MessageRecord{
		ID:            recordID(payload),
		RecipientName: domain.DefaultRecipientName,
		Scheme:        domain.SchemeCompact,
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.key] {
			return nil, domain.NewCorruptError(domain.SchemeCompact, fmt.Sprintf("duplicate key %q", f.key), nil)
		}
		seen[f.key] = true

		switch f.key {
		case keyMessage:
			rec.Message = f.value
		case keyRecipient:
			if strings.TrimSpace(f.value) != "" {
				rec.RecipientName = f.value
			}
		case keyWriter:
			rec.WriterName = f.value
		case keyTimestamp:
			ms, err := strconv.ParseInt(f.value, 10, 64)
			if err != nil {
				return nil, domain.NewCorruptError(domain.SchemeCompact, "timestamp", err)
			}
			rec.CreatedAt = c.FormatDate(time.UnixMilli(ms))
		default:
			// 之後新增的欄位, 舊版直接忽略
		}
	}

	if strings.TrimSpace(rec.Message) == "" {
		return nil, domain.NewCorruptError(domain.SchemeCompact, "message field missing", errors.New("empty message"))
	}
	return rec, nil
}

var errEmptyDecompress = errors.New("decompressed to empty string")

// decompress lz-string 對任意輸入都可能 panic 或回傳空字串, 一律轉成 error
func decompress(payload string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("decompressor panic: %v", r)
		}
	}()

	// 有些掃描器會把 '+' 轉成空白
	payload = strings.ReplaceAll(payload, " ", "+")

	text, err = lzstring.DecompressFromEncodedURIComponent(payload)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errEmptyDecompress
	}
	if !utf8.ValidString(text) {
		return "", errInvalidUTF8
	}
	return text, nil
}
