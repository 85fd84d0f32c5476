package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"otodoke_life/internal/letter/domain"
)

// legacyPayload 舊版 QR 碼內的 JSON, 沒有寫信人欄位
type legacyPayload struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Created string `json:"created"`
}

// EncodeLegacy data=<base64(encodeURIComponent(JSON))>, 保留給仍產生舊格式的路徑
func (c *Codec) EncodeLegacy(in domain.ComposerInput) (string, error) {
	in, err := in.Normalize()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// 與 JSON.stringify 一致, 不把 < > & 轉成 \u003c 形式
	enc.SetEscapeHTML(false)
	if err := enc.Encode(legacyPayload{
		Message: in.Message,
		Name:    in.RecipientName,
		Created: c.FormatDate(in.CreatedAt),
	}); err != nil {
		return "", err
	}

	encoded := encodeURIComponent(strings.TrimSuffix(buf.String(), "\n"))
	return LegacyMarker + base64.StdEncoding.EncodeToString([]byte(encoded)), nil
}

// DecodeLegacy 去掉 data= 後 base64 → percent-decode → JSON; 任一步失敗都是 corrupt
func (c *Codec) DecodeLegacy(fragment string) (*domain.MessageRecord, error) {
	f := normalizeFragment(fragment)
	if !strings.HasPrefix(f, LegacyMarker) {
		return nil, domain.NewCorruptError(domain.SchemeLegacy, "missing data= marker", nil)
	}
	payload := strings.TrimPrefix(f, LegacyMarker)
	if payload == "" {
		return nil, domain.NewCorruptError(domain.SchemeLegacy, "empty payload", nil)
	}

	raw, err := decodeBase64(payload)
	if err != nil {
		return nil, domain.NewCorruptError(domain.SchemeLegacy, "base64 decode", err)
	}

	text, err := decodeURIComponent(string(raw))
	if err != nil {
		return nil, domain.NewCorruptError(domain.SchemeLegacy, "percent decode", err)
	}

	var p legacyPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, domain.NewCorruptError(domain.SchemeLegacy, "json parse", err)
	}

	if strings.TrimSpace(p.Message) == "" {
		return nil, domain.NewCorruptError(domain.SchemeLegacy, "message field missing", errors.New("empty message"))
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = domain.DefaultRecipientName
	}

	return &domain.MessageRecord{
		ID:            recordID(f),
		Message:       p.Message,
		RecipientName: name,
		CreatedAt:     c.normalizeCreated(p.Created),
		Scheme:        domain.SchemeLegacy,
	}, nil
}
