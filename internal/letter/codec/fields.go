package codec

import (
	"errors"
	"fmt"
	"strings"
)

const (
	fieldSep = ','
	pairSep  = ':'
	escape   = '\\'
)

var valueEscaper = strings.NewReplacer(`\`, `\\`, `,`, `\,`, `:`, `\:`)

type field struct {
	key   string
	value string
}

// joinFields 組成 k:v,k:v, value 內的 \ , : 以反斜線跳脫
func joinFields(fields []field) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(fieldSep)
		}
		b.WriteString(f.key)
		b.WriteByte(pairSep)
		b.WriteString(valueEscaper.Replace(f.value))
	}
	return b.String()
}

var (
	errDanglingEscape = errors.New("dangling escape at end of payload")
	errEmptyPayload   = errors.New("empty payload")
)

// splitFields joinFields 的反向: 只有未跳脫的 ',' 分隔欄位,
// 每個欄位在第一個未跳脫的 ':' 切開, 之後的 ':' 都屬於 value
func splitFields(s string) ([]field, error) {
	if s == "" {
		return nil, errEmptyPayload
	}

	var (
		fields  []field
		key     strings.Builder
		value   strings.Builder
		inValue bool
		escaped bool
	)

	flush := func() error {
		if !inValue {
			return fmt.Errorf("field %d has no key separator", len(fields)+1)
		}
		if key.Len() == 0 {
			return fmt.Errorf("field %d has an empty key", len(fields)+1)
		}
		fields = append(fields, field{key: key.String(), value: value.String()})
		key.Reset()
		value.Reset()
		inValue = false
		return nil
	}

	for _, r := range s {
		cur := &key
		if inValue {
			cur = &value
		}

		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == escape:
			escaped = true
		case r == fieldSep:
			if err := flush(); err != nil {
				return nil, err
			}
		case r == pairSep && !inValue:
			inValue = true
		default:
			cur.WriteRune(r)
		}
	}

	if escaped {
		return nil, errDanglingEscape
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return fields, nil
}
