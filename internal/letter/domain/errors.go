package domain

import "errors"

// ErrorKind 錯誤分類, 呼叫端須逐一處理
type ErrorKind string

const (
	// KindValidation 編碼前輸入不合法
	KindValidation ErrorKind = "validation"
	// KindNoData fragment 不存在或為空
	KindNoData ErrorKind = "no_data"
	// KindCorrupt fragment 存在但無法解析
	KindCorrupt ErrorKind = "corrupt"
	// KindRendering 所有 QR 圖片服務都失敗
	KindRendering ErrorKind = "rendering"
)

// Error letter 流程的錯誤
type Error struct {
	Kind   ErrorKind
	Scheme Scheme
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Scheme != "" && e.Scheme != SchemeNone {
		msg += " (" + string(e.Scheme) + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 讓 errors.Is(err, &Error{Kind: KindCorrupt}) 只比對 Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewValidationError input rejected before encoding
func NewValidationError(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

// NewNoDataError fragment missing
func NewNoDataError() *Error {
	return &Error{Kind: KindNoData, Scheme: SchemeNone, Detail: "no message data in fragment"}
}

// NewCorruptError fragment could not be decoded by scheme
func NewCorruptError(scheme Scheme, detail string, err error) *Error {
	return &Error{Kind: KindCorrupt, Scheme: scheme, Detail: detail, Err: err}
}

// NewRenderingError every QR provider failed
func NewRenderingError(detail string, err error) *Error {
	return &Error{Kind: KindRendering, Detail: detail, Err: err}
}

// KindOf 取出 error 的分類, 非 letter 錯誤回傳 false
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind err 是否為指定分類
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// UserMessage 給使用者看的訊息, 不含診斷細節
func UserMessage(err error) string {
	k, _ := KindOf(err)
	switch k {
	case KindValidation:
		var e *Error
		errors.As(err, &e)
		return e.Detail
	case KindNoData:
		return "有効なメッセージが見つかりませんでした。"
	case KindCorrupt:
		return "メッセージの読み込みに失敗しました。正しいQRコードをご確認ください。"
	case KindRendering:
		return "QRコード画像を生成できませんでした。下のURLをコピーして共有できます。"
	default:
		return "不明なエラーが発生しました"
	}
}
