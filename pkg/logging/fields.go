package logging

import "log/slog"

// ログフィールド名の定数
const (
	FieldTraceID    = "trace_id"
	FieldEventID    = "event_id"
	FieldError      = "error"
	FieldLatencyMs  = "latency_ms"
	FieldHTTPStatus = "http_status"
	FieldResultCode = "result_code"
	FieldIMPI       = "impi"
	FieldIMPU       = "impu"
)

// WithTraceID はトレースIDのslog.Attrを返す。
func WithTraceID(traceID string) slog.Attr {
	return slog.String(FieldTraceID, traceID)
}

// WithEventID はイベントIDのslog.Attrを返す。
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError はエラーのslog.Attrを返す。
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithLatency はレイテンシ（ミリ秒）のslog.Attrを返す。
func WithLatency(ms int64) slog.Attr {
	return slog.Int64(FieldLatencyMs, ms)
}

// WithHTTPStatus はHTTPステータスコードのslog.Attrを返す。
func WithHTTPStatus(status int) slog.Attr {
	return slog.Int(FieldHTTPStatus, status)
}

// WithResultCode はDiameter Result-Codeのslog.Attrを返す。
func WithResultCode(code int32) slog.Attr {
	return slog.Int(FieldResultCode, int(code))
}

// IdentityFields はマスキング設定を保持するログフィールド生成器。
type IdentityFields struct {
	maskEnabled bool
}

// NewIdentityFields は新しいIdentityFieldsを生成する。
func NewIdentityFields(maskEnabled bool) *IdentityFields {
	return &IdentityFields{maskEnabled: maskEnabled}
}

// WithIMPI はマスキングされた秘密識別子のslog.Attrを返す。
func (f *IdentityFields) WithIMPI(impi string) slog.Attr {
	return slog.String(FieldIMPI, MaskIdentity(impi, f.maskEnabled))
}

// WithIMPU はマスキングされた公開識別子のslog.Attrを返す。
func (f *IdentityFields) WithIMPU(impu string) slog.Attr {
	return slog.String(FieldIMPU, MaskIdentity(impu, f.maskEnabled))
}
