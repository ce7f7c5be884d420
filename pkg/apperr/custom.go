package apperr

import "fmt"

// CacheError は加入者キャッシュの操作エラーを表す。
type CacheError struct {
	Operation string // 操作名（GetSubscription, PutSubscription等）
	Key       string // 操作対象のキー
	Cause     error  // 根本原因（センチネルエラーをラップする）
}

// Error はerrorインターフェースを実装する。
func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: operation=%s, key=%s, cause=%v",
			e.Operation, e.Key, e.Cause)
	}
	return fmt.Sprintf("cache error: operation=%s, key=%s", e.Operation, e.Key)
}

// Unwrap は根本原因を返す。
func (e *CacheError) Unwrap() error {
	return e.Cause
}

// NewCacheError はCacheErrorを生成する。
func NewCacheError(operation, key string, cause error) *CacheError {
	return &CacheError{
		Operation: operation,
		Key:       key,
		Cause:     cause,
	}
}

// HSSError はHSSとのDiameter交換のエラーを表す。
type HSSError struct {
	Exchange   string // 交換名（MAR, SAR, UAR, LIR）
	ResultCode int32  // Diameter Result-Code（未受信の場合は0）
	Cause      error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *HSSError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("hss error: exchange=%s, resultCode=%d, cause=%v",
			e.Exchange, e.ResultCode, e.Cause)
	}
	return fmt.Sprintf("hss error: exchange=%s, resultCode=%d", e.Exchange, e.ResultCode)
}

// Unwrap は根本原因を返す。
func (e *HSSError) Unwrap() error {
	return e.Cause
}

// NewHSSError はHSSErrorを生成する。
func NewHSSError(exchange string, resultCode int32, cause error) *HSSError {
	return &HSSError{
		Exchange:   exchange,
		ResultCode: resultCode,
		Cause:      cause,
	}
}
