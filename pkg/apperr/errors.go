// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// キャッシュ関連エラー
var (
	// ErrNotFound は加入者レコードが見つからない場合のエラー
	ErrNotFound = errors.New("record not found")
	// ErrBackendUnavailable はバックエンドへ接続できない場合のエラー
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendError はバックエンドのプロトコルエラー
	ErrBackendError = errors.New("backend error")
	// ErrTimeout はバックエンド応答のタイムアウトエラー
	ErrTimeout = errors.New("backend timeout")
)

// リクエスト関連エラー
var (
	// ErrInvalidInput は不正なリクエストボディ・パスのエラー
	ErrInvalidInput = errors.New("invalid input")
	// ErrStateConflict は登録状態と矛盾する操作のエラー
	ErrStateConflict = errors.New("registration state conflict")
)

// HSS関連エラー
var (
	// ErrUpstreamReject はHSSによる明示的な拒否（DIAMETER_ERROR_USER_UNKNOWN）
	ErrUpstreamReject = errors.New("upstream rejected request")
	// ErrUpstreamUnexpected はHSSからの想定外の結果コード
	ErrUpstreamUnexpected = errors.New("unexpected upstream result")
)
