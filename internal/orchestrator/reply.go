package orchestrator

import (
	"errors"
	"net/http"

	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/apperr"
)

// コンテントタイプ
const (
	contentTypeJSON = "application/json"
	contentTypeXML  = "application/xml"
)

// Reply はオーケストレーターが確定したHTTP応答を表す。
// ボディが空のエラー応答はイングレス側でproblem+jsonに整形される。
type Reply struct {
	Status      int
	ContentType string
	Body        []byte
}

// replyJSON はJSONボディ付きの応答を生成する。
func replyJSON(status int, body []byte) *Reply {
	return &Reply{Status: status, ContentType: contentTypeJSON, Body: body}
}

// replyXML はXMLボディ付きの応答を生成する。
func replyXML(status int, body string) *Reply {
	return &Reply{Status: status, ContentType: contentTypeXML, Body: []byte(body)}
}

// replyStatus はボディ無しの応答を生成する。
func replyStatus(status int) *Reply {
	return &Reply{Status: status}
}

// cacheStatus はキャッシュエラーをHTTPステータスへ変換する。
func cacheStatus(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrTimeout), errors.Is(err, apperr.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// hssStatus はHSS交換のエラーをHTTPステータスへ変換する。
// タイムアウト・接続不可は503、それ以外は500。
func hssStatus(err error) int {
	if errors.Is(err, apperr.ErrTimeout) || errors.Is(err, apperr.ErrBackendUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
