// Package handler はHTTPリクエストハンドラーを提供する。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/config"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/orchestrator"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/httputil"
)

// TraceIDKey はコンテキストにトレースIDを格納するキー。
const TraceIDKey = "trace_id"

// Handler は加入者データAPIのハンドラー。
// リクエストの分解とオーケストレーター応答の書き出しのみを担当する。
type Handler struct {
	orc *orchestrator.Orchestrator
	cfg *config.Config
}

// New は新しいHandlerを生成する。
func New(orc *orchestrator.Orchestrator, cfg *config.Config) *Handler {
	return &Handler{orc: orc, cfg: cfg}
}

// write はオーケストレーターの応答をGinレスポンスとして書き出す。
// ボディの無いエラー応答はproblem+jsonに整形する。
func (h *Handler) write(c *gin.Context, reply *orchestrator.Reply) {
	if len(reply.Body) == 0 {
		if reply.Status >= http.StatusBadRequest {
			httputil.WriteError(c, httputil.FromStatus(reply.Status, ""))
			return
		}
		c.Status(reply.Status)
		return
	}
	c.Data(reply.Status, reply.ContentType, reply.Body)
}

// pingResponse はヘルスチェックの応答ボディ。
const pingResponse = "OK"

// HandlePing はGET /ping のハンドラー。
func (h *Handler) HandlePing(c *gin.Context) {
	c.String(http.StatusOK, pingResponse)
}
