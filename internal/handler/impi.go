package handler

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/orchestrator"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/httputil"
)

// HandleDigest はGET /impi/<id>/digest のハンドラー。
// スキームはDigestに固定され、簡易ボディで応答する。
func (h *Handler) HandleDigest(c *gin.Context) {
	reply := h.orc.AuthVector(c.Request.Context(), &orchestrator.AuthVectorInput{
		Endpoint:  orchestrator.EndpointDigest,
		PrivateID: c.Param("impi"),
		PublicID:  c.Query("public_id"),
		Scheme:    h.cfg.SchemeDigest,
	})
	h.write(c, reply)
}

// HandleAV はGET /impi/<id>/av のハンドラー。スキームはHSSに委ねる。
func (h *Handler) HandleAV(c *gin.Context) {
	h.handleAV(c, h.cfg.SchemeUnknown)
}

// HandleAKA はGET /impi/<id>/aka のハンドラー。
func (h *Handler) HandleAKA(c *gin.Context) {
	h.handleAV(c, h.cfg.SchemeAKA)
}

// handleAV は完全ボディの認証ベクター要求を処理する。
func (h *Handler) handleAV(c *gin.Context, scheme string) {
	// autnクエリはbase64でエンコードされた認可ペイロード
	authorization, err := base64.StdEncoding.DecodeString(c.Query("autn"))
	if err != nil {
		httputil.WriteError(c, httputil.BadRequest("autn must be base64 encoded"))
		return
	}

	reply := h.orc.AuthVector(c.Request.Context(), &orchestrator.AuthVectorInput{
		Endpoint:      orchestrator.EndpointAV,
		PrivateID:     c.Param("impi"),
		PublicID:      c.Query("impu"),
		Scheme:        scheme,
		Authorization: string(authorization),
	})
	h.write(c, reply)
}

// HandleRegistrationStatus はGET /impi/<id>/registration-status のハンドラー。
func (h *Handler) HandleRegistrationStatus(c *gin.Context) {
	reply := h.orc.RegistrationStatus(c.Request.Context(), &orchestrator.RegistrationStatusInput{
		PrivateID:      c.Param("impi"),
		PublicID:       c.Query("impu"),
		VisitedNetwork: c.Query("visited-network"),
		AuthType:       c.Query("auth-type"),
	})
	h.write(c, reply)
}
