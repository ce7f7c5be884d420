package handler

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/orchestrator"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/apperr"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/httputil"
)

// HandleRegDataGet はGET /impu/<pub>/reg-data のハンドラー。
func (h *Handler) HandleRegDataGet(c *gin.Context) {
	reply := h.orc.RegData(c.Request.Context(), &orchestrator.RegDataInput{
		PublicID:  c.Param("impu"),
		PrivateID: c.Query("private_id"),
		IsGet:     true,
	})
	h.write(c, reply)
}

// HandleRegDataPut はPUT /impu/<pub>/reg-data のハンドラー。
// ボディは {"reqtype": T} 形式でなければならない。
func (h *Handler) HandleRegDataPut(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httputil.WriteError(c, httputil.BadRequest("failed to read request body"))
		return
	}

	body, err := orchestrator.ParseRegDataBody(raw)
	if err != nil {
		if !errors.Is(err, apperr.ErrInvalidInput) {
			slog.Error("unexpected body parse failure",
				"event_id", "REG_DATA_BODY_ERR",
				"error", err.Error(),
			)
		}
		httputil.WriteError(c, httputil.BadRequest("body must carry a valid reqtype"))
		return
	}

	reply := h.orc.RegData(c.Request.Context(), &orchestrator.RegDataInput{
		PublicID:   c.Param("impu"),
		PrivateID:  c.Query("private_id"),
		Type:       body.Type,
		ServerName: body.ServerName,
		NoCache:    c.GetHeader("Cache-control") == "no-cache",
	})
	h.write(c, reply)
}

// HandleSubscription はGET /impu/<pub> のハンドラー。非推奨。
// 生の加入プロファイルで応答する。
func (h *Handler) HandleSubscription(c *gin.Context) {
	reply := h.orc.Subscription(c.Request.Context(), c.Param("impu"), c.Query("private_id"))
	h.write(c, reply)
}

// HandleLocation はGET /impu/<pub>/location のハンドラー。
func (h *Handler) HandleLocation(c *gin.Context) {
	reply := h.orc.Location(c.Request.Context(), &orchestrator.LocationInput{
		PublicID:    c.Param("impu"),
		Originating: c.Query("originating") == "true",
		AuthType:    c.Query("auth-type"),
	})
	h.write(c, reply)
}
