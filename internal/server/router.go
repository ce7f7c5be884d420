package server

import (
	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/handler"
)

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *handler.Handler) {
	// ヘルスチェック
	engine.GET("/ping", h.HandlePing)

	// 認証ベクター・登録可否（秘密識別子）
	impi := engine.Group("/impi/:impi")
	{
		impi.GET("/digest", h.HandleDigest)
		impi.GET("/av", h.HandleAV)
		impi.GET("/aka", h.HandleAKA)
		impi.GET("/registration-status", h.HandleRegistrationStatus)
	}

	// 登録データ・S-CSCF照会（公開識別子）
	impu := engine.Group("/impu/:impu")
	{
		impu.GET("/reg-data", h.HandleRegDataGet)
		impu.PUT("/reg-data", h.HandleRegDataPut)
		impu.GET("/location", h.HandleLocation)
		impu.GET("", h.HandleSubscription)
	}
}
