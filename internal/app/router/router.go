package router

import (
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	"auth_backend/internal/platform/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, limiter ratelimit.Limiter) *gin.Engine {
	r := gin.Default()
	// CORS のデフォルト設定を有効
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", authhandler.Health)

	apiRoutes := r.Group("/api")
	{
		// 登録とログインのみレート制限の対象
		// limiterが未設定（nil）の場合はチェックなしで通過する
		limited := apiRoutes.Group("")
		limited.Use(ratelimit.Middleware(limiter))
		{
			// 新規ユーザー登録（セッションクッキー発行）
			limited.POST("/register", authHandler.Register)
			// ログイン（セッションクッキー発行）
			limited.POST("/login", authHandler.Login)
		}

		// セッション照会（クッキーのトークンで毎回解決）
		apiRoutes.GET("/me", authHandler.Me)
		// ログアウト（クッキー破棄のみ）
		apiRoutes.POST("/logout", authHandler.Logout)
	}

	return r
}
