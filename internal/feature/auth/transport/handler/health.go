package handler

import "github.com/gin-gonic/gin"

// Health は死活監視用エンドポイントです。認証もストアアクセスも行いません。
func Health(c *gin.Context) {
	// 監視系にキャッシュされないように明示
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
