package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"auth_backend/internal/app/router"
	authadapters "auth_backend/internal/feature/auth/adapters"
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	authusecase "auth_backend/internal/feature/auth/usecase"
	infradb "auth_backend/internal/platform/db"
	"auth_backend/internal/platform/password"
	"auth_backend/internal/platform/ratelimit"
	infraredis "auth_backend/internal/platform/redis"
	"auth_backend/internal/platform/token"
)

func main() {
	// .env（開発用、存在しなければ無視）
	_ = godotenv.Load()

	production := os.Getenv("APP_ENV") == "production"

	// db
	db := infradb.Open()

	// Redis（レートリミット用、任意）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without rate limiting.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	var limiter ratelimit.Limiter
	if rdb != nil {
		limiter = ratelimit.NewRedisLimiter(rdb)
	}

	// セッショントークンのコーデック選択
	// デフォルトは無署名の "<userId>:<nonce>" 形式、SESSION_TOKEN_SIGNED=trueでHS256署名版
	var tokens token.Codec = token.PlainCodec{}
	if os.Getenv("SESSION_TOKEN_SIGNED") == "true" {
		secret := os.Getenv("SESSION_TOKEN_SECRET")
		if secret == "" {
			log.Println("[WARN] SESSION_TOKEN_SECRET is not set. Falling back to unsigned tokens.")
		} else {
			tokens = token.NewSignedCodec(secret)
		}
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewArgon2Hasher(), tokens)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, production, !production)

	// ルータ生成
	r := router.NewRouter(authH, limiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "production", production)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
