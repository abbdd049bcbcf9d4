// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/api"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/transport/http/dto"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/session"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、安全なユーザービューとセッショントークンを返します。
	Register(ctx context.Context, name, email, password string) (*entity.AuthenticatedUser, string, error)
	// Login はユーザーを認証し、安全なユーザービューと新しいセッショントークンを返します。
	Login(ctx context.Context, email, password string) (*entity.AuthenticatedUser, string, error)
	// CurrentUser はトークンから認証済みユーザーを解決します。未認証の場合は(nil, nil)を返します。
	CurrentUser(ctx context.Context, tok string) (*entity.AuthenticatedUser, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスとセッションクッキーを処理します。
type AuthHandler struct {
	auth AuthUsecase

	// secureCookies は本番（TLS）オリジンでSecure属性を付与します。
	secureCookies bool
	// exposeErrors は非本番ビルドで500レスポンスに内部エラーを含めます。
	exposeErrors bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase, secureCookies, exposeErrors bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies, exposeErrors: exposeErrors}
}

// internalError は予期しない失敗を500に変換します。
// 内部メッセージは非本番ビルドでのみレスポンスに含まれます。
func (h *AuthHandler) internalError(c *gin.Context, err error) {
	resp := api.ErrorResponse{Message: "Internal server error"}
	if h.exposeErrors {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー時は422とフィールド別エラーを返却
// - メール重複時は409を返却
// - 成功時はセッションクッキーを設定し201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ValidationErrorResponse{Errors: fieldErrors(err)})
		return
	}

	user, tok, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register rejected", "reason", "duplicate email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Email already registered"})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		h.internalError(c, err)
		return
	}

	session.Set(c, tok, h.secureCookies)
	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.RegisterResponse{Message: "Registration successful", UserID: user.ID})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は422を返却
// - 認証失敗時は401を返却（メール未登録とパスワード不一致で同一レスポンス）
// - 成功時はセッションクッキーを設定し200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ValidationErrorResponse{Errors: fieldErrors(err)})
		return
	}

	user, tok, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// メールアドレス列挙攻撃を防止するため、失敗理由を公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid email or password"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		h.internalError(c, err)
		return
	}

	session.Set(c, tok, h.secureCookies)
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.LoginResponse{
		Message: "Login successful",
		User:    api.User{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Me はセッション照会APIエンドポイントを処理します。
// クッキーのトークンから認証状態を毎リクエスト新たに解決します。
// トークンが欠落・不正・失効（ユーザー削除済み）の場合は401を返却します。
func (h *AuthHandler) Me(c *gin.Context) {
	tok, ok := session.FromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), tok)
	if err != nil {
		slog.Error("session lookup failed", "error", err, "remote_addr", c.ClientIP())
		h.internalError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, api.MeResponse{
		User: api.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, CreatedAt: user.CreatedAt},
	})
}

// Logout はログアウトAPIエンドポイントを処理します。
// サーバーはトークンの記録を持たないため、クッキーの破棄のみを行います（ストアへのアクセスなし）。
func (h *AuthHandler) Logout(c *gin.Context) {
	session.Clear(c, h.secureCookies)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out"})
}
