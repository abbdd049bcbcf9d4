// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"auth_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します（ハッシュを含む全フィールド）。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーの安全なビューを取得します。
	// クエリは公開可能なフィールドのみを選択します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.AuthenticatedUser, error)

	// ExistsByEmail は指定されたメールアドレスのユーザーが存在するかを返します。
	// クエリはidカラムのみを選択します（パスワードやPIIは取得しない）。
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PasswordHasher はパスワードのハッシュ化と検証のインターフェースを定義します。
type PasswordHasher interface {
	// Hash はパスワードの一方向ハッシュを生成します。
	Hash(password string) (string, error)
	// Verify はエンコード済みハッシュと候補パスワードの一致を検証します。
	Verify(encoded, password string) bool
}

// TokenCodec はセッショントークンの発行と構文検証のインターフェースを定義します。
type TokenCodec interface {
	// Encode は指定されたユーザーIDの新しいトークンを発行します。
	Encode(userID uint) (string, error)
	// Decode はトークンからユーザーIDを復元します。不正な形式の場合はok=falseを返します。
	Decode(tok string) (userID uint, ok bool)
}

// ユーザー未検出時のタイミング攻撃緩和用ダミーハッシュ。
// argon2の検証が常に実行されることを保証する。
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=4$njDc3I1psmOXJTN63O1gzw$rifRnKbach4Ynu/ntNELnt6dSE4bbv6N0OoaHuX9f+4"

// authUsecase は認証ビジネスロジックを実装します。
// コンポーネント自体はステートレスで、全ての状態は注入されたリポジトリにあります。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenCodec
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenCodec) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、セッショントークンを発行します。
// 入力の形式検証（名前・メール形式・パスワード長）はトランスポート層のバインディングで行われます。
//
// 順序の不変条件: 存在チェックとハッシュ化は副作用を持たず、唯一の変更操作は
// 最後のCreateで、1回の呼び出しにつき最大1回だけ実行されます。
// 事前チェックとCreateはアトミックではないため、同時登録の競合はストアの
// ユニーク制約が解決します（CreateがErrEmailAlreadyExistsを返す）。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.AuthenticatedUser, string, error) {
	// 既存メールアドレスの確認（idカラムのみ取得）
	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		// 競合時はストア層のユニーク制約がErrEmailAlreadyExistsとして伝播する
		return nil, "", err
	}

	tok, err := u.tokens.Encode(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user.Authenticated(), tok, nil
}

// Login はユーザーを認証し、成功時に安全なユーザービューと新しいトークンを返します。
// メールアドレス未登録とパスワード不一致は外部から区別できない同一の
// ErrInvalidCredentialsを返します（メールアドレス列挙攻撃の防止）。
// タイミング攻撃を緩和するため、ユーザーが存在しない場合でもダミーハッシュで検証を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.AuthenticatedUser, string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// ユーザーの有無に関わらず常にパスワードを検証
	ok := u.hasher.Verify(passwordHash, password)
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := u.tokens.Encode(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user.Authenticated(), tok, nil
}

// CurrentUser はリクエストのトークンから認証済みユーザーを解決します。
//
// 戻り値 (nil, nil) は「未認証」を意味します: トークンが空・不正な形式、
// またはIDに対応するユーザーが存在しない（発行後に削除された）場合です。
// エラーはストア障害など予期しない失敗のみを表します。
// トークンの構文が不正な場合、ストアには一切アクセスしません。
func (u *authUsecase) CurrentUser(ctx context.Context, tok string) (*entity.AuthenticatedUser, error) {
	id, ok := u.tokens.Decode(tok)
	if !ok {
		return nil, nil
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}
