package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"shoestore/internal/domain/apperr"
	"shoestore/internal/domain/model"
	"shoestore/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// パスワードハッシュのコスト。意図的に遅くする。
const bcryptCost = 13

// セッショントークンの有効期限。remember_meで切り替える。
const (
	tokenTTLShort = time.Hour
	tokenTTLLong  = 30 * 24 * time.Hour
)

// usecaseがValidatorに依存する約束
type AuthValidator interface {
	ValidateRegister(fullName string, email string, password string, phone string) error
	ValidateLogin(email string, password string) error
}

// 検証済みトークンから取り出した利用者情報
type Principal struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	validator AuthValidator
	jwtSecret []byte
	issuer    string
}

func NewAuthUsecase(users repository.UserRepository, validator AuthValidator, jwtSecret string, issuer string) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		validator: validator,
		jwtSecret: []byte(jwtSecret),
		issuer:    issuer,
	}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
}

type UserDTO struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserDTO, error) {
	if err := u.validator.ValidateRegister(in.FullName, in.Email, in.Password, in.Phone); err != nil {
		return UserDTO{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	// email重複チェック（最終的にはDBのユニーク制約が守る）
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return UserDTO{}, apperr.Wrap(apperr.Internal, "db error", err)
	}
	if existing != nil {
		return UserDTO{}, apperr.New(apperr.Conflict, "email already registered")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return UserDTO{}, apperr.Wrap(apperr.Internal, "hash error", err)
	}

	user := &model.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: string(pwHash),
		Role:         model.RoleUser,
		Phone:        in.Phone,
	}

	if err := u.users.Create(ctx, user); err != nil {
		// 同時登録でユニーク制約に当たった場合
		if errors.Is(err, repository.ErrDuplicateKey) {
			return UserDTO{}, apperr.New(apperr.Conflict, "email already registered")
		}
		return UserDTO{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	return toUserDTO(user), nil
}

type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

type LoginOutput struct {
	Role      string `json:"role"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if err := u.validator.ValidateLogin(in.Email, in.Password); err != nil {
		return LoginOutput{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}
	// ユーザー不在とパスワード不一致は同じエラーにする（どちらが違うかを漏らさない）
	if user == nil {
		return LoginOutput{}, apperr.New(apperr.InvalidCredentials, "invalid email or password")
	}

	//パスワード照合（bcryptは時間一定比較）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, apperr.New(apperr.InvalidCredentials, "invalid email or password")
	}

	ttl := tokenTTLShort
	if in.RememberMe {
		ttl = tokenTTLLong
	}

	token, err := u.issueToken(user, ttl)
	if err != nil {
		return LoginOutput{}, apperr.Wrap(apperr.Internal, "token error", err)
	}

	return LoginOutput{
		Role:      string(user.Role),
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
	}, nil
}

func (u *AuthUsecase) issueToken(user *model.User, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"iss":      u.issuer,
		"sub":      strconv.FormatInt(user.ID, 10),
		"email":    user.Email,
		"fullname": user.FullName,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(u.jwtSecret)
}

// ValidateToken は署名・期限・必須クレーム（sub, email）を検証してPrincipalを返す。
// roleが無い場合は"user"扱い。
func (u *AuthUsecase) ValidateToken(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return u.jwtSecret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return Principal{}, apperr.New(apperr.Unauthorized, "unauthorized")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, apperr.New(apperr.Unauthorized, "unauthorized")
	}

	//必須クレーム
	userID, err := parseSubject(claims["sub"])
	if err != nil || userID <= 0 {
		return Principal{}, apperr.New(apperr.Unauthorized, "unauthorized")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return Principal{}, apperr.New(apperr.Unauthorized, "unauthorized")
	}

	//任意クレーム
	name, _ := claims["fullname"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}

	return Principal{
		ID:    userID,
		Email: email,
		Name:  name,
		Role:  role,
	}, nil
}

// subは文字列/数値のどちらで入っていても受ける
func parseSubject(v any) (int64, error) {
	switch s := v.(type) {
	case string:
		return strconv.ParseInt(s, 10, 64)
	case float64:
		return int64(s), nil
	default:
		return 0, errors.New("invalid sub claim")
	}
}

func toUserDTO(user *model.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     string(user.Role),
		Phone:    user.Phone,
	}
}
