package handler

import (
	"net/http"
	"time"

	"shoestore/internal/middleware"
	"shoestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

const accessTokenCookie = "accessToken"

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	cookieSecure bool
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieSecure: cookieSecure}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me, authMW)
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid body", StatusCode: http.StatusBadRequest})
	}

	user, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusCreated, "User registered successfully.", map[string]any{"user": user})
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid body", StatusCode: http.StatusBadRequest})
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		return writeError(c, err)
	}

	//http-only cookieにも載せる（bearerヘッダとどちらでも使える）
	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    out.Token,
		MaxAge:   int(out.ExpiresIn),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	return respond(c, http.StatusOK, "Logged in successfully.", out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	//cookieを無効化して即失効させる
	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	return respond(c, http.StatusOK, "Logged out successfully.", nil)
}

func (h *AuthHandler) me(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
	}

	return respond(c, http.StatusOK, "OK", principal)
}
