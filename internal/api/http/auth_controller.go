package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/service"
)

type AuthController struct {
	auth       service.AuthInteractor
	cookieName string
	cookieTTL  int
	secure     bool
}

func NewAuthController(auth service.AuthInteractor, cookieName string, cookieTTL int, secure bool) *AuthController {
	return &AuthController{auth: auth, cookieName: cookieName, cookieTTL: cookieTTL, secure: secure}
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, session *domain.Session) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookieName, session.Token.String(), c.cookieTTL, "/", "", c.secure, true)
}

func (c *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, session, err := c.auth.Register(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, session)
	ctx.JSON(http.StatusCreated, gin.H{"user": user})
}

func (c *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, session, err := c.auth.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, session)
	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	raw, err := ctx.Cookie(c.cookieName)
	if err == nil {
		if token, parseErr := uuid.Parse(raw); parseErr == nil {
			_ = c.auth.Logout(ctx.Request.Context(), token)
		}
	}

	ctx.SetCookie(c.cookieName, "", -1, "/", "", c.secure, true)
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *AuthController) Me(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"user": currentUser(ctx)})
}

func (c *AuthController) ChangePassword(ctx *gin.Context) {
	type request struct {
		OldPassword        string `json:"old_password" binding:"required"`
		NewPassword        string `json:"new_password" binding:"required"`
		NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := currentUser(ctx)
	err := c.auth.ChangePassword(ctx.Request.Context(), user.ID, req.OldPassword, req.NewPassword, req.NewPasswordConfirm)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (c *AuthController) DeleteAccount(ctx *gin.Context) {
	user := currentUser(ctx)
	if err := c.auth.DeleteAccount(ctx.Request.Context(), user.ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.SetCookie(c.cookieName, "", -1, "/", "", c.secure, true)
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
