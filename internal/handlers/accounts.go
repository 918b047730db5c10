package handlers

import (
	"net/http"

	"learning_platform/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Credentials is the body of register and login.
type Credentials struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"s3cret"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type PasswordRequest struct {
	Password string `json:"password" example:"n3w-s3cret"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// @Summary      Register account
// @Description  Creates an account. No token is issued; log in afterwards.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      Credentials  true  "username and password"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /accounts/register [post]
func (h *Handler) register(c *gin.Context) {
	var input Credentials
	if !h.bindJSON(c, &input) {
		return
	}

	err := h.services.Authorization.Register(c.Request.Context(), input.Username, input.Password)
	metrics.RecordAuth("register", err == nil)
	if err != nil {
		h.respondError(c, err, "account_register_failed", "username", input.Username)
		return
	}

	c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

// @Summary      Log in
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      Credentials  true  "username and password"
// @Success      200   {object}  service.TokenPair
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /accounts/login [post]
func (h *Handler) login(c *gin.Context) {
	var input Credentials
	if !h.bindJSON(c, &input) {
		return
	}

	pair, err := h.services.Authorization.Login(c.Request.Context(), input.Username, input.Password)
	metrics.RecordAuth("login", err == nil)
	if err != nil {
		h.respondError(c, err, "account_login_failed", "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// @Summary      Refresh access token
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshRequest  true  "refresh token from login"
// @Success      200   {object}  AccessTokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /accounts/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	var input RefreshRequest
	if !h.bindJSON(c, &input) {
		return
	}

	access, err := h.services.Authorization.Refresh(c.Request.Context(), input.RefreshToken)
	metrics.RecordAuth("refresh", err == nil)
	if err != nil {
		h.respondError(c, err, "account_refresh_failed")
		return
	}

	c.JSON(http.StatusOK, AccessTokenResponse{AccessToken: access})
}

// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   models.Account
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /accounts [get]
// @Security     BearerAuth
func (h *Handler) listAccounts(c *gin.Context) {
	accounts, err := h.services.Accounts.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "accounts_list_failed")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// @Summary      Change password
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        username  path      string           true  "Username"
// @Param        body      body      PasswordRequest  true  "new password"
// @Success      200       {object}  messageResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /accounts/{username} [put]
// @Security     BearerAuth
func (h *Handler) updateAccount(c *gin.Context) {
	var input PasswordRequest
	if !h.bindJSON(c, &input) {
		return
	}
	username := c.Param("username")

	if err := h.services.Accounts.UpdatePassword(c.Request.Context(), username, input.Password); err != nil {
		h.respondError(c, err, "account_update_failed", "username", username)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

// @Summary      Delete account
// @Tags         accounts
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  messageResponse
// @Failure      404       {object}  errorResponse
// @Router       /accounts/{username} [delete]
// @Security     BearerAuth
func (h *Handler) deleteAccount(c *gin.Context) {
	username := c.Param("username")
	if err := h.services.Accounts.Delete(c.Request.Context(), username); err != nil {
		h.respondError(c, err, "account_delete_failed", "username", username)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
