package api

import (
	"net/http"

	"taskwell/task-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) UserRegister(c *gin.Context) {
	requestID := c.GetString("requestID")

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := a.Users.Register(c.Request.Context(), data.Username, data.Email, data.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// Best-effort delivery. The token below is the only other channel,
	// so a mail outage must not lose the registration.
	if err := service.SendVerificationMail(user); err != nil {
		zap.L().Error("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
	}

	// The plaintext verification token is exposed here exactly once.
	c.JSON(http.StatusCreated, gin.H{
		"user":              user,
		"verificationToken": user.VerificationToken,
	})
}
