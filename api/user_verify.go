package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) UserVerify(c *gin.Context) {
	requestID := c.GetString("requestID")

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	ok, err := a.Users.Verify(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Token invalid or already used",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Account verified successfully",
		"requestID": requestID,
	})
}
