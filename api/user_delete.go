package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) UserDelete(c *gin.Context) {
	if err := a.Users.Delete(c.Request.Context(), principalFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Account deleted",
		"requestID": c.GetString("requestID"),
	})
}
