package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) TaskDelete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := a.Tasks.Delete(c.Request.Context(), principalFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Task deleted",
		"requestID": c.GetString("requestID"),
	})
}
