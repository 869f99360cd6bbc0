package api

import (
	"net/http"

	"taskwell/task-api/internal/model"

	"github.com/gin-gonic/gin"
)

type changeCredentialBody struct {
	NewValue        string `json:"new_value"`
	CurrentPassword string `json:"current_password"`
}

type changeRoleBody struct {
	Role model.Role `json:"role"`
}

func (a *API) UserChangeUsername(c *gin.Context) {
	data, ok := bindCredentialChange(c)
	if !ok {
		return
	}

	user, err := a.Users.ChangeUsername(c.Request.Context(), principalFrom(c), c.Param("id"), data.NewValue, data.CurrentPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a *API) UserChangeEmail(c *gin.Context) {
	data, ok := bindCredentialChange(c)
	if !ok {
		return
	}

	user, err := a.Users.ChangeEmail(c.Request.Context(), principalFrom(c), c.Param("id"), data.NewValue, data.CurrentPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a *API) UserChangePassword(c *gin.Context) {
	data, ok := bindCredentialChange(c)
	if !ok {
		return
	}

	user, err := a.Users.ChangePassword(c.Request.Context(), principalFrom(c), c.Param("id"), data.NewValue, data.CurrentPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a *API) UserChangeRole(c *gin.Context) {
	var data changeRoleBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": c.GetString("requestID"),
		})
		return
	}

	user, err := a.Users.ChangeRole(c.Request.Context(), principalFrom(c), c.Param("id"), data.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a *API) UserToggleLock(c *gin.Context) {
	user, err := a.Users.ToggleLocked(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a *API) UserForceVerify(c *gin.Context) {
	user, err := a.Users.ForceVerify(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func bindCredentialChange(c *gin.Context) (changeCredentialBody, bool) {
	var data changeCredentialBody

	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": c.GetString("requestID"),
		})
		return data, false
	}

	return data, true
}
