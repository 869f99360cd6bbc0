package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserFetch is the public account lookup by ID.
func (a *API) UserFetch(c *gin.Context) {
	user, err := a.Users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UserLookup handles GET /api/users: lookup by username (public), by
// email (verified accounts only) or the full account list (admin).
func (a *API) UserLookup(c *gin.Context) {
	p := principalFrom(c)

	if username := c.Query("username"); username != "" {
		user, err := a.Users.FindByUsername(c.Request.Context(), username)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, user)
		return
	}

	if email := c.Query("email"); email != "" {
		user, err := a.Users.FindByEmail(c.Request.Context(), p, email)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, user)
		return
	}

	users, err := a.Users.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
