package api

import (
	"net/http"
	"strconv"
	"time"

	"taskwell/task-api/internal/model"

	"github.com/gin-gonic/gin"
)

func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid task ID",
			"requestID": c.GetString("requestID"),
		})
		return 0, false
	}

	return uint(id), true
}

// ownerScope resolves the ?owner= query: absent means the caller's own
// tasks, "all" means every owner (admin only, enforced by the service).
func ownerScope(c *gin.Context) string {
	owner := c.Query("owner")

	switch owner {
	case "":
		return c.GetString("userID")
	case "all":
		return ""
	default:
		return owner
	}
}

func (a *API) TaskFetch(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := a.Tasks.Get(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// TaskList serves the query projections: by owner plus at most one of
// the status, priority, category and due filters.
func (a *API) TaskList(c *gin.Context) {
	ctx := c.Request.Context()
	p := principalFrom(c)
	owner := ownerScope(c)

	var (
		tasks []model.Task
		err   error
	)

	switch {
	case c.Query("status") != "":
		tasks, err = a.Tasks.ByStatus(ctx, p, owner, model.TaskStatus(c.Query("status")))
	case c.Query("priority") != "":
		tasks, err = a.Tasks.ByPriority(ctx, p, owner, model.TaskPriority(c.Query("priority")))
	case c.Query("category") != "":
		tasks, err = a.Tasks.ByCategory(ctx, p, owner, c.Query("category"))
	case c.Query("due") != "":
		var day time.Time

		day, err = time.ParseInLocation("2006-01-02", c.Query("due"), time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid due date, expected YYYY-MM-DD",
				"requestID": c.GetString("requestID"),
			})
			return
		}

		tasks, err = a.Tasks.ByDueDate(ctx, p, owner, day)
	default:
		tasks, err = a.Tasks.ByOwner(ctx, p, owner)
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (a *API) TaskOverdue(c *gin.Context) {
	tasks, err := a.Tasks.Overdue(c.Request.Context(), principalFrom(c), ownerScope(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (a *API) TaskUpcoming(c *gin.Context) {
	tasks, err := a.Tasks.Upcoming(c.Request.Context(), principalFrom(c), ownerScope(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}
