package api

import (
	"net/http"
	"time"

	"taskwell/task-api/internal/model"
	"taskwell/task-api/internal/service"

	"github.com/gin-gonic/gin"
)

type taskPatchBody struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *model.TaskStatus   `json:"status"`
	Priority    *model.TaskPriority `json:"priority"`
	Category    *string             `json:"category"`
	DueDate     *time.Time          `json:"due_date"`
}

type taskAssignBody struct {
	OwnerID string `json:"owner_id"`
}

func (a *API) TaskUpdate(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var data taskPatchBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": c.GetString("requestID"),
		})
		return
	}

	task, err := a.Tasks.Update(c.Request.Context(), principalFrom(c), id, service.TaskPatch{
		Title:       data.Title,
		Description: data.Description,
		Status:      data.Status,
		Priority:    data.Priority,
		Category:    data.Category,
		DueDate:     data.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (a *API) TaskComplete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := a.Tasks.MarkCompleted(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (a *API) TaskUncomplete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := a.Tasks.MarkUncompleted(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (a *API) TaskAssign(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var data taskAssignBody
	if err := c.ShouldBind(&data); err != nil || data.OwnerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": c.GetString("requestID"),
		})
		return
	}

	task, err := a.Tasks.Reassign(c.Request.Context(), principalFrom(c), id, data.OwnerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}
