package api

import (
	"net/http"
	"time"

	"taskwell/task-api/internal/model"
	"taskwell/task-api/internal/service"

	"github.com/gin-gonic/gin"
)

type taskCreateBody struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    model.TaskPriority `json:"priority"`
	Category    string             `json:"category"`
	DueDate     *time.Time         `json:"due_date"`
}

func (a *API) TaskCreate(c *gin.Context) {
	var data taskCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": c.GetString("requestID"),
		})
		return
	}

	task, err := a.Tasks.Create(c.Request.Context(), principalFrom(c), service.TaskDraft{
		Title:       data.Title,
		Description: data.Description,
		Priority:    data.Priority,
		Category:    data.Category,
		DueDate:     data.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}
