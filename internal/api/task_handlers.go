package api

import (
	"errors"
	"net/http"

	"github.com/enokido/lixianTool/internal/cloud115"
	"github.com/enokido/lixianTool/internal/service"
	"github.com/gin-gonic/gin"
)

type Cloud115LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Cloud115LoginHandler 登录 115 账号并保存凭证供调度器自动续登
func Cloud115LoginHandler(c *gin.Context) {
	var req Cloud115LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := service.GetTaskService().LoginRemote(req.Username, req.Password); err != nil {
		var authErr *cloud115.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Reason.String()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cloud115 login successful"})
}

func Cloud115StatusHandler(c *gin.Context) {
	svc := service.GetTaskService()
	loggedIn := svc.Client.HasLoggedIn()

	status := gin.H{"logged_in": loggedIn}
	if session := svc.Client.Session(); session != nil {
		status["user_id"] = session.UserID
	}
	c.JSON(http.StatusOK, status)
}

func ListTasksHandler(c *gin.Context) {
	snaps, err := service.GetTaskService().ListSnapshots()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": snaps, "count": len(snaps)})
}

// SyncTasksHandler 手动触发一轮同步
func SyncTasksHandler(c *gin.Context) {
	result, err := service.GetTaskService().SyncTasks()
	if err != nil {
		if errors.Is(err, service.ErrNoCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var authErr *cloud115.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Reason.String()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
