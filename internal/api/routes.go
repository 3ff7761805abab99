package api

import (
	"github.com/enokido/lixianTool/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func InitRoutes(r *gin.Engine) {
	// 每次启动换一个随机 secret，重启后所有面板会话失效，需要重新登录
	store := cookie.NewStore([]byte(uuid.New().String()))
	r.Use(sessions.Sessions("lixian_session", store))

	service.NewAuthService().EnsureDefaultUser()

	r.POST("/api/login", LoginPostHandler)

	authed := r.Group("/api", AuthMiddleware())
	{
		authed.POST("/logout", LogoutHandler)
		authed.POST("/change-password", ChangePasswordHandler)

		// 115 账号
		authed.POST("/cloud115/login", Cloud115LoginHandler)
		authed.GET("/cloud115/status", Cloud115StatusHandler)

		// 离线任务
		authed.GET("/tasks", ListTasksHandler)
		authed.POST("/tasks/sync", SyncTasksHandler)
		authed.GET("/events", SSEHandler)
	}
}
