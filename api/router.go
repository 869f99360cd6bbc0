// Package api contains all endpoints available
package api

import (
	"time"

	"taskwell/task-api/db"
	"taskwell/task-api/internal/service"
	"taskwell/task-api/internal/store"
	"taskwell/task-api/middleware"
	"taskwell/task-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var cacheStore = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Users  *service.UserService
	Tasks  *service.TaskService
}

func NewRouter() (*API, error) {
	a := &API{}

	conn, err := db.New()
	if err != nil {
		return nil, err
	}
	a.DB = conn

	makeLogger()

	users := store.NewUsers(conn)
	tasks := store.NewTasks(conn)

	a.Users = service.NewUserService(users, security.New())
	a.Tasks = service.NewTaskService(tasks, users)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(users)
	optionalJWT := middleware.NewOptionalJWTMiddleware(users)

	main := router.Group("/api", middleware.BodySizeLimiter(1<<20))
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	usersGroup := main.Group("/users")
	{
		// POST /api/users 		-> Registers a new account
		usersGroup.POST("", a.UserRegister)

		// POST /api/users/login 	-> Logs in a user and returns a JWT cookie
		usersGroup.POST("/login", a.UserLogin)

		// GET /api/users/verify	-> Redeems an email verification token
		usersGroup.GET("/verify", a.UserVerify)

		// GET /api/users/:id 		-> Public account lookup by ID
		usersGroup.GET("/:id", cacheFor(30), a.UserFetch)

		// GET /api/users 		-> Lookup by username (public), by email
		// 				   (verified), or the full list (admin)
		usersGroup.GET("", optionalJWT, a.UserLookup)

		// PUT /api/users/:id/... 	-> Account mutations
		usersGroup.PUT("/:id/username", jwt, a.UserChangeUsername)
		usersGroup.PUT("/:id/email", jwt, a.UserChangeEmail)
		usersGroup.PUT("/:id/password", jwt, a.UserChangePassword)
		usersGroup.PUT("/:id/role", jwt, a.UserChangeRole)
		usersGroup.PUT("/:id/lock", jwt, a.UserToggleLock)
		usersGroup.PUT("/:id/verified", jwt, a.UserForceVerify)

		// DELETE /api/users/:id 	-> Deletes an account (self or admin)
		usersGroup.DELETE("/:id", jwt, a.UserDelete)
	}

	tasksGroup := main.Group("/tasks", jwt)
	{
		// POST /api/tasks		-> Creates a task owned by the caller
		tasksGroup.POST("", a.TaskCreate)

		// GET /api/tasks		-> Lists tasks, filterable by status,
		// 				   priority, category, due date, owner
		tasksGroup.GET("", a.TaskList)

		// GET /api/tasks/overdue	-> Past-due unfinished tasks
		tasksGroup.GET("/overdue", a.TaskOverdue)

		// GET /api/tasks/upcoming	-> Tasks still due in the future
		tasksGroup.GET("/upcoming", a.TaskUpcoming)

		// GET /api/tasks/:id		-> Fetches a single task
		tasksGroup.GET("/:id", a.TaskFetch)

		// PUT /api/tasks/:id		-> Patches mutable task fields
		tasksGroup.PUT("/:id", a.TaskUpdate)

		// PUT /api/tasks/:id/complete	-> Marks a task complete
		tasksGroup.PUT("/:id/complete", a.TaskComplete)

		// PUT /api/tasks/:id/uncomplete -> Reverts a completed task
		tasksGroup.PUT("/:id/uncomplete", a.TaskUncomplete)

		// PUT /api/tasks/:id/assign	-> Reassigns a task to another account
		tasksGroup.PUT("/:id/assign", a.TaskAssign)

		// DELETE /api/tasks/:id	-> Deletes a task
		tasksGroup.DELETE("/:id", a.TaskDelete)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}
