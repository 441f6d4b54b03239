package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"timetracking/internal/apperr"
	"timetracking/internal/config"
	"timetracking/internal/employee"
	"timetracking/internal/httpmiddleware"
	"timetracking/internal/queue"
	"timetracking/internal/store"
	"timetracking/internal/timelog"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Printf("warning: db not reachable: %v", err)
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()
	if db != nil {
		if err := db.EnsureSchema(context.Background()); err != nil {
			log.Printf("warning: schema bootstrap failed: %v", err)
		}
	}

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "timetracking:logs")
	}

	employeeRepo := employee.NewRepository(db.Client)
	employees := employee.NewService(employeeRepo)
	logs := timelog.NewService(timelog.NewRepository(db.Client), employeeRepo)
	ctx := context.Background()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.NewRateLimiter(redisClient.Client, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db != nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	api := r.Group("/api")

	api.POST("/employees", func(c *gin.Context) {
		var req struct {
			FirstName string `json:"first_name" binding:"required"`
			LastName  string `json:"last_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		emp, err := employees.Create(c.Request.Context(), req.FirstName, req.LastName)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, emp)
	})

	api.GET("/employees", func(c *gin.Context) {
		list, err := employees.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if list == nil {
			list = []employee.Employee{}
		}
		c.JSON(http.StatusOK, list)
	})

	api.GET("/employees/search", func(c *gin.Context) {
		list, err := employees.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			writeError(c, err)
			return
		}
		if list == nil {
			list = []employee.Employee{}
		}
		c.JSON(http.StatusOK, list)
	})

	api.GET("/employees/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		emp, err := employees.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, emp)
	})

	api.PUT("/employees/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req struct {
			FirstName string `json:"first_name" binding:"required"`
			LastName  string `json:"last_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		emp, err := employees.Update(c.Request.Context(), id, req.FirstName, req.LastName)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, emp)
	})

	api.DELETE("/employees/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := employees.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	api.POST("/time-logs", func(c *gin.Context) {
		var req struct {
			EmployeeID int64  `json:"employee_id" binding:"required"`
			CheckTime  string `json:"check_time" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		checkTime, err := parseTime(req.CheckTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ev, err := logs.Record(c.Request.Context(), req.EmployeeID, checkTime)
		if err != nil {
			writeError(c, err)
			return
		}

		if err := q.Publish(ctx, queue.Message{Type: queue.TypeTimeLog, Body: []byte(strconv.FormatInt(ev.ID, 10))}); err != nil {
			log.Printf("queue publish failed: %v", err)
		}

		c.JSON(http.StatusCreated, ev)
	})

	api.GET("/time-logs", func(c *gin.Context) {
		employeeID, from, to, ok := rangeParams(c)
		if !ok {
			return
		}
		events, err := logs.Logs(c.Request.Context(), employeeID, from, to)
		if err != nil {
			writeError(c, err)
			return
		}
		if events == nil {
			events = []timelog.CheckEvent{}
		}
		c.JSON(http.StatusOK, events)
	})

	api.GET("/time-logs/timesheet", func(c *gin.Context) {
		employeeID, from, to, ok := rangeParams(c)
		if !ok {
			return
		}
		sheet, err := logs.Timesheet(c.Request.Context(), employeeID, from, to)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sheet)
	})

	api.GET("/time-logs/present", func(c *gin.Context) {
		at, err := parseTime(c.Query("time"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		present, err := logs.Present(c.Request.Context(), at)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, present)
	})

	api.DELETE("/time-logs/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := logs.DeleteLog(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// timeLayout matches the naive ISO-8601 form clients submit; zoned
// RFC 3339 values are accepted too.
const timeLayout = "2006-01-02T15:04:05"

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("time parameter required")
	}
	if t, err := time.ParseInLocation(timeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("time must be ISO-8601, e.g. 2024-12-08T09:00:00")
	}
	return t, nil
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "numeric id required"})
		return 0, false
	}
	return id, true
}

func rangeParams(c *gin.Context) (int64, time.Time, time.Time, bool) {
	employeeID, err := strconv.ParseInt(c.Query("employee_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id required"})
		return 0, time.Time{}, time.Time{}, false
	}
	from, err := parseTime(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from: " + err.Error()})
		return 0, time.Time{}, time.Time{}, false
	}
	to, err := parseTime(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to: " + err.Error()})
		return 0, time.Time{}, time.Time{}, false
	}
	return employeeID, from, to, true
}

// writeError maps application errors onto response statuses.
func writeError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
