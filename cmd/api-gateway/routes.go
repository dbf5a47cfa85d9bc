package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/lecturer-admin-api/internal/handler"
	"github.com/noah-isme/lecturer-admin-api/internal/middleware"
	"github.com/noah-isme/lecturer-admin-api/internal/models"
	"github.com/noah-isme/lecturer-admin-api/internal/service"
	"github.com/noah-isme/lecturer-admin-api/pkg/config"
	"github.com/noah-isme/lecturer-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lecturer-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lecturer-admin-api/pkg/middleware/requestid"
)

type routes struct {
	lecturers *handler.LecturerHandler
	courses   *handler.CourseHandler
	relations *handler.RelationHandler
	exports   *handler.ExportHandler
	metrics   *handler.MetricsHandler
	collector *service.MetricsService
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(h.collector))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	api.Use(middleware.NewSubmitGuard(logr).Middleware())

	lecturers := api.Group("/lecturers")
	lecturers.GET("", h.lecturers.List)
	lecturers.POST("", h.lecturers.Create)
	lecturers.GET("/export", h.exports.Lecturers)
	lecturers.POST("/bulk-delete", h.lecturers.DeleteMany)
	lecturers.GET("/:id", h.lecturers.Get)
	lecturers.PUT("/:id", h.lecturers.Update)
	lecturers.DELETE("/:id", h.lecturers.Delete)
	lecturers.GET("/:id/courses", h.relations.CoursesOfLecturer)
	lecturers.PUT("/:id/courses", h.relations.SetAssignments(models.EntityLecturer))
	lecturers.GET("/:id/qualifications", h.relations.Qualifications(models.EntityLecturer))
	lecturers.PUT("/:id/qualifications", h.relations.SetQualifications(models.EntityLecturer))

	courses := api.Group("/courses")
	courses.GET("", h.courses.List)
	courses.POST("", h.courses.Create)
	courses.GET("/export", h.exports.Courses)
	courses.POST("/bulk-delete", h.courses.DeleteMany)
	courses.GET("/:id", h.courses.Get)
	courses.PUT("/:id", h.courses.Update)
	courses.DELETE("/:id", h.courses.Delete)
	courses.GET("/:id/lecturers", h.relations.LecturersOfCourse)
	courses.PUT("/:id/lecturers", h.relations.SetAssignments(models.EntityCourse))
	courses.GET("/:id/qualifications", h.relations.Qualifications(models.EntityCourse))
	courses.PUT("/:id/qualifications", h.relations.SetQualifications(models.EntityCourse))

	api.POST("/assignments", h.relations.CreateAssignment)
	api.DELETE("/assignments/:lecturerId/:courseId", h.relations.DeleteRelation(models.RelationAssignments))

	api.POST("/qualifications", h.relations.CreateQualification)
	api.PUT("/qualifications/:lecturerId/:courseId", h.relations.UpsertQualification)
	api.DELETE("/qualifications/:lecturerId/:courseId", h.relations.DeleteRelation(models.RelationQualifications))

	return r
}
