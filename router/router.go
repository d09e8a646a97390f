package router

import (
	"plantkeeper/config"
	"plantkeeper/controllers"
	"plantkeeper/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares: public routes plus an
// authenticated group (token required).
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	auth.GET("/me", Logger(), controllers.Me)
	auth.PUT("/user", Logger(), controllers.UpdateCurrentUser)
	auth.DELETE("/user", Logger(), controllers.DeleteCurrentUser)

	// Species catalog
	auth.GET("/species", Logger(), controllers.GetSpecies)
	auth.GET("/species/:id", Logger(), controllers.GetSpeciesByID)
	auth.POST("/species", Logger(), controllers.CreateSpecies)
	auth.PUT("/species/:id", Logger(), controllers.UpdateSpecies)
	auth.DELETE("/species/:id", Logger(), controllers.DeleteSpecies)

	// Plants
	auth.GET("/plants", Logger(), controllers.GetPlants)
	auth.GET("/plants/:id", Logger(), controllers.GetPlantByID)
	auth.POST("/plants", Logger(), controllers.CreatePlant)
	auth.PATCH("/plants/:id", Logger(), controllers.UpdatePlant)
	auth.DELETE("/plants/:id", Logger(), controllers.DeletePlant)

	// Care types: system defaults + per-user custom types
	auth.GET("/care-types/default", Logger(), controllers.GetDefaultCareTypes)
	auth.GET("/care-types/user", Logger(), controllers.GetUserCareTypes)
	auth.POST("/care-types", Logger(), controllers.CreateCareType)
	auth.PUT("/care-types/:id", Logger(), controllers.UpdateCareType)
	auth.DELETE("/care-types/:id", Logger(), controllers.DeleteCareType)

	// Care logs
	auth.POST("/plant-care", Logger(), controllers.CreateCareLog)
	auth.GET("/plant-care/plant/:plantId", Logger(), controllers.GetCareLogsByPlant)
	auth.GET("/plant-care/logs/:id", Logger(), controllers.GetCareLogByID)
	auth.PATCH("/plant-care/logs/:id", Logger(), controllers.UpdateCareLog)
	auth.DELETE("/plant-care/logs/:id", Logger(), controllers.DeleteCareLog)

	// Care plans + derived schedule
	auth.POST("/plant-care/care-plans", Logger(), controllers.CreateCarePlan)
	auth.GET("/plant-care/care-plans", Logger(), controllers.GetUserCarePlans)
	auth.GET("/plant-care/care-plans/active", Logger(), controllers.GetActiveCarePlans)
	auth.GET("/plant-care/care-plans/upcoming", Logger(), controllers.GetUpcomingCarePlans)
	auth.PATCH("/plant-care/care-plans/:id", Logger(), controllers.UpdateCarePlan)
	auth.DELETE("/plant-care/care-plans/:id", Logger(), controllers.DeleteCarePlan)
}
