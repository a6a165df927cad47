package main

import "github.com/gin-gonic/gin"

func registerUserRoutes(r *gin.Engine) {
	user := r.Group("/user")
	user.POST("/profile", updateProfile)
	admin := user.Group("/admin")
	admin.DELETE("/users/:id", deleteUser)
}
