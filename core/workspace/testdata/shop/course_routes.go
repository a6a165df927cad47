package main

import "github.com/gin-gonic/gin"

func registerCourseRoutes(r *gin.Engine) {
	r.GET("/", listCourses)
}
