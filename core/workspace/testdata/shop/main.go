package main

import "github.com/gin-gonic/gin"

func main() {
	r := gin.New()
	registerCourseRoutes(r)
	registerUserRoutes(r)
	r.Run(":8080")
}
