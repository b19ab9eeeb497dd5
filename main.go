package main

import (
	"sportstravel/internal/app"
)

// @title Sports Travel API
// @version 1.0
// @description Sales and quoting backend for sports travel packages.
// @BasePath /
func main() {
	app.Run()
}
