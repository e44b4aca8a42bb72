package main

import (
	_ "github.com/joho/godotenv/autoload"

	"filearray/internal/cli"
)

// @title File Array API
// @version 1.0
// @BasePath /
func main() {
	cli.Execute()
}
