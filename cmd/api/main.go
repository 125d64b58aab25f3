package main

import (
	_ "github.com/joho/godotenv/autoload"
)

// @title Hello Demo API
// @version 1.0
// @BasePath /
func main() {
	Execute()
}
