package main

import "projecthub_backend/internal/app"

func main() {
	app.Run()
}
