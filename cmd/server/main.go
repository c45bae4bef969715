package main

import "furnihome/go_backend/internal/app"

func main() {
	app.Run()
}
