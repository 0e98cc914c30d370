package main

import "eventhire_backend/internal/app"

func main() {
	app.Run()
}
