package main

import (
	"log"

	"github.com/Kim-wonder/routineon/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ routineon failed to start: %v", err)
	}
}
