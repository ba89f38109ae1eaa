package main

import (
	"log"

	"githubsearch/service"
)

func main() {
	ser, err := service.NewService()
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}
	defer func() {
		if err := ser.Close(); err != nil {
			log.Printf("Error during service shutdown: %v", err)
		}
	}()

	if err := ser.Start(); err != nil {
		log.Printf("Service error: %v", err)
	}
}
