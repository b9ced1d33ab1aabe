package main

import (
	"log"

	_ "time/tzdata"

	"github.com/shiftwise/shiftwise/server/cmd/app"
	"github.com/shiftwise/shiftwise/server/internal/adapters/config"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	a.Start()
}
