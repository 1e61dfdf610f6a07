package main

import (
	"log"

	"portfoliopulse/cmd"
)

func main() {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	err = apiHandler.StartApi(3010)
	if err != nil {
		log.Fatal(err)
	}
}
