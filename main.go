package main

import (
	"log"

	"github.com/heartbeam/matchsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
