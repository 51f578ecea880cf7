package main

import (
	"log"

	"github.com/profilehub/profile-hub/cmd"
	"github.com/profilehub/profile-hub/config"
)

func main() {
	log.Printf("profile-hub %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
