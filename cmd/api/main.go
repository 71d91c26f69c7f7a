package main

import (
	"log"
	"portfoliowidget/cmd"
)

func main() {
	apiHandler, secrets, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	if secrets.Jwt == "" {
		apiHandler.Logger.Warn("JWT_SECRET not set, /api/v1 is unauthenticated")
	}
	apiHandler.Logger.Infof("listening on :%d", secrets.Port)

	err = apiHandler.StartApi(secrets.Port)
	if err != nil {
		log.Fatal(err)
	}
}
