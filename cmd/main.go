package main

import (
	"os"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/config"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/routes"
)

func main() {
	config.InitLogger()
	config.InitDB()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	r.Run(":" + port)
}
