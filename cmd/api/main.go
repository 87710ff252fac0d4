package main

import (
	_ "mercadopago_integration/docs"
	"mercadopago_integration/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Mercado Pago Integration API
// @version         1.0
// @description     HTTP facade over the Mercado Pago checkout API.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @host localhost:3000

// @BasePath  /

func main() {
	routes.Run()
}
