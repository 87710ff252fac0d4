package handlers

import (
	"net/http"

	response "mercadopago_integration/internal/adapter/http/dto/response"

	"github.com/gin-gonic/gin"
)

const ServiceMessage = "Mercado Pago Integration"

// Index godoc
// @Summary  Service banner
// @Tags     misc
// @Produce  json
// @Success  200 {object} response.MessageResponse
// @Router   / [get]
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, response.MessageResponse{Message: ServiceMessage})
}
