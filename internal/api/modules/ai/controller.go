package ai_module

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/interview/pkg/sdk"
)

// GetGreeting handles GET requests for the personalized dashboard greeting
func GetGreeting(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Query parameter 'name' is required", nil).AsGinResponse())
		return
	}

	resp := sdk.GreetingResponse{
		Greeting: manager.Greeting(c.Request.Context(), name),
	}

	c.JSON(sdk.NewSuccessResponse("Greeting generated successfully", resp).AsGinResponse())
}
