package api

import (
	"net/http"

	"licoreria-api/internal/handler/middleware"
	"licoreria-api/internal/usecase"
	"licoreria-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func actorFrom(identity usecase.Identity) commands.Actor {
	return commands.Actor{
		UserID:     identity.UserID,
		CustomerID: identity.CustomerID,
		EmployeeID: identity.EmployeeID,
	}
}

// requireIdentity fetches the identity stored by RequireAuth. A miss means
// the route is wired without the auth middleware.
func requireIdentity(c *gin.Context) (usecase.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
	return identity, ok
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " format",
		})
		return uuid.Nil, false
	}
	return id, true
}
