package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safechain-api/internal/application/ports"
	"safechain-api/internal/infrastructure/jwt"
	activityDTO "safechain-api/internal/interface/api/rest/dto/activity"
	"safechain-api/internal/interface/api/rest/middleware"
)

type ActivityController struct {
	activityService ports.ActivityService
	logger          *zap.Logger
}

func NewActivityController(
	r *gin.Engine,
	activityService ports.ActivityService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *ActivityController {
	ac := &ActivityController{
		activityService: activityService,
		logger:          logger,
	}

	r.GET(RouteActivity, middleware.AuthMiddleware(jwtService), ac.GetMyActivityHandler)
	r.GET(RouteAdminActivity, middleware.AuthMiddleware(jwtService), ac.GetAllActivityHandler)

	return ac
}

func (ac *ActivityController) GetMyActivityHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	entries, err := ac.activityService.ListMine(c.Request.Context(), principal)
	if err != nil {
		respondError(c, ac.logger, "ListMine()", err)
		return
	}

	c.JSON(http.StatusOK, activityDTO.ResponseData{
		Data: activityDTO.ToResponseEntries(entries),
	})
}

func (ac *ActivityController) GetAllActivityHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	entries, err := ac.activityService.ListAll(c.Request.Context(), principal)
	if err != nil {
		respondError(c, ac.logger, "ListAll()", err)
		return
	}

	c.JSON(http.StatusOK, activityDTO.ResponseData{
		Data: activityDTO.ToResponseEntries(entries),
	})
}
