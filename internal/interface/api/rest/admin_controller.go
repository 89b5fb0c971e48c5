package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safechain-api/internal/application/ports"
	"safechain-api/internal/infrastructure/jwt"
	userDTO "safechain-api/internal/interface/api/rest/dto/user"
	"safechain-api/internal/interface/api/rest/middleware"
	"safechain-api/internal/interface/api/rest/validator"
)

type AdminController struct {
	adminService ports.AdminService
	logger       *zap.Logger
}

func NewAdminController(
	r *gin.Engine,
	adminService ports.AdminService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *AdminController {
	ac := &AdminController{
		adminService: adminService,
		logger:       logger,
	}

	r.GET(RouteAdminUsers, middleware.AuthMiddleware(jwtService), ac.GetUsersHandler)
	r.DELETE(RouteAdminUser, middleware.AuthMiddleware(jwtService), ac.DeleteUserHandler)

	return ac
}

func (ac *AdminController) GetUsersHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	users, err := ac.adminService.ListUsers(c.Request.Context(), principal)
	if err != nil {
		respondError(c, ac.logger, "ListUsers()", err)
		return
	}

	c.JSON(http.StatusOK, userDTO.ResponseData{
		Data: userDTO.ToResponseUsers(users),
	})
}

func (ac *AdminController) DeleteUserHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	ok, targetUUID := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	msg, err := ac.adminService.DeleteUser(c.Request.Context(), principal, targetUUID)
	if err != nil {
		respondError(c, ac.logger, "DeleteUser()", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
