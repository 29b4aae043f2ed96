package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-manager-api/internal/application/ports"
	"project-manager-api/internal/domain/ingest"
	domain "project-manager-api/internal/domain/user"
	"project-manager-api/internal/interface/api/rest/dto/user"
	"project-manager-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r gin.IRouter,
	userService ports.UserService,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteUser, uc.GetUserHandler)

	return uc
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		abortWithError(c, http.StatusBadRequest, string(ingest.KindBadRequest), "user_id must be a valid UUID")
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), uuid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, codeNotFound, "user not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, codeInternal, "failed to get a user")
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}
