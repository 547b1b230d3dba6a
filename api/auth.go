package api

import (
	"errors"
	"net/http"

	"github.com/CoinKeep/CoinKeep-Backend/api/apistrings"
	models "github.com/CoinKeep/CoinKeep-Backend/api/models"
	basemodels "github.com/CoinKeep/CoinKeep-Backend/models"
	user_service "github.com/CoinKeep/CoinKeep-Backend/services/user"
	"github.com/CoinKeep/CoinKeep-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Auth struct {
	server      *Server
	userService *user_service.UserService
}

func (a Auth) router(server *Server) {
	a.server = server
	a.userService = user_service.NewUserService(server.store, server.logger)

	serverGroupV1 := server.router.Group("/api/v1/auth")
	serverGroupV1.POST("register", a.register)
	serverGroupV1.POST("login", a.login)
	serverGroupV1.GET("profile", AuthenticatedMiddleware(), a.profile)
	serverGroupV1.DELETE("account", AuthenticatedMiddleware(), a.deleteAccount)
}

func (a *Auth) register(ctx *gin.Context) {
	var params models.RegisterUserParams

	if err := ctx.ShouldBindJSON(&params); err != nil {
		a.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRegisterInput))
		return
	}

	newUser, err := a.userService.Register(ctx, user_service.RegisterParams{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Password:  params.Password,
	})
	if errors.Is(err, user_service.ErrUserAlreadyExists) {
		ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.UserDetailsAlreadyCreated))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID: newUser.ID,
		Role:   newUser.Role,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	userWT := models.UserWithToken{
		User:  models.ToUserResponse(&newUser),
		Token: token,
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("account created successfully", userWT))
}

func (a *Auth) login(ctx *gin.Context) {
	var params models.UserLoginParams

	if err := ctx.ShouldBindJSON(&params); err != nil {
		a.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidLoginInput))
		return
	}

	user, err := a.userService.Authenticate(ctx, params.Email, params.Password)
	if errors.Is(err, user_service.ErrInvalidCredentials) {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.IncorrectEmailPass))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	userWT := models.UserWithToken{
		User:  models.ToUserResponse(&user),
		Token: token,
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("login successful", userWT))
}

func (a *Auth) profile(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	user, err := a.userService.GetProfile(ctx, activeUser.UserID)
	if errors.Is(err, user_service.ErrUserNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNotFound))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("user retrieved successfully", models.ToUserResponse(&user)))
}

func (a *Auth) deleteAccount(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	err = a.userService.DeleteAccount(ctx, activeUser.UserID)
	if errors.Is(err, user_service.ErrUserNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNotFound))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("account deleted successfully", nil))
}
