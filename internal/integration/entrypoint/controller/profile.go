package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistente-contable/backend/internal/application/usecase/profile"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/dto"
)

// ProfileController handles the authenticated user's profile.
type ProfileController struct {
	getProfileUseCase    *profile.GetProfileUseCase
	updateProfileUseCase *profile.UpdateProfileUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(
	getProfileUseCase *profile.GetProfileUseCase,
	updateProfileUseCase *profile.UpdateProfileUseCase,
) *ProfileController {
	return &ProfileController{
		getProfileUseCase:    getProfileUseCase,
		updateProfileUseCase: updateProfileUseCase,
	}
}

// Get handles GET /profile requests.
func (c *ProfileController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getProfileUseCase.Execute(ctx.Request.Context(), profile.GetProfileInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(output.User), ""))
}

// Update handles PUT /profile requests.
func (c *ProfileController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, msgInvalidBody)
		return
	}

	output, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), profile.UpdateProfileInput{
		UserID:            userID,
		Name:              req.Name,
		Phone:             req.Phone,
		TelegramChatID:    string(req.TelegramChatID),
		PreferredCurrency: req.PreferredCurrency,
		UserType:          req.UserType,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(output.User), "Perfil actualizado correctamente"))
}
