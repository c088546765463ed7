package handler

import (
	"log/slog"

	"catalog/internal/delivery/api/response"
	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	"catalog/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler handles account management
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// UpdateProfileRequest represents the request body for editing one's own account
type UpdateProfileRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

// UpdateUserRequest represents the request body for an administrator editing any account
type UpdateUserRequest struct {
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Username   *string `json:"username" validate:"omitempty,min=3,max=50"`
	FirstName  *string `json:"first_name" validate:"omitempty,max=100"`
	LastName   *string `json:"last_name" validate:"omitempty,max=100"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin user moderator"`
	IsActive   *bool   `json:"is_active"`
	IsVerified *bool   `json:"is_verified"`
}

// UserStatsResponse holds account counts
type UserStatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	VerifiedUsers int64 `json:"verified_users"`
	AdminUsers    int64 `json:"admin_users"`
}

// ListUsers handles the paginated account list
func (h *UserHandler) ListUsers(c echo.Context) error {
	params := response.DefaultPageParams()
	if err := bindQuery(c, &params); err != nil {
		return err
	}

	page, err := h.userUC.ListUsers(c.Request().Context(), params.Skip, params.Limit)
	if err != nil {
		return err
	}

	items := make([]UserResponse, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, newUserResponse(u))
	}

	return response.PageFromParams(items, int(page.Total), params, response.MessageSuccess, nil).Send(c)
}

// Me returns the caller's own profile
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return response.OK(newUserResponse(user), response.MessageSuccess).Send(c)
}

// UpdateMe edits the caller's own profile
func (h *UserHandler) UpdateMe(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.UpdateProfile(c.Request().Context(), actor, &usecase.UpdateProfileInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	return response.OK(newUserResponse(user), response.MessageUpdated).Send(c)
}

// Stats returns account counts
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.userUC.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(UserStatsResponse{
		TotalUsers:    stats.TotalUsers,
		ActiveUsers:   stats.ActiveUsers,
		VerifiedUsers: stats.VerifiedUsers,
		AdminUsers:    stats.AdminUsers,
	}, response.MessageSuccess).Send(c)
}

// GetUser returns one account
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(newUserResponse(user), response.MessageSuccess).Send(c)
}

// UpdateUser edits any account, including role and status flags
func (h *UserHandler) UpdateUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	input := &usecase.UpdateUserInput{
		UpdateProfileInput: usecase.UpdateProfileInput{
			Email:     req.Email,
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
		IsActive:   req.IsActive,
		IsVerified: req.IsVerified,
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), actor, id, input)
	if err != nil {
		return err
	}

	return response.OK(newUserResponse(user), response.MessageUpdated).Send(c)
}

// DeleteUser removes an account
func (h *UserHandler) DeleteUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), actor, id); err != nil {
		return err
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Info("User deleted",
		slog.Int64("user_id", id), slog.Int64("actor_id", actor.ID))

	return response.NoContent().Send(c)
}

// ActivateUser re-enables an account
func (h *UserHandler) ActivateUser(c echo.Context) error {
	return h.setActive(c, true, "User activated successfully")
}

// DeactivateUser disables an account
func (h *UserHandler) DeactivateUser(c echo.Context) error {
	return h.setActive(c, false, "User deactivated successfully")
}

func (h *UserHandler) setActive(c echo.Context, active bool, message string) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userUC.SetActive(c.Request().Context(), actor, id, active)
	if err != nil {
		return err
	}

	return response.OK(newUserResponse(user), message).Send(c)
}

// VerifyUser marks an account as verified
func (h *UserHandler) VerifyUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userUC.VerifyUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(newUserResponse(user), "User verified successfully").Send(c)
}
