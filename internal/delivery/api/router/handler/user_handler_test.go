package handler

import (
	"net/http"
	"testing"

	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	mockUsecase "catalog/internal/mocks/usecase"
	"catalog/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestUserHandler(t *testing.T) (*UserHandler, *mockUsecase.MockUserUsecase) {
	t.Helper()

	userUC := mockUsecase.NewMockUserUsecase(t)

	return NewUserHandler(UserHandlerParams{UserUC: userUC, Logger: discardLogger()}), userUC
}

func adminActor() *entity.User {
	return &entity.User{ID: 1, Username: "root", Role: entity.RoleAdmin, IsActive: true}
}

func ptr[T any](v T) *T {
	return &v
}

func TestUserHandler_ListUsers(t *testing.T) {
	h, userUC := createTestUserHandler(t)
	userUC.EXPECT().ListUsers(mock.Anything, 2, 2).Return(&usecase.UserPage{
		Items: []*entity.User{testUser(), adminActor()},
		Total: 5,
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/api/v1/users?skip=2&limit=2", "")

	require.NoError(t, h.ListUsers(c))

	body := decodeBody(t, rec)
	assert.Len(t, body["items"], 2)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(5), pagination["total"])
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(3), pagination["total_pages"])
	assert.Equal(t, true, pagination["has_prev"])
}

func TestUserHandler_UpdateMe(t *testing.T) {
	h, userUC := createTestUserHandler(t)
	actor := testUser()
	updated := testUser()
	updated.LastName = "Scully"
	userUC.EXPECT().UpdateProfile(mock.Anything, actor, &usecase.UpdateProfileInput{LastName: ptr("Scully")}).Return(updated, nil)

	c, rec := newTestContext(http.MethodPut, "/api/v1/users/me", `{"last_name":"Scully"}`)
	deliverycontext.SetCurrentUser(c, actor)

	require.NoError(t, h.UpdateMe(c))

	body := decodeBody(t, rec)
	assert.Equal(t, "Resource updated successfully", body["message"])
	assert.Equal(t, "Scully", body["data"].(map[string]any)["last_name"])
}

func TestUserHandler_Stats(t *testing.T) {
	h, userUC := createTestUserHandler(t)
	userUC.EXPECT().Stats(mock.Anything).Return(&entity.UserStats{TotalUsers: 4, ActiveUsers: 3, VerifiedUsers: 2, AdminUsers: 1}, nil)

	c, rec := newTestContext(http.MethodGet, "/api/v1/users/stats/count", "")

	require.NoError(t, h.Stats(c))

	assert.Equal(t, map[string]any{
		"total_users":    float64(4),
		"active_users":   float64(3),
		"verified_users": float64(2),
		"admin_users":    float64(1),
	}, decodeBody(t, rec)["data"])
}

func TestUserHandler_GetUser(t *testing.T) {
	h, userUC := createTestUserHandler(t)
	userUC.EXPECT().GetUser(mock.Anything, int64(40)).Return(nil, domainerrors.NotFound("User", int64(40)))

	c, _ := newTestContext(http.MethodGet, "/api/v1/users/40", "")
	withParams(c, "id", "40")

	requireAppError(t, h.GetUser(c), http.StatusNotFound, "NOT_FOUND")
}

func TestUserHandler_UpdateUser(t *testing.T) {
	t.Run("role and flags", func(t *testing.T) {
		h, userUC := createTestUserHandler(t)
		actor := adminActor()
		role := entity.RoleModerator
		updated := testUser()
		updated.Role = role
		userUC.EXPECT().UpdateUser(mock.Anything, actor, int64(5), &usecase.UpdateUserInput{
			Role:       &role,
			IsVerified: ptr(true),
		}).Return(updated, nil)

		c, rec := newTestContext(http.MethodPut, "/api/v1/users/5", `{"role":"moderator","is_verified":true}`)
		withParams(c, "id", "5")
		deliverycontext.SetCurrentUser(c, actor)

		require.NoError(t, h.UpdateUser(c))
		assert.Equal(t, "moderator", decodeBody(t, rec)["data"].(map[string]any)["role"])
	})

	t.Run("unknown role", func(t *testing.T) {
		h, _ := createTestUserHandler(t)

		c, _ := newTestContext(http.MethodPut, "/api/v1/users/5", `{"role":"owner"}`)
		withParams(c, "id", "5")
		deliverycontext.SetCurrentUser(c, adminActor())

		requireValidationIssue(t, h.UpdateUser(c), []string{"body", "role"}, "enum")
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		h, userUC := createTestUserHandler(t)
		actor := adminActor()
		userUC.EXPECT().DeleteUser(mock.Anything, actor, int64(5)).Return(nil)

		c, rec := newTestContext(http.MethodDelete, "/api/v1/users/5", "")
		withParams(c, "id", "5")
		deliverycontext.SetCurrentUser(c, actor)

		require.NoError(t, h.DeleteUser(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("self", func(t *testing.T) {
		h, userUC := createTestUserHandler(t)
		actor := adminActor()
		userUC.EXPECT().DeleteUser(mock.Anything, actor, int64(1)).Return(domainerrors.ErrSelfDeletion)

		c, _ := newTestContext(http.MethodDelete, "/api/v1/users/1", "")
		withParams(c, "id", "1")
		deliverycontext.SetCurrentUser(c, actor)

		assert.ErrorIs(t, h.DeleteUser(c), domainerrors.ErrSelfDeletion)
	})
}

func TestUserHandler_StatusChanges(t *testing.T) {
	tests := []struct {
		name        string
		call        func(h *UserHandler) func(c echo.Context) error
		expect      func(userUC *mockUsecase.MockUserUsecase, actor *entity.User)
		wantMessage string
	}{
		{
			name: "activate",
			call: func(h *UserHandler) func(c echo.Context) error { return h.ActivateUser },
			expect: func(userUC *mockUsecase.MockUserUsecase, actor *entity.User) {
				userUC.EXPECT().SetActive(mock.Anything, actor, int64(5), true).Return(testUser(), nil)
			},
			wantMessage: "User activated successfully",
		},
		{
			name: "deactivate",
			call: func(h *UserHandler) func(c echo.Context) error { return h.DeactivateUser },
			expect: func(userUC *mockUsecase.MockUserUsecase, actor *entity.User) {
				userUC.EXPECT().SetActive(mock.Anything, actor, int64(5), false).Return(testUser(), nil)
			},
			wantMessage: "User deactivated successfully",
		},
		{
			name: "verify",
			call: func(h *UserHandler) func(c echo.Context) error { return h.VerifyUser },
			expect: func(userUC *mockUsecase.MockUserUsecase, _ *entity.User) {
				userUC.EXPECT().VerifyUser(mock.Anything, int64(5)).Return(testUser(), nil)
			},
			wantMessage: "User verified successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, userUC := createTestUserHandler(t)
			actor := adminActor()
			tt.expect(userUC, actor)

			c, rec := newTestContext(http.MethodPatch, "/api/v1/users/5/"+tt.name, "")
			withParams(c, "id", "5")
			deliverycontext.SetCurrentUser(c, actor)

			require.NoError(t, tt.call(h)(c))
			assert.Equal(t, tt.wantMessage, decodeBody(t, rec)["message"])
		})
	}
}
