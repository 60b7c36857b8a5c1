package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/profile/:username (public)
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userSvc.GetProfile(c.UserContext(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetSuggestedUsers handles GET /api/users/suggested (protected)
func (s *Server) GetSuggestedUsers(c *fiber.Ctx) error {
	suggested, err := s.userSvc.SuggestedUsers(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suggested)
}

// FollowUser handles POST /api/users/follow/:id (protected). The same route
// follows or unfollows depending on the current edge state.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.socialSvc.ToggleFollow(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return respondError(c, err)
	}

	message := "User unfollowed successfully"
	if result.Following {
		message = "User followed successfully"
	}
	return c.JSON(fiber.Map{
		"message":   message,
		"target_id": result.TargetID,
		"following": result.Following,
	})
}

// UpdateMyProfile handles PUT /api/users/me (protected)
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FullName        string `json:"full_name"`
		Email           string `json:"email"`
		Username        string `json:"username"`
		Bio             string `json:"bio"`
		Link            string `json:"link"`
		ProfileImg      string `json:"profile_img"`
		CoverImg        string `json:"cover_img"`
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userSvc.UpdateProfile(c.UserContext(), currentUserID(c), service.UpdateProfileInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Username:        req.Username,
		Bio:             req.Bio,
		Link:            req.Link,
		ProfileImg:      req.ProfileImg,
		CoverImg:        req.CoverImg,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
