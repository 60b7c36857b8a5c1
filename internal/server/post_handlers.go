package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
		Img  string `json:"img"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postSvc.CreatePost(c.UserContext(), currentUserID(c), req.Text, req.Img)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetAllPosts handles GET /api/posts (public)
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	posts, err := s.postSvc.ListAll(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id (public)
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postSvc.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetUserPosts handles GET /api/posts/user/:username (public)
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	posts, err := s.postSvc.ListByUsername(c.UserContext(), c.Params("username"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetFollowingFeed handles GET /api/posts/following (protected)
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	posts, err := s.postSvc.ListFollowingFeed(c.UserContext(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetLikedPosts handles GET /api/posts/likes/:id (public)
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	userID, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postSvc.ListLiked(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// LikePost handles POST /api/posts/like/:id (protected). The same route likes
// or unlikes depending on the current state.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.postSvc.ToggleLike(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}

	message := "Post unliked successfully"
	if result.Liked {
		message = "Post liked successfully"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"post_id": result.PostID,
		"liked":   result.Liked,
	})
}

// CommentOnPost handles POST /api/posts/comment/:id (protected)
func (s *Server) CommentOnPost(c *fiber.Ctx) error {
	postID, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postSvc.AddComment(c.UserContext(), currentUserID(c), postID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id (protected)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postSvc.DeletePost(c.UserContext(), currentUserID(c), postID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
