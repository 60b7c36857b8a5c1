package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications (protected). Listing marks
// every returned notification as read.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	list, err := s.notificationSvc.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// DeleteNotifications handles DELETE /api/notifications (protected)
func (s *Server) DeleteNotifications(c *fiber.Ctx) error {
	if err := s.notificationSvc.DeleteAll(c.UserContext(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Notifications deleted successfully",
	})
}

// DeleteNotification handles DELETE /api/notifications/:id (protected)
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := parseObjectID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationSvc.DeleteOne(c.UserContext(), currentUserID(c), notificationID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Notification deleted successfully",
	})
}
