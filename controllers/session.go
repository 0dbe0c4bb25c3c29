package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/docpoint/appointment-server/chat"
	"github.com/docpoint/appointment-server/db"
	"github.com/docpoint/appointment-server/utils"
)

// ManageSession creates, updates or fetches the chat-session blob for a user.
// Create and update are the same operation: the blob is overwritten wholesale.
func ManageSession(c *fiber.Ctx) error {
	var input struct {
		UserID      uint   `json:"user_id"`
		Action      string `json:"action"`
		ContextData string `json:"context_data"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	switch input.Action {
	case "create", "update":
		if err := chat.SaveSession(db.DB, input.UserID, input.ContextData); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to save session",
				Error:   err.Error(),
			})
		}
		return c.JSON(fiber.Map{"result": "Session " + input.Action + "d successfully"})

	case "get", "":
		data, err := chat.GetSession(db.DB, input.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to load session",
				Error:   err.Error(),
			})
		}
		return c.JSON(fiber.Map{"result": data})
	}

	return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
		Message: "Action must be 'create', 'update' or 'get'",
	})
}

// GetSessionContext returns the stored conversation context as JSON.
func GetSessionContext(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("user_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	data, err := chat.GetSession(db.DB, uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load session",
			Error:   err.Error(),
		})
	}

	var context map[string]interface{}
	if err := json.Unmarshal([]byte(data), &context); err != nil {
		context = map[string]interface{}{}
	}

	return c.JSON(fiber.Map{
		"user_id": userID,
		"context": context,
	})
}
