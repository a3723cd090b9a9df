package dto

import "github.com/yukikurage/quest-tracker-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	Username string `json:"username"`
}

// MessageResponse is the body of operations that return no resource
type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username: user.Username,
	}
}
