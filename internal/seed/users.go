package seed

import "aigallery/internal/models"

const (
	DemoUsername = "demo"
	DemoPassword = "demo123"
	DemoEmail    = "demo@example.com"
)

const DefaultAvatar = "👤"

// DemoUser describes the account that exists on every start. The password is
// hashed by the caller.
func DemoUser() models.User {
	return models.User{
		Username: DemoUsername,
		Email:    DemoEmail,
		Avatar:   DefaultAvatar,
		Bio:      "热爱AI艺术创作",
	}
}
