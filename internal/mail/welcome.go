package mail

import "fmt"

// WelcomeEmail is the queue payload for the registration notification.
type WelcomeEmail struct {
	To       string `json:"to"`
	Username string `json:"username"`
}

func NewWelcomeEmail(username, email string) WelcomeEmail {
	return WelcomeEmail{To: email, Username: username}
}

func (m WelcomeEmail) Subject() string {
	return "Welcome to the Kekambas Blog!"
}

func (m WelcomeEmail) Body() string {
	return fmt.Sprintf("Dear %s, Thank you for signing up for our blog. We are so excited to have you.", m.Username)
}
