package templates

// RegisterView is the registration form model.
type RegisterView struct {
	Name     string
	Email    string
	Username string
	Errors   []string
}

// LoginView is the login form model.
type LoginView struct {
	Username string
}
