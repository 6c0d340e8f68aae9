package dto

// CredentialsForm is the login and registration form
type CredentialsForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}
