package dto

// ConfirmUserResponse is returned by the admin confirmation endpoint.
type ConfirmUserResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userID"`
}
