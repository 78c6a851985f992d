package handler

import (
	"runsheet/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// CreateSessionRequest represents the create session request body.
type CreateSessionRequest struct {
	Text       string  `json:"text" binding:"required" example:"Patent USA to John Smith, 160 acres\nWD John Smith to Mary Jones"`
	Prospect   string  `json:"prospect" example:"Eagle Ford North"`
	TotalAcres float64 `json:"total_acres" binding:"gte=0" example:"160"`
}

// ApproveRowRequest answers candidate name matches for a row.
// Matches maps grantee name to the chosen existing owner (name or ID).
type ApproveRowRequest struct {
	Matches       map[string]string `json:"matches" example:"Bill Johnson:William Johnson"`
	TreatAllAsNew bool              `json:"treat_all_as_new" example:"false"`
}

// NavigateRequest represents the navigate request body.
type NavigateRequest struct {
	Row int `json:"row" binding:"required,min=1" example:"3"`
}

// --- Response Types ---

// ApproveRowResponse is the result of approving a row.
type ApproveRowResponse struct {
	Session   *domain.Session `json:"session"`
	Warnings  []string        `json:"warnings,omitempty"`
	Duplicate bool            `json:"duplicate"`
	Completed bool            `json:"completed"`
}

// ConfirmationRequiredResponse carries candidate owner matches needing an answer.
type ConfirmationRequiredResponse struct {
	Success bool                    `json:"success" example:"false"`
	Data    []domain.GranteeMatches `json:"data"`
	Error   *APIError               `json:"error"`
}

// Response wraps a successful API response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
