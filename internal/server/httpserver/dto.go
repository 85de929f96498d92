package httpserver

import "encoding/json"

type createAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type validateAccountRequest struct {
	Username     string `json:"username"`
	TempPassword string `json:"temp_password"`
	NewPassword  string `json:"new_password"`
}

type forgotUsernameRequest struct {
	Email string `json:"email"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type insertRequest struct {
	SearchKey string `json:"search_key"`
	Data      string `json:"data"`
}

type selectRequest struct {
	SearchKey           string `json:"search_key"`
	CreatedDate         string `json:"created_date"`
	CreatedDateIsBefore string `json:"created_date_is_before"`
	CreatedDateIsAfter  string `json:"created_date_is_after"`
}

type updateRequest struct {
	SearchKey string `json:"search_key"`
	NewEntry  string `json:"new_entry"`
}

type deleteRequest struct {
	SearchKey string `json:"search_key"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsValidated bool   `json:"is_validated"`
}

// selectResult is one row of a select response. Data carries the stored
// payload back as JSON when it parses as JSON, and as a quoted string
// otherwise.
type selectResult struct {
	CreatedAt string          `json:"created_at"`
	Data      json.RawMessage `json:"data"`
}

type selectResponse struct {
	Results []selectResult `json:"results"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// payloadJSON renders a stored payload for a select response.
func payloadJSON(payload string) json.RawMessage {
	if json.Valid([]byte(payload)) {
		return json.RawMessage(payload)
	}
	quoted, err := json.Marshal(payload)
	if err != nil {
		return json.RawMessage(`""`)
	}
	return quoted
}
