package types

// AuthRequest is the body of POST /auth. Password is accepted as an alias of
// Secret for older clients that still send "password".
type AuthRequest struct {
	Email    string `json:"email"`
	Secret   string `json:"secret"`
	Password string `json:"password"`
}

// SecretValue returns the secret, falling back to the password alias.
func (r AuthRequest) SecretValue() string {
	if r.Secret != "" {
		return r.Secret
	}
	return r.Password
}

// AuthResponse is returned for both the created and the matched account.
type AuthResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	ID    string `json:"id"`
}

// ImagePayload references an image already uploaded to external storage.
type ImagePayload struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldIssue `json:"fields,omitempty"`
}

// FieldIssue names one invalid input field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
