package apiclient

// AuthenticationError is returned when the server rejects credentials.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "credenciales incorrectas"
	}
	return e.Message
}

// RegistrationError is returned when the server rejects a registration,
// either for a duplicate identifier or an invalid payload.
type RegistrationError struct {
	Message string
	Fields  map[string]string
}

func (e *RegistrationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	for _, msg := range e.Fields {
		return msg
	}
	return "registro inválido"
}

// APIError is any other non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unexpected API error"
}
