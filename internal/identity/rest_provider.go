package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"alumnihub/portal/internal/constants"
)

// RESTProvider talks to the hosted identity service over its REST API.
type RESTProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTProvider creates a provider client for the identity service.
func NewRESTProvider(baseURL, apiKey string) *RESTProvider {
	return &RESTProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// userPayload is the wire shape of a provider user record.
type userPayload struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Metadata     metaPayload   `json:"public_metadata"`
	CreatedAt    providerEpoch `json:"created_at"`
	LastSignInAt providerEpoch `json:"last_sign_in_at"`
}

type metaPayload struct {
	Role           string `json:"role,omitempty"`
	Branch         string `json:"branch,omitempty"`
	GraduationYear string `json:"graduationYear,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
}

// providerEpoch decodes the provider's millisecond unix timestamps.
type providerEpoch time.Time

func (e *providerEpoch) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*e = providerEpoch(time.Time{})
		return nil
	}
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	*e = providerEpoch(time.UnixMilli(ms))
	return nil
}

func (p userPayload) toUser() User {
	role := constants.Role(p.Metadata.Role)
	if !role.IsValid() {
		role = constants.RoleUnassigned
	}
	return User{
		ID:             p.ID,
		DisplayName:    p.Name,
		Email:          p.Email,
		Role:           role,
		Branch:         p.Metadata.Branch,
		GraduationYear: p.Metadata.GraduationYear,
		PhoneNumber:    p.Metadata.PhoneNumber,
		CreatedAt:      time.Time(p.CreatedAt),
		LastSignInAt:   time.Time(p.LastSignInAt),
	}
}

// GetUser fetches one user record by provider id.
func (p *RESTProvider) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}

	var payload userPayload
	status, err := p.doJSON(ctx, http.MethodGet, "/users/"+id, nil, &payload)
	if status == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user := payload.toUser()
	return &user, nil
}

// ListUsers fetches every user record.
func (p *RESTProvider) ListUsers(ctx context.Context) ([]User, error) {
	var payload struct {
		Data []userPayload `json:"data"`
	}
	if _, err := p.doJSON(ctx, http.MethodGet, "/users", nil, &payload); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(payload.Data))
	for _, item := range payload.Data {
		users = append(users, item.toUser())
	}
	return users, nil
}

// CreateUser provisions a new account with the given metadata.
func (p *RESTProvider) CreateUser(ctx context.Context, user NewUser) (*User, error) {
	body := map[string]interface{}{
		"name":  user.DisplayName,
		"email": user.Email,
		"public_metadata": metaPayload{
			Role:           user.Role.String(),
			Branch:         user.Branch,
			GraduationYear: user.GraduationYear,
			PhoneNumber:    user.PhoneNumber,
		},
	}

	var payload userPayload
	if _, err := p.doJSON(ctx, http.MethodPost, "/users", body, &payload); err != nil {
		return nil, err
	}

	created := payload.toUser()
	return &created, nil
}

// UpdateUserMetadata patches the user's metadata. Only non-nil fields
// are sent so untouched attributes survive the write.
func (p *RESTProvider) UpdateUserMetadata(ctx context.Context, id string, meta Metadata) error {
	patch := map[string]interface{}{}
	if meta.DisplayName != nil {
		patch["name"] = *meta.DisplayName
	}

	metaPatch := map[string]interface{}{}
	if meta.Role != nil {
		metaPatch["role"] = meta.Role.String()
	}
	if meta.Branch != nil {
		metaPatch["branch"] = *meta.Branch
	}
	if meta.GraduationYear != nil {
		metaPatch["graduationYear"] = *meta.GraduationYear
	}
	if meta.PhoneNumber != nil {
		metaPatch["phoneNumber"] = *meta.PhoneNumber
	}
	if len(metaPatch) > 0 {
		patch["public_metadata"] = metaPatch
	}

	if len(patch) == 0 {
		return nil
	}

	status, err := p.doJSON(ctx, http.MethodPatch, "/users/"+id, patch, nil)
	if status == http.StatusNotFound {
		return ErrUserNotFound
	}
	return err
}

// DeleteUser removes the account from the provider.
func (p *RESTProvider) DeleteUser(ctx context.Context, id string) error {
	status, err := p.doJSON(ctx, http.MethodDelete, "/users/"+id, nil, nil)
	if status == http.StatusNotFound {
		return ErrUserNotFound
	}
	return err
}

// doJSON performs an authenticated request with an optional JSON body and
// decodes the response into result when non-nil.
func (p *RESTProvider) doJSON(ctx context.Context, method, endpoint string, body interface{}, result interface{}) (int, error) {
	if p.APIKey == "" {
		return 0, &ProviderError{Message: "IDENTITY_API_KEY is not set"}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, &ProviderError{Message: "failed to encode request body", Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+endpoint, reqBody)
	if err != nil {
		return 0, &ProviderError{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	// 404 also returns an error: callers for which a missing record is an
	// expected outcome check the status code before the error.
	if resp.StatusCode >= 400 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s %s returned %d: %s", method, endpoint, resp.StatusCode, string(bodyBytes)),
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, &ProviderError{
				StatusCode: resp.StatusCode,
				Message:    "failed to decode response",
				Err:        err,
			}
		}
	}
	return resp.StatusCode, nil
}
