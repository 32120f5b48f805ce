package rental

import (
	"fmt"
	"strings"

	"jabRental/pkg/utils"

	"github.com/google/uuid"
)

var mockUserNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("jabrental:mock-users"))

// MockUserID is the stable id of the mock user signed in as email. Emails
// differing only in case or surrounding spaces share an id.
func MockUserID(email string) string {
	key := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(mockUserNamespace, []byte(key)).String()
}

// Authenticator decides whether a login attempt succeeds.
type Authenticator interface {
	Authenticate(email, password string) bool
}

// MockAuthenticator accepts any email with one fixed sentinel password. It
// stands in for a real identity backend and is not a security mechanism.
type MockAuthenticator struct {
	sentinelHash string
}

func NewMockAuthenticator(sentinel string) (*MockAuthenticator, error) {
	hash, err := utils.HashPassword(sentinel)
	if err != nil {
		return nil, fmt.Errorf("failed to hash mock password: %w", err)
	}

	return &MockAuthenticator{sentinelHash: string(hash)}, nil
}

func (a *MockAuthenticator) Authenticate(_ string, password string) bool {
	return utils.CheckPassword(password, a.sentinelHash)
}
