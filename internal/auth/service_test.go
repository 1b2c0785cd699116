package auth_test

import (
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrportal/leave-management/internal/auth"
	"github.com/hrportal/leave-management/internal/user"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

type mockUserDirectory struct {
	users []*user.User
}

func (m *mockUserDirectory) GetByID(id string) (*user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *mockUserDirectory) GetByEmail(email string) (*user.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

var _ = Describe("AuthService", func() {
	var (
		authService *auth.Service
		tokenGen    *auth.JWTTokenGenerator
		directory   *mockUserDirectory
		alice       *user.User
	)

	BeforeEach(func() {
		alice = &user.User{
			ID:    "2",
			Name:  "Alice Johnson",
			Email: "alice@example.com",
			Role:  user.RoleEmployee,
		}
		directory = &mockUserDirectory{users: []*user.User{alice}}
		tokenGen = auth.NewJWTTokenGenerator(
			"test-access-secret-at-least-32-chars!!",
			"test-refresh-secret-at-least-32-chars!",
			15*time.Minute,
			7*24*time.Hour,
		)
		authService = auth.NewService(directory, tokenGen)
	})

	Describe("Authenticate", func() {
		It("should return the matched user and a token pair", func() {
			u, tokens, err := authService.Authenticate(auth.LoginDTO{Email: "alice@example.com"})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.ID).To(Equal("2"))
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("should match the email case-insensitively", func() {
			u, _, err := authService.Authenticate(auth.LoginDTO{Email: "ALICE@Example.COM"})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.Email).To(Equal("alice@example.com"))
		})

		It("should reject an unknown email", func() {
			_, _, err := authService.Authenticate(auth.LoginDTO{Email: "nobody@example.com"})

			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should reject an empty email", func() {
			_, _, err := authService.Authenticate(auth.LoginDTO{})

			Expect(err).To(BeAssignableToTypeOf(auth.ValidationError{}))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should round-trip the user id and email through claims", func() {
			_, tokens, err := authService.Authenticate(auth.LoginDTO{Email: "alice@example.com"})
			Expect(err).ToNot(HaveOccurred())

			claims, err := authService.ValidateAccessToken(tokens.AccessToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(claims.UserID).To(Equal("2"))
			Expect(claims.Email).To(Equal("alice@example.com"))
		})

		It("should reject garbage tokens", func() {
			_, err := authService.ValidateAccessToken("not-a-token")

			Expect(err).To(Equal(auth.ErrInvalidToken))
		})

		It("should reject an expired token", func() {
			expiredGen := auth.NewJWTTokenGenerator(
				"test-access-secret-at-least-32-chars!!",
				"test-refresh-secret-at-least-32-chars!",
				-time.Minute,
				7*24*time.Hour,
			)
			token, err := expiredGen.GenerateAccessToken("2", "alice@example.com")
			Expect(err).ToNot(HaveOccurred())

			_, err = authService.ValidateAccessToken(token)

			Expect(err).To(Equal(auth.ErrTokenExpired))
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a fresh pair for a valid refresh token", func() {
			_, tokens, err := authService.Authenticate(auth.LoginDTO{Email: "alice@example.com"})
			Expect(err).ToNot(HaveOccurred())

			renewed, err := authService.RefreshTokens(tokens.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(renewed.AccessToken).ToNot(BeEmpty())
			Expect(renewed.RefreshToken).ToNot(BeEmpty())
		})

		It("should reject an invalid refresh token", func() {
			_, err := authService.RefreshTokens("bogus")

			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})

	Describe("GetUser", func() {
		It("should load the directory record for a token subject", func() {
			u, err := authService.GetUser("2")

			Expect(err).ToNot(HaveOccurred())
			Expect(u.Name).To(Equal("Alice Johnson"))
		})

		It("should surface missing users", func() {
			_, err := authService.GetUser("404")

			Expect(err).To(Equal(user.ErrNotFound))
		})
	})
})
