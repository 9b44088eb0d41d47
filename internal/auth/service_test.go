package auth

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock repository for testing
type mockAuthRepository struct {
	users         map[int64]*User
	roles         map[int64]string
	nextID        int64
	returnError   bool
	errorToReturn error
}

func newMockAuthRepository(hasher *PasswordHasher) *mockAuthRepository {
	hash, _ := hasher.Hash("correct_password")

	return &mockAuthRepository{
		users: map[int64]*User{
			1: {ID: 1, FullName: "Gate Operator", Username: "operator", Email: "operator@depot.local", PasswordHash: hash, RoleID: 2, RoleName: "operator"},
			2: {ID: 2, FullName: "Depot Admin", Username: "admin", Email: "admin@depot.local", PasswordHash: hash, RoleID: 1, RoleName: "admin"},
		},
		roles:  map[int64]string{1: "admin", 2: "operator"},
		nextID: 3,
	}
}

func (m *mockAuthRepository) GetByUsernameOrEmail(login string) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *mockAuthRepository) GetByID(userID int64) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func (m *mockAuthRepository) GetByRefreshToken(token string) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *mockAuthRepository) UsernameOrEmailExists(username, email string) (bool, error) {
	if m.returnError {
		return false, m.errorToReturn
	}
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAuthRepository) RoleExists(roleID int64) (bool, error) {
	if m.returnError {
		return false, m.errorToReturn
	}
	_, ok := m.roles[roleID]
	return ok, nil
}

func (m *mockAuthRepository) RoleName(roleID int64) (string, error) {
	if m.returnError {
		return "", m.errorToReturn
	}
	if name, ok := m.roles[roleID]; ok {
		return name, nil
	}
	return "", errors.New("role not found")
}

func (m *mockAuthRepository) Create(user *User) error {
	if m.returnError {
		return m.errorToReturn
	}
	user.ID = m.nextID
	m.nextID++
	user.RoleName = m.roles[user.RoleID]
	m.users[user.ID] = user
	return nil
}

func (m *mockAuthRepository) UpdatePassword(userID int64, passwordHash string) error {
	if m.returnError {
		return m.errorToReturn
	}
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockAuthRepository) StoreRefreshToken(userID int64, token string, expiresAt time.Time) error {
	if m.returnError {
		return m.errorToReturn
	}
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.RefreshToken = &token
	u.RefreshTokenExpiresAt = &expiresAt
	return nil
}

func (m *mockAuthRepository) ClearRefreshToken(userID int64) error {
	if m.returnError {
		return m.errorToReturn
	}
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.RefreshToken = nil
	u.RefreshTokenExpiresAt = nil
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service    *Service
		mockRepo   *mockAuthRepository
		tokenGen   *JWTTokenGenerator
		hasher     *PasswordHasher
		accessTTL  time.Duration = 15 * time.Minute
		refreshTTL time.Duration = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		hasher = NewPasswordHasher(1000)
		mockRepo = newMockAuthRepository(hasher)
		tokenGen = NewJWTTokenGenerator("test-signing-key-with-enough-bytes", "test-issuer", "test-audience", accessTTL)
		service = NewService(mockRepo, tokenGen, hasher, refreshTTL, slog.Default())
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return a token pair and user info", func() {
				tokens, info, err := service.Authenticate(LoginDTO{Username: "operator", Password: "correct_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
				gomega.Expect(info.Username).To(gomega.Equal("operator"))
			})

			ginkgo.It("should accept the email in the username field", func() {
				_, info, err := service.Authenticate(LoginDTO{Username: "admin@depot.local", Password: "correct_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(info.UserID).To(gomega.Equal(int64(2)))
			})

			ginkgo.It("should issue an access token that validates with the expected claims", func() {
				tokens, _, err := service.Authenticate(LoginDTO{Username: "admin", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.Subject).To(gomega.Equal("2"))
				gomega.Expect(claims.Username).To(gomega.Equal("admin"))
				gomega.Expect(claims.Role).To(gomega.Equal("admin"))
			})

			ginkgo.It("should persist the refresh token on the user row", func() {
				tokens, _, err := service.Authenticate(LoginDTO{Username: "operator", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				stored := mockRepo.users[1]
				gomega.Expect(stored.RefreshToken).ToNot(gomega.BeNil())
				gomega.Expect(*stored.RefreshToken).To(gomega.Equal(tokens.RefreshToken))
				gomega.Expect(stored.RefreshTokenExpiresAt.After(time.Now())).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return the same error for an unknown username", func() {
				_, _, err := service.Authenticate(LoginDTO{Username: "nobody", Password: "any_password"})

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should return the same error for a wrong password", func() {
				_, _, err := service.Authenticate(LoginDTO{Username: "operator", Password: "wrong_password"})

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should reject an empty password before hitting the repository", func() {
				_, _, err := service.Authenticate(LoginDTO{Username: "operator", Password: ""})

				gomega.Expect(err).To(gomega.HaveOccurred())
				var vErr ValidationError
				gomega.Expect(errors.As(err, &vErr)).To(gomega.BeTrue())
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should rotate the refresh token", func() {
			tokens, _, err := service.Authenticate(LoginDTO{Username: "operator", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rotated, err := service.RefreshTokens(tokens.RefreshToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rotated.RefreshToken).ToNot(gomega.Equal(tokens.RefreshToken))
			gomega.Expect(*mockRepo.users[1].RefreshToken).To(gomega.Equal(rotated.RefreshToken))
		})

		ginkgo.It("should reject the previous token after rotation", func() {
			tokens, _, err := service.Authenticate(LoginDTO{Username: "operator", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.RefreshTokens(tokens.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.RefreshTokens(tokens.RefreshToken)
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should clear an expired refresh token and report expiry", func() {
			expired := time.Now().Add(-time.Hour)
			token := "stale-refresh-token"
			mockRepo.users[1].RefreshToken = &token
			mockRepo.users[1].RefreshTokenExpiresAt = &expired

			_, err := service.RefreshTokens(token)

			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
			gomega.Expect(mockRepo.users[1].RefreshToken).To(gomega.BeNil())
		})

		ginkgo.It("should reject an unknown token", func() {
			_, err := service.RefreshTokens("never-issued")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject an empty token", func() {
			_, err := service.RefreshTokens("")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should reject a token signed with a different key", func() {
			otherGen := NewJWTTokenGenerator("another-signing-key-with-enough-bytes", "test-issuer", "test-audience", accessTTL)
			forged, _, err := otherGen.GenerateAccessToken(mockRepo.users[1])
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(forged)

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject an expired token", func() {
			shortGen := NewJWTTokenGenerator("test-signing-key-with-enough-bytes", "test-issuer", "test-audience", -time.Minute)
			stale, _, err := shortGen.GenerateAccessToken(mockRepo.users[1])
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(stale)

			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
		})

		ginkgo.It("should reject garbage input", func() {
			_, err := service.ValidateAccessToken("not.a.jwt")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("should create a user whose password verifies", func() {
			info, err := service.Register(RegisterDTO{
				FullName: "New Operator",
				Username: "newop",
				Email:    "newop@depot.local",
				Password: "secret123",
				RoleID:   2,
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(info.UserID).To(gomega.Equal(int64(3)))

			created := mockRepo.users[info.UserID]
			gomega.Expect(hasher.Verify("secret123", created.PasswordHash)).To(gomega.BeTrue())
			gomega.Expect(created.PasswordHash).ToNot(gomega.ContainSubstring("secret123"))
		})

		ginkgo.It("should reject a taken username", func() {
			_, err := service.Register(RegisterDTO{
				FullName: "Impostor",
				Username: "admin",
				Email:    "impostor@depot.local",
				Password: "secret123",
				RoleID:   2,
			})

			gomega.Expect(err).To(gomega.Equal(ErrUserExists))
		})

		ginkgo.It("should reject an unknown role", func() {
			_, err := service.Register(RegisterDTO{
				FullName: "New Operator",
				Username: "newop",
				Email:    "newop@depot.local",
				Password: "secret123",
				RoleID:   99,
			})

			gomega.Expect(err).To(gomega.Equal(ErrRoleNotFound))
		})
	})

	ginkgo.Describe("ChangePassword", func() {
		ginkgo.It("should rehash when the current password is correct", func() {
			err := service.ChangePassword(ChangePasswordDTO{
				UserID:          1,
				CurrentPassword: "correct_password",
				NewPassword:     "brand_new_pw",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(hasher.Verify("brand_new_pw", mockRepo.users[1].PasswordHash)).To(gomega.BeTrue())
			gomega.Expect(hasher.Verify("correct_password", mockRepo.users[1].PasswordHash)).To(gomega.BeFalse())
		})

		ginkgo.It("should reject a wrong current password", func() {
			err := service.ChangePassword(ChangePasswordDTO{
				UserID:          1,
				CurrentPassword: "wrong_password",
				NewPassword:     "brand_new_pw",
			})

			gomega.Expect(err).To(gomega.Equal(ErrWrongPassword))
		})

		ginkgo.It("should reject an unknown user", func() {
			err := service.ChangePassword(ChangePasswordDTO{
				UserID:          42,
				CurrentPassword: "correct_password",
				NewPassword:     "brand_new_pw",
			})

			gomega.Expect(err).To(gomega.Equal(ErrUserNotFound))
		})
	})
})

var _ = ginkgo.Describe("PasswordHasher", func() {
	var hasher *PasswordHasher

	ginkgo.BeforeEach(func() {
		hasher = NewPasswordHasher(1000)
	})

	ginkgo.It("should produce distinct hashes for the same password", func() {
		first, err := hasher.Hash("same-password")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		second, err := hasher.Hash("same-password")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(first).ToNot(gomega.Equal(second))
		gomega.Expect(hasher.Verify("same-password", first)).To(gomega.BeTrue())
		gomega.Expect(hasher.Verify("same-password", second)).To(gomega.BeTrue())
	})

	ginkgo.It("should verify hashes written with a different iteration count", func() {
		slower := NewPasswordHasher(2000)
		stored, err := slower.Hash("password")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(hasher.Verify("password", stored)).To(gomega.BeTrue())
	})

	ginkgo.It("should fail verification for malformed stored values", func() {
		gomega.Expect(hasher.Verify("password", "")).To(gomega.BeFalse())
		gomega.Expect(hasher.Verify("password", "plaintext")).To(gomega.BeFalse())
		gomega.Expect(hasher.Verify("password", "BCRYPT.10.abc.def")).To(gomega.BeFalse())
	})
})
