package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/habitaly/portal/internal/core/domain"
	"github.com/habitaly/portal/internal/core/ports"
)

const minPasswordLen = 8

// SessionService implements the session lifecycle: login, registration,
// logout, password reset, and social login.
//
// Every mutating operation reads the account's session epoch when it starts
// and persists its snapshot only if the epoch is unchanged. A logout bumps
// the epoch, so a login completion that raced with a logout is discarded
// instead of resurrecting the session.
type SessionService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	resets    ports.ResetTokenStore
	mailer    ports.Mailer
	google    ports.IdentityProvider
	facebook  ports.IdentityProvider
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewSessionService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	resets ports.ResetTokenStore,
	mailer ports.Mailer,
	google ports.IdentityProvider,
	facebook ports.IdentityProvider,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{
		users:     users,
		sessions:  sessions,
		resets:    resets,
		mailer:    mailer,
		google:    google,
		facebook:  facebook,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// CheckExistingSession restores the durable snapshot for a token. Anything
// other than a well-formed, signed, unexpired snapshot reads as "no
// session" (domain.ErrSessionNotFound); corruption never reaches the
// caller as a decode error.
func (s *SessionService) CheckExistingSession(ctx context.Context, token string) (*domain.SessionSnapshot, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	if _, err := s.parseToken(token); err != nil {
		return nil, domain.ErrSessionNotFound
	}
	return s.sessions.Load(ctx, token)
}

// Login verifies credentials and establishes a session. After return
// exactly one of two outcomes holds: a snapshot was persisted, or a typed
// failure was reported and the session is untouched.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.SessionSnapshot, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	epoch, err := s.sessions.Epoch(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.establish(ctx, user, epoch)
}

// Register creates an account. It validates the payload structurally and
// deliberately does not establish a session: registering is not logging in.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	if !strings.Contains(in.Email, "@") {
		return nil, domain.ErrValidation
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

// Logout destroys the session for the token. It is idempotent: a token with
// no live snapshot is a no-op, not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	snap, err := s.sessions.Load(ctx, token)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil
		}
		return err
	}

	return s.sessions.Delete(ctx, token, snap.User.ID)
}

// ForgotPassword issues a single-use reset token and hands it to the
// mailer. The outcome is identical whether or not the address has an
// account, so the endpoint cannot be used to enumerate users.
func (s *SessionService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil
		}
		return err
	}

	token, err := s.resets.Issue(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("password reset mail failed")
	}
	return nil
}

// ResetPassword redeems a reset token and stores the new password hash.
// Mismatched or empty passwords fail validation before the token store or
// the user repository is touched.
func (s *SessionService) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	if newPassword == "" || confirmPassword == "" || newPassword != confirmPassword {
		return domain.ErrValidation
	}
	if len(newPassword) < minPasswordLen {
		return domain.ErrValidation
	}

	userID, err := s.resets.Consume(ctx, resetToken)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// LoginWithGoogle authenticates through Google. Same contract as Login.
func (s *SessionService) LoginWithGoogle(ctx context.Context, assertion string) (*domain.SessionSnapshot, error) {
	return s.socialLogin(ctx, s.google, assertion)
}

// LoginWithFacebook authenticates through Facebook. Same contract as Login.
func (s *SessionService) LoginWithFacebook(ctx context.Context, assertion string) (*domain.SessionSnapshot, error) {
	return s.socialLogin(ctx, s.facebook, assertion)
}

// socialLogin verifies the provider assertion and establishes a session,
// provisioning the account on first login.
func (s *SessionService) socialLogin(ctx context.Context, provider ports.IdentityProvider, assertion string) (*domain.SessionSnapshot, error) {
	if assertion == "" {
		return nil, domain.ErrInvalidCredentials
	}

	profile, err := provider.Verify(ctx, assertion)
	if err != nil {
		s.log.Warn().Err(err).Str("provider", provider.Name()).Msg("social assertion rejected")
		return nil, domain.ErrProviderUnavailable
	}

	user, err := s.users.FindByEmail(ctx, profile.Email)
	if err == domain.ErrUserNotFound {
		user, err = s.provision(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	epoch, err := s.sessions.Epoch(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, user, epoch)
}

// provision creates an account from a provider-asserted profile. The
// account gets an unguessable password so it can only be entered through
// the provider until a reset.
func (s *SessionService) provision(ctx context.Context, profile *domain.SocialProfile) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Name:         profile.Name,
		Email:        profile.Email,
		AvatarURL:    profile.AvatarURL,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// establish mints the session token and persists the snapshot under the
// epoch observed when the operation started.
func (s *SessionService) establish(ctx context.Context, user *domain.User, epoch int64) (*domain.SessionSnapshot, error) {
	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	snap := &domain.SessionSnapshot{
		Token:    token,
		User:     *user,
		IssuedAt: time.Now().UTC(),
	}

	if err := s.sessions.Save(ctx, snap, epoch); err != nil {
		if err == domain.ErrSessionSuperseded {
			s.log.Info().Str("user_id", user.ID).Msg("discarding login overtaken by logout")
		}
		return nil, err
	}
	return snap, nil
}

func (s *SessionService) mintToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *SessionService) parseToken(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrSessionNotFound
	}
	return claims, nil
}
