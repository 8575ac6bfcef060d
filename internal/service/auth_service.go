package service

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"ec-service/internal/authz"
	"ec-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// UserRepo is the persistence surface the auth service needs.
type UserRepo interface {
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUsers(ctx context.Context) ([]*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// AuthService issues and resolves bearer tokens and manages users.
type AuthService struct {
	users  UserRepo
	tokens TokenStore
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users UserRepo, tokens TokenStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, tokens: tokens, secret: secret, ttl: ttl}
}

type JwtCustomClaims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// Register creates a user with an empty cart and wishlist and logs
// them in. Fails with EMAIL_IN_USE on a duplicate email.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*entity.AuthPayload, error) {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, entity.ErrEmailInUse
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Error looking up email")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
		Role:      entity.RoleCustomer,
	}
	user, err = s.users.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return s.issueToken(ctx, user)
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.AuthPayload, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrInvalidCredentials
		}
		logger.Error().Err(err).Msg("Error looking up user")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	return s.issueToken(ctx, user)
}

func (s *AuthService) issueToken(ctx context.Context, user *entity.User) (*entity.AuthPayload, error) {
	claims := &JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tkn.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(ctx, user.ID, token, s.ttl); err != nil {
		logger.Error().Err(err).Msg("Error saving session")
		return nil, err
	}

	return &entity.AuthPayload{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token back to a live user. The token
// must verify, match the live server-side session, and reference an
// existing user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims := &JwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, entity.ErrNotAuthenticated
	}

	stored, err := s.tokens.Get(ctx, claims.UserID)
	if err != nil || stored != token {
		return nil, entity.ErrNotAuthenticated
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, entity.ErrNotAuthenticated
	}
	return user, nil
}

// Logout invalidates the user's server-side session.
func (s *AuthService) Logout(ctx context.Context, user *entity.User) error {
	if user == nil {
		return entity.ErrNotAuthenticated
	}
	return s.tokens.Delete(ctx, user.ID)
}

type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// UpdateUser lets an authenticated user edit their own profile.
func (s *AuthService) UpdateUser(ctx context.Context, actor *entity.User, input UpdateUserInput) (*entity.User, error) {
	if actor == nil {
		return nil, entity.ErrNotAuthenticated
	}

	user, err := s.users.GetUserByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil && *input.Email != user.Email {
		_, err := s.users.GetUserByEmail(ctx, *input.Email)
		if err == nil {
			return nil, entity.ErrEmailInUse
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	updated, err := s.users.UpdateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error updating user")
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user; admin only.
func (s *AuthService) DeleteUser(ctx context.Context, actor *entity.User, id string) error {
	if err := authz.Require(actor, authz.ManageUsers); err != nil {
		return err
	}
	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.NotFound("user")
		}
		return err
	}
	return nil
}

// UserByID loads a user without an authorization check. It backs
// relation resolution on objects the caller is already allowed to see.
func (s *AuthService) UserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// Users lists all users; admin only.
func (s *AuthService) Users(ctx context.Context, actor *entity.User) ([]*entity.User, error) {
	if err := authz.Require(actor, authz.ManageUsers); err != nil {
		return nil, err
	}
	return s.users.GetUsers(ctx)
}

// User fetches a user by id; admin only.
func (s *AuthService) User(ctx context.Context, actor *entity.User, id string) (*entity.User, error) {
	if err := authz.Require(actor, authz.ManageUsers); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}
