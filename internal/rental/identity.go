package rental

import (
	"errors"
	"strings"

	"github.com/yussufhh/Novella/internal/model"
)

// IdentityService owns user records: signup, credential verification and
// profile management.
type IdentityService struct {
	users  UserStore
	hasher PasswordHasher
}

// NewIdentityService builds an identity service over the given store and
// credential hasher.
func NewIdentityService(users UserStore, hasher PasswordHasher) *IdentityService {
	return &IdentityService{users: users, hasher: hasher}
}

// RegisterInput carries the signup fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
}

// Register creates a new user. Validation and the email uniqueness check run
// before any hashing or write, so no partial user becomes visible on failure.
func (s *IdentityService) Register(in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, NewError(KindValidation, "email and password are required")
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, NewError(KindValidation, "first_name and last_name are required")
	}
	role, ok := model.ParseRole(in.Role)
	if !ok {
		return nil, NewError(KindValidation, "user_type must be 'owner' or 'renter'")
	}

	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, NewError(KindEmailTaken, "email already registered")
	} else if !errors.Is(err, ErrNoRecord) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Role:      role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a credential pair. The error is uniform whether the
// email is unknown or the password mismatches.
func (s *IdentityService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindInvalidCredentials, "invalid email or password")
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, NewError(KindInvalidCredentials, "invalid email or password")
	}
	return user, nil
}

// Get fetches a user by id.
func (s *IdentityService) Get(id uint) (*model.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

// ProfileInput carries the mutable profile fields. Email and role are
// immutable after signup.
type ProfileInput struct {
	FirstName string
	LastName  string
	Phone     *string
}

// UpdateProfile edits the user's display fields.
func (s *IdentityService) UpdateProfile(id uint, in ProfileInput) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword swaps the credential after verifying the current one.
func (s *IdentityService) ChangePassword(id uint, current, next string) error {
	if next == "" {
		return NewError(KindValidation, "new password is required")
	}
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(current, user.Password) {
		return NewError(KindInvalidCredentials, "current password is incorrect")
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.users.Update(user)
}
