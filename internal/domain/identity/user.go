package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/tradegate/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the access level of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleUser  Role = "user"
)

// IsValid reports whether the role is one of the known values
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

// Password cost for bcrypt
const bcryptCost = 12

// User represents an account in the system
type User struct {
	shared.BaseEntity
	Username     string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	Phone        *string    `gorm:"type:varchar(20);uniqueIndex"`
	Email        *string    `gorm:"type:varchar(200);uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'user'"`
	IsStaff      bool       `gorm:"not null;default:false"`
	IsSuperuser  bool       `gorm:"not null;default:false"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with the default role
func NewUser(username, password string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		IsActive:     true,
	}, nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	if email == "" {
		u.Email = nil
		u.UpdatedAt = time.Now()
		return nil
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	u.Email = &email
	u.UpdatedAt = time.Now()

	return nil
}

// SetPhone sets the user's phone number
func (u *User) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		u.Phone = nil
		u.UpdatedAt = time.Now()
		return nil
	}
	if len(phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 20 characters")
	}

	u.Phone = &phone
	u.UpdatedAt = time.Now()

	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be admin, staff, or user")
	}

	u.Role = role
	u.UpdatedAt = time.Now()

	return nil
}

// SetPassword sets a new password
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// CanAdminister reports whether the user may perform administrative
// operations such as verifying marketplace orders
func (u *User) CanAdminister() bool {
	return u.Role == RoleAdmin || u.IsStaff || u.IsSuperuser
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Validation functions

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 150 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 150 characters")
	}

	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
