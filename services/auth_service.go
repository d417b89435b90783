package services

import (
	"errors"
	"strings"
	"time"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"
	"github.com/nori1700pm/ESD-FoodDelivery/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles register/login and token issue.
type AuthService struct {
	userRepo     *repository.UserRepository
	jwtSecret    string
	jwtTTL       time.Duration
	driverSuffix string
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration, driverSuffix string) *AuthService {
	return &AuthService{
		userRepo:     repo,
		jwtSecret:    secret,
		jwtTTL:       ttl,
		driverSuffix: driverSuffix,
	}
}

// RoleForEmail derives the account role from the address. Driver accounts
// are recognised purely by suffix; that check is authoritative.
func (s *AuthService) RoleForEmail(email string) string {
	if strings.HasSuffix(email, s.driverSuffix) {
		return "driver"
	}
	return "customer"
}

// Register creates a new user; duplicate email is an error.
func (s *AuthService) Register(email, password, name, phone string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Email:       email,
		Password:    string(hashed),
		Name:        strings.TrimSpace(name),
		PhoneNumber: strings.TrimSpace(phone),
		Role:        s.RoleForEmail(email),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a JWT.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}

	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *AuthService) UpdateProfile(userID uint, updates map[string]any) (*entity.User, error) {
	if err := s.userRepo.Update(userID, updates); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(userID)
}
