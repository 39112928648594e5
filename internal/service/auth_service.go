package service

import (
	"resilience_backend/internal/config"
	"resilience_backend/internal/model"
	"resilience_backend/internal/repository"
	"resilience_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// CreateUser registers an admin/editor account. Respondents never have
// accounts; they authenticate with assessment codes.
func (s *AuthService) CreateUser(user *model.User) error {
	existing, err := s.UserRepo.FindByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
