package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"guestlink/internal/shared/config"
	"guestlink/internal/staff"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaffNotFound      = errors.New("staff account not found")
	ErrStaffAlreadyExists = errors.New("staff account already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, staffID string, req *ChangePasswordRequest) error
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	repo   Repository
	config *config.Config
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		config: cfg,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// Check if account already exists
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrStaffAlreadyExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Set default role if not provided
	role := strings.ToUpper(req.Role)
	if !staff.IsValidRole(role) {
		role = string(staff.RoleFrontDesk)
	}

	account := &staff.Staff{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      staff.Role(role),
	}

	if req.PropertyID != "" {
		propertyID, err := uuid.Parse(req.PropertyID)
		if err != nil {
			return nil, errors.New("invalid property ID")
		}
		account.PropertyID = &propertyID
	}

	if err := s.repo.CreateStaff(ctx, account); err != nil {
		return nil, err
	}

	tokenPair, err := s.generateTokenPair(account)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Staff:        toStaffResponse(account),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	account, err := s.repo.GetStaffByEmail(ctx, req.Email)
	if err != nil {
		if err == ErrStaffNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.generateTokenPair(account)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Staff:        toStaffResponse(account),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	// Verify account still exists
	account, err := s.repo.GetStaffByID(ctx, claims.StaffID)
	if err != nil {
		return nil, ErrStaffNotFound
	}

	return s.generateTokenPair(account)
}

func (s *service) ChangePassword(ctx context.Context, staffID string, req *ChangePasswordRequest) error {
	account, err := s.repo.GetStaffByID(ctx, staffID)
	if err != nil {
		return ErrStaffNotFound
	}

	// Verify current password
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	// Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdateStaffPassword(ctx, staffID, string(hashedPassword))
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	return s.validateToken(tokenString)
}

func (s *service) generateTokenPair(account *staff.Staff) (*TokenPair, error) {
	now := time.Now()

	propertyID := ""
	if account.PropertyID != nil {
		propertyID = account.PropertyID.String()
	}

	accessClaims := JWTClaims{
		StaffID:    account.ID.String(),
		Email:      account.Email,
		Role:       string(account.Role),
		PropertyID: propertyID,
		Type:       "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.JWTExpiresIn)),
			Issuer:    "guestlink",
			Subject:   account.ID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := JWTClaims{
		StaffID:    account.ID.String(),
		Email:      account.Email,
		Role:       string(account.Role),
		PropertyID: propertyID,
		Type:       "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.RefreshExpiresIn)),
			Issuer:    "guestlink",
			Subject:   account.ID.String(),
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func toStaffResponse(account *staff.Staff) StaffResponse {
	resp := StaffResponse{
		ID:        account.ID.String(),
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Role:      string(account.Role),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	if account.PropertyID != nil {
		resp.PropertyID = account.PropertyID.String()
	}
	return resp
}
