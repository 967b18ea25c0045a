// Package auth owns user accounts: registration, credentials, JWT issuance,
// refresh tokens and the addresses embedded in the user document.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/j-ir11/videojuegos/internal/models"
	"github.com/j-ir11/videojuegos/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

const queryTimeout = 5 * time.Second

type Service struct {
	db         *mongo.Database
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(db *mongo.Database, jwtSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{db: db, jwtSecret: jwtSecret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Tokens is the pair handed to the client after sign-in or refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// SignUpInput carries the raw registration form fields.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
}

// SignUp validates the profile fields, hashes the password and creates the
// account. Field-level failures come back in the Fields map; ErrEmailTaken
// signals a duplicate.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (models.User, Tokens, validation.Fields, error) {
	fields := validation.Fields{}

	email := validation.SanitizeEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if !validation.Email(email) {
		fields.Add("email", "Formato inválido. Ejemplo: usuario@correo.com")
	}

	name := validation.TruncateRunes(strings.TrimSpace(in.Name), 100)
	if !validation.PersonName(name) || len([]rune(name)) < 2 {
		fields.Add("name", "El nombre debe tener al menos 2 letras.")
	}

	password := validation.TruncateRunes(in.Password, 255)
	if len(password) < 8 {
		fields.Add("password", "La contraseña debe tener al menos 8 caracteres.")
	}

	if !fields.OK() {
		return models.User{}, Tokens{}, fields, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := s.db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return models.User{}, Tokens{}, nil, err
	}
	if count > 0 {
		return models.User{}, Tokens{}, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, Tokens{}, nil, err
	}

	now := time.Now()
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Addresses:    []models.Address{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := s.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		return models.User{}, Tokens{}, nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return models.User{}, Tokens{}, nil, err
	}

	log.Println("[AUTH] [INFO] user registered:", email)
	return user, tokens, nil, nil
}

// SignIn checks the credentials and issues a token pair.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.User, Tokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return models.User{}, Tokens{}, ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, Tokens{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, Tokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, Tokens{}, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return models.User{}, Tokens{}, err
	}

	log.Println("[AUTH] [INFO] user login succeeded:", user.Email)
	return user, tokens, nil
}

// Refresh rotates a valid refresh token into a new pair, revoking the old one.
func (s *Service) Refresh(ctx context.Context, plainRefresh string) (models.User, Tokens, error) {
	plain := strings.TrimSpace(plainRefresh)
	if plain == "" {
		return models.User{}, Tokens{}, ErrInvalidRefresh
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var token models.RefreshToken
	err := s.db.Collection("refresh_tokens").FindOne(ctx, bson.M{
		"tokenHash": hashToken(plain),
		"revoked":   false,
	}).Decode(&token)
	if err != nil {
		return models.User{}, Tokens{}, ErrInvalidRefresh
	}

	if time.Now().After(token.ExpiresAt) {
		_, _ = s.db.Collection("refresh_tokens").UpdateByID(ctx, token.ID,
			bson.M{"$set": bson.M{"revoked": true}})
		return models.User{}, Tokens{}, ErrInvalidRefresh
	}

	user, err := s.GetUser(ctx, token.UserID)
	if err != nil {
		return models.User{}, Tokens{}, ErrInvalidRefresh
	}

	tokens, refreshID, err := s.issueTokensWithID(ctx, user)
	if err != nil {
		return models.User{}, Tokens{}, err
	}

	_, _ = s.db.Collection("refresh_tokens").UpdateByID(ctx, token.ID, bson.M{
		"$set": bson.M{
			"revoked":         true,
			"replacedByToken": refreshID,
		},
	})
	return user, tokens, nil
}

// SignOut revokes the refresh token; the access token simply expires.
func (s *Service) SignOut(ctx context.Context, plainRefresh string) error {
	plain := strings.TrimSpace(plainRefresh)
	if plain == "" {
		return ErrInvalidRefresh
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.Collection("refresh_tokens").UpdateOne(ctx, bson.M{
		"tokenHash": hashToken(plain),
		"revoked":   false,
	}, bson.M{"$set": bson.M{"revoked": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInvalidRefresh
	}
	return nil
}

// GetUser resolves a user account by id.
func (s *Service) GetUser(ctx context.Context, userID primitive.ObjectID) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ListAddresses returns the user's saved addresses.
func (s *Service) ListAddresses(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Addresses, nil
}

// CreateAddress appends a new address to the user document and returns it
// with its assigned id. Validation happens at the checkout layer; this is
// plain persistence.
func (s *Service) CreateAddress(ctx context.Context, userID primitive.ObjectID, address models.Address) (models.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	address.ID = uuid.NewString()
	_, err := s.db.Collection("users").UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"addresses": address},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return models.Address{}, err
	}

	log.Println("[ADDRESS] [INFO] address created:", address.ID)
	return address, nil
}

func (s *Service) issueTokens(ctx context.Context, user models.User) (Tokens, error) {
	tokens, _, err := s.issueTokensWithID(ctx, user)
	return tokens, err
}

func (s *Service) issueTokensWithID(ctx context.Context, user models.User) (Tokens, primitive.ObjectID, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"exp":    now.Add(s.accessTTL).Unix(),
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return Tokens{}, primitive.NilObjectID, err
	}

	plainRefresh, err := generateRefreshString()
	if err != nil {
		return Tokens{}, primitive.NilObjectID, err
	}

	refresh := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(plainRefresh),
		ExpiresAt: now.Add(s.refreshTTL),
		Revoked:   false,
		CreatedAt: now,
	}

	res, err := s.db.Collection("refresh_tokens").InsertOne(ctx, refresh)
	if err != nil {
		return Tokens{}, primitive.NilObjectID, err
	}
	refreshID, _ := res.InsertedID.(primitive.ObjectID)

	return Tokens{
		AccessToken:  accessToken,
		RefreshToken: plainRefresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, refreshID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateRefreshString() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
