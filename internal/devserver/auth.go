package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"chatapp-client/internal/models"
	"chatapp-client/internal/validate"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

type userClaims struct {
	UserID string `json:"userID"`
	jwt.RegisteredClaims
}

type userIDKeyType struct{}

func (s *Server) createToken(userID string) (string, error) {
	currentTime := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, userClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(tokenLifetime)),
		},
	})

	return token.SignedString(s.secret)
}

func (s *Server) verifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &userClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*userClaims)
	if !ok {
		return "", errors.New("invalid token")
	}
	return claims.UserID, nil
}

// userVerifier authenticates the bearer token and passes the user's ID on to
// the next handler through the request context.
func (s *Server) userVerifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			s.writeError(w, http.StatusUnauthorized, "no bearer token was provided")
			return
		}

		userID, err := s.verifyToken(tokenString)
		if err != nil {
			s.sugar.Debug(err)
			s.writeError(w, http.StatusUnauthorized, "couldn't verify token")
			return
		}

		s.mutex.Lock()
		_, userFound := s.users[userID]
		s.mutex.Unlock()
		if !userFound {
			s.writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKeyType{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKeyType{}).(string)
	return userID
}

func (s *Server) authResponse(w http.ResponseWriter, user models.User) {
	accessToken, err := s.createToken(user.ID)
	if err != nil {
		s.sugar.Error(err)
		s.writeError(w, http.StatusInternalServerError, "couldn't create token")
		return
	}

	refreshToken, err := uuid.NewV7()
	if err != nil {
		s.sugar.Error(err)
		s.writeError(w, http.StatusInternalServerError, "couldn't create refresh token")
		return
	}

	s.writeJSON(w, http.StatusOK, models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken.String(),
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var login struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		s.sugar.Debug(err)
		s.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}

	s.mutex.Lock()
	creds, found := s.creds[login.Email]
	user := s.users[creds.userID]
	s.mutex.Unlock()

	if !found || bcrypt.CompareHashAndPassword(creds.hash, []byte(login.Password)) != nil {
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.authResponse(w, user)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var registration struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		s.sugar.Debug(err)
		s.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}

	if err := validate.Struct(validate.Registration{
		Username: registration.Username,
		Email:    registration.Email,
		Password: registration.Password,
	}); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := s.nextID()
	if err != nil {
		s.sugar.Error(err)
		s.writeError(w, http.StatusInternalServerError, "couldn't generate user ID")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcryptCost)
	if err != nil {
		s.sugar.Error(err)
		s.writeError(w, http.StatusInternalServerError, "couldn't hash password")
		return
	}

	user := models.User{
		ID:        userID,
		Username:  registration.Username,
		Email:     registration.Email,
		Status:    models.StatusOnline,
		CreatedAt: time.Now().UTC(),
	}

	s.mutex.Lock()
	if _, taken := s.creds[registration.Email]; taken {
		s.mutex.Unlock()
		s.writeError(w, http.StatusConflict, "email already registered")
		return
	}
	s.users[user.ID] = user
	s.creds[user.Email] = credentials{userID: user.ID, hash: hash}
	s.mutex.Unlock()

	s.authResponse(w, user)
}
