package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/ericogr/pet-arena/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 30 * 24 * time.Hour

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// issueSessionToken signs a session token for the account UUID.
func (h *ArenaHandler) issueSessionToken(accountUUID, name string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountUUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.sessionSecret)
}

func (h *ArenaHandler) parseSessionToken(token string) (*sessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return h.sessionSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

// AuthRequired validates the bearer token and injects identity into the
// request context.
func (h *ArenaHandler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := h.parseSessionToken(strings.TrimPrefix(header, constants.BearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(constants.CtxAccountUUID, claims.Subject)
		c.Set(constants.CtxAccountName, claims.Name)
		c.Next()
	}
}

// AdminRequired gates governance endpoints behind the admin token.
func (h *ArenaHandler) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.adminToken == "" || c.GetHeader(constants.HeaderAdminToken) != h.adminToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrAdminOnly})
			return
		}
		c.Next()
	}
}

func accountUUIDFrom(c *gin.Context) string {
	v, _ := c.Get(constants.CtxAccountUUID)
	s, _ := v.(string)
	return s
}

type registerRequest struct {
	Name string `json:"name" binding:"required,max=32"`
}

// Register creates an account with the starting balance and returns a
// session token.
func (h *ArenaHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	acct, err := h.arena.RegisterAccount(req.Name, h.startingBalance)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	token, err := h.issueSessionToken(acct.UUID, acct.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": acct, "token": token})
}
