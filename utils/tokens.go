package utils

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
)

var bgContext = context.Background()

// RefreshTokenInput is the JSON body of /api/refresh.
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

// AccessToken is the claims payload of the admin access token.
type AccessToken struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

func (t *AccessToken) IsAdmin() bool {
	return t.Role == "admin" || t.Role == "super_admin"
}

// CreateTokenPair signs an access/refresh pair for the admin user and
// whitelists the refresh token in Redis so it can be revoked.
func CreateTokenPair(id uint) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 24*time.Hour)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), 30*24*time.Hour)

	adminID := strconv.FormatUint(uint64(id), 10)
	refreshClaims := jwt.Claims{Subject: adminID}

	role := "admin"
	var admin models.AdminUser
	if err := storage.DB.Select("id, role").First(&admin, id).Error; err == nil && admin.Role != "" {
		role = admin.Role
	}

	accessToken, err := accessTokenSigner.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	storage.Redis.Set(bgContext, string(refreshToken), "true", 30*24*time.Hour+5*time.Minute)

	return &tokenPair, nil
}

// RefreshToken rotates a verified refresh token: the old token is consumed
// from the Redis whitelist and a fresh pair is issued.
func RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)
	validToken, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()

	if tokenErr != nil {
		CreateNotFound(ctx)
		return
	}

	if validToken != "true" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	storage.Redis.Del(bgContext, tokenStr)
	adminID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	tokenPair, tokenPairErr := CreateTokenPair(uint(adminID))
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
