package routes

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

const googleJWKSEndpoint = "https://www.googleapis.com/oauth2/v3/certs"

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminGoogleLoginRequest struct {
	IdentityToken string `json:"identityToken" validate:"required"`
}

func returnAdminWithTokens(admin *models.AdminUser, ctx iris.Context) {
	tokenPair, err := utils.CreateTokenPair(admin.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	now := time.Now()
	storage.DB.Model(admin).Update("last_login_at", now)

	ctx.JSON(iris.Map{
		"success":      true,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
		"data": iris.Map{
			"id":        admin.ID,
			"firstName": admin.FirstName,
			"lastName":  admin.LastName,
			"email":     admin.Email,
			"role":      admin.Role,
		},
	})
}

// AdminLogin authenticates an admin with email and password.
func AdminLogin(ctx iris.Context) {
	var input AdminLoginRequest
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Invalid email or password."

	var admin models.AdminUser
	if err := storage.DB.Where("email = ?", strings.ToLower(input.Email)).First(&admin).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if admin.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnAdminWithTokens(&admin, ctx)
}

// AdminGoogleLogin verifies a Google ID token against Google's JWKS and
// signs in the matching admin account. Accounts are invite-only; an unknown
// email is rejected rather than provisioned.
func AdminGoogleLogin(ctx iris.Context) {
	var input AdminGoogleLoginRequest
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	res, httpErr := http.Get(googleJWKSEndpoint)
	if httpErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	jwks, jwksErr := keyfunc.NewJSON(body)
	if jwksErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Keyfunc selects the signing key by kid and returns its public key.
	token, tokenErr := jwt.Parse(input.IdentityToken, jwks.Keyfunc)
	if tokenErr != nil || !token.Valid {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid identity token.", ctx)
		return
	}

	claims := token.Claims.(jwt.MapClaims)

	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" {
		if aud := fmt.Sprint(claims["aud"]); aud != clientID {
			utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid identity token.", ctx)
			return
		}
	}

	email := strings.ToLower(fmt.Sprint(claims["email"]))
	if email == "" || email == "<nil>" {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid identity token.", ctx)
		return
	}

	var admin models.AdminUser
	if err := storage.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "No admin account for this email.", ctx)
		return
	}

	returnAdminWithTokens(&admin, ctx)
}
