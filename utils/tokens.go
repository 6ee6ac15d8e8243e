package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"eventbuddy-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

const (
	// Access token issued at registration outlives the login one.
	RegisterTokenTTL = 7 * 24 * time.Hour
	LoginTokenTTL    = 24 * time.Hour

	refreshTokenTTL = 90 * 24 * time.Hour

	SessionCookieName = "eventbuddy_session"
)

type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SignAccessToken signs a standalone access token with no refresh
// counterpart. The env-configured admin maps to no account row, so nothing
// could redeem a refresh token for it.
func SignAccessToken(id uint, role string, ttl time.Duration) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, []byte(Cfg.AccessTokenSecret), ttl)
	token, err := signer.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// CreateTokenPair signs an access token carrying the account id and role, plus
// a refresh token parked in Redis so it can be revoked.
func CreateTokenPair(id uint, role string, accessTTL time.Duration) (*jwt.TokenPair, error) {
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, []byte(Cfg.RefreshTokenSecret), refreshTokenTTL)

	accessToken, err := SignAccessToken(id, role, accessTTL)
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.Claims{Subject: strconv.FormatUint(uint64(id), 10)}
	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = []byte(accessToken)
	tokenPair.RefreshToken = refreshToken

	if storage.Redis != nil {
		storage.Redis.Set(bgContext, string(refreshToken), "true", refreshTokenTTL+5*time.Minute)
	}

	return &tokenPair, nil
}

// RefreshToken rotates a refresh token: the presented token must still be in
// the Redis allow-list, and is burned before the new pair is issued.
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

	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	tokenPair, tokenPairErr := CreateTokenPair(uint(userID), "user", LoginTokenTTL)
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":      true,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

// SetSessionCookie delivers the access token as an HTTP-only cookie alongside
// the bearer response.
func SetSessionCookie(ctx iris.Context, token string, ttl time.Duration) {
	ctx.SetCookieKV(SessionCookieName, token,
		iris.CookieExpires(ttl),
		iris.CookieHTTPOnly(true),
		iris.CookiePath("/"),
		iris.CookieSameSite(iris.SameSiteStrictMode),
	)
}

func ClearSessionCookie(ctx iris.Context) {
	ctx.RemoveCookie(SessionCookieName, iris.CookiePath("/"))
}

// GenerateOTP returns a zero-padded numeric ticket of n digits.
func GenerateOTP(n int) string {
	max := big.NewInt(1)
	for i := 0; i < n; i++ {
		max.Mul(max, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%0*d", n, v)
}
