package routes

import (
	"errors"
	"strings"
	"time"

	"eventbuddy-server/models"
	"eventbuddy-server/services"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser = models.User{
		Name:     userInput.Name,
		Email:    strings.ToLower(userInput.Email),
		Password: hashedPassword,
		IsVendor: userInput.IsVendor,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		// Unique index on email closes the check-then-insert window.
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	// Best-effort welcome mail; registration has already committed.
	go services.NewNotificationService().SendWelcome(newUser.ID, newUser.Name)

	returnUser(newUser, utils.RegisterTokenTTL, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusNotFound, "Not Found", "No account found with this email.", ctx)
		return
	}

	if existingUser.IsActive != nil && !*existingUser.IsActive {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "This account has been deactivated.", ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid email or password.", ctx)
		return
	}

	returnUser(existingUser, utils.LoginTokenTTL, ctx)
}

func Logout(ctx iris.Context) {
	utils.ClearSessionCookie(ctx)
	ctx.JSON(iris.Map{"success": true, "message": "Logged out."})
}

// AdminLogin compares against the configured administrator credentials; admins
// are not stored accounts.
func AdminLogin(ctx iris.Context) {
	var input LoginUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if utils.Cfg.AdminEmail == "" ||
		!strings.EqualFold(input.Email, utils.Cfg.AdminEmail) ||
		input.Password != utils.Cfg.AdminPassword {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid admin credentials.", ctx)
		return
	}

	// No refresh token: the env admin maps to no account row, so a rotated
	// pair would come back with a user role and id nobody owns.
	accessToken, tokenErr := utils.SignAccessToken(0, "admin", utils.LoginTokenTTL)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.SetSessionCookie(ctx, accessToken, utils.LoginTokenTTL)
	ctx.JSON(iris.Map{
		"success":     true,
		"accessToken": accessToken,
		"role":        "admin",
	})
}

// IsAuthenticated resolves the verified token back to an account.
func IsAuthenticated(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	if claims.Role == "admin" {
		ctx.JSON(iris.Map{"success": true, "data": iris.Map{"role": "admin"}})
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Auth Error", "Account no longer exists.", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": user})
}

// SendResetOTP issues a 6-digit ticket valid for 15 minutes. The response is
// the same whether or not the email is registered.
func SendResetOTP(ctx iris.Context) {
	var emailInput EmailInput
	if err := ctx.ReadJSON(&emailInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	response := iris.Map{"success": true, "message": "If that email is registered, a reset code has been sent."}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, emailInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !userExists {
		ctx.JSON(response)
		return
	}

	otp := utils.GenerateOTP(6)
	expiry := time.Now().Add(15 * time.Minute)
	user.ResetOTP = otp
	user.ResetOTPExpiry = &expiry
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	html := `<p>Your EventBuddy password reset code is <strong>` + otp + `</strong>.
	It expires in 15 minutes. If you did not request a reset, disregard this email.</p>`
	go utils.SendMail(user.Email, "Your password reset code", html)

	ctx.JSON(response)
}

func ResetPassword(ctx iris.Context) {
	var input ResetPasswordInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	invalid := func() {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid or expired reset code.", ctx)
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, input.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !userExists {
		invalid()
		return
	}

	if user.ResetOTP == "" || user.ResetOTP != input.OTP {
		invalid()
		return
	}
	if user.ResetOTPExpiry == nil || time.Now().After(*user.ResetOTPExpiry) {
		invalid()
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.NewPassword)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Single-use ticket: cleared together with the credential swap.
	user.Password = hashedPassword
	user.ResetOTP = ""
	user.ResetOTPExpiry = nil
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Password has been reset."})
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)
	if userExistsQuery.Error != nil {
		if errors.Is(userExistsQuery.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, userExistsQuery.Error
	}
	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func returnUser(user models.User, ttl time.Duration, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID, "user", ttl)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.SetSessionCookie(ctx, string(tokenPair.AccessToken), ttl)
	ctx.JSON(iris.Map{
		"success":      true,
		"data":         user,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	Name     string `json:"name" validate:"required,max=256"`
	Email    string `json:"email" validate:"required,max=256,email"`
	Password string `json:"password" validate:"required,min=8,max=256"`
	IsVendor bool   `json:"isVendor"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type EmailInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=256"`
}
