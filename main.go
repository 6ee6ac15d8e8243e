package main

import (
	"fmt"
	"log"

	"eventbuddy-server/routes"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	utils.LoadConfig()

	// Initialize services
	storage.InitializeDB(utils.Cfg.DBConnectionString)
	storage.InitializeRedis(utils.Cfg.RedisURL, utils.Cfg.RedisPassword)
	storage.InitializeCloudinary(
		utils.Cfg.CloudinaryCloudName,
		utils.Cfg.CloudinaryAPIKey,
		utils.Cfg.CloudinaryAPISecret,
		utils.Cfg.CloudinaryFolder,
	)

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(utils.Cfg.AccessTokenSecret))
	accessTokenVerifier.WithDefaultBlocklist()
	// Bearer header first, session cookie as fallback for browser clients.
	accessTokenVerifier.Extractors = append(accessTokenVerifier.Extractors, func(ctx iris.Context) string {
		return ctx.GetCookie(utils.SessionCookieName)
	})
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(utils.Cfg.RefreshTokenSecret))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Routes
	auth := app.Party("/api/auth")
	{
		auth.Post("/register", routes.Register)
		auth.Post("/login", routes.Login)
		auth.Post("/logout", routes.Logout)
		auth.Post("/admin-login", routes.AdminLogin)
		auth.Get("/is-auth", accessTokenVerifierMiddleware, routes.IsAuthenticated)
		auth.Post("/send-reset-otp", routes.SendResetOTP)
		auth.Post("/reset-password", routes.ResetPassword)
	}

	vendors := app.Party("/api/vendors")
	{
		vendors.Get("/", routes.ListVendors)
		vendors.Get("/dashboard", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.VendorDashboard)
		vendors.Get("/{id:uint}", routes.GetVendorByID)
		vendors.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateVendorProfile)
		vendors.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateVendorProfile)
		vendors.Post("/{id:uint}/image", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UploadVendorImage)
		vendors.Post("/{id:uint}/portfolio", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UploadPortfolioImages)
		vendors.Delete("/{id:uint}/portfolio", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.RemovePortfolioImage)
	}

	events := app.Party("/api/events", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		events.Post("/", routes.CreateEvent)
		events.Get("/", routes.ListUserEvents)
		events.Get("/{id:uint}", routes.GetEventByID)
		events.Patch("/{id:uint}", routes.UpdateEvent)
		events.Delete("/{id:uint}", routes.DeleteEvent)
	}

	guests := app.Party("/api/guests/{eventId:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		guests.Get("/", routes.ListGuests)
		guests.Post("/", routes.AddGuest)
		guests.Patch("/{guestId:uint}", routes.UpdateGuest)
		guests.Delete("/{guestId:uint}", routes.RemoveGuest)
	}

	bookings := app.Party("/api/bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		bookings.Post("/", routes.CreateBooking)
		bookings.Get("/", routes.ListUserBookings)
		bookings.Get("/vendor", routes.ListVendorBookings)
		bookings.Patch("/{id:uint}/status", routes.UpdateBookingStatus)
	}

	reviews := app.Party("/api/reviews")
	{
		reviews.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.SubmitReview)
		reviews.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.EditReview)
		reviews.Get("/bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ListReviewableBookings)
		reviews.Get("/vendor/{vendorId:uint}", routes.ListVendorReviews)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/analytics", routes.AdminAnalytics)
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/vendors", routes.AdminListVendors)
		admin.Patch("/users/{id:uint}/status", routes.AdminToggleUserStatus)
		admin.Patch("/vendors/{id:uint}/verify", routes.AdminToggleVendorVerification)
		admin.Get("/activity", routes.AdminActivity)
	}

	analytics := app.Party("/api/analytics", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		analytics.Get("/user", routes.UserAnalytics)
		analytics.Get("/vendor", routes.VendorAnalytics)
	}

	chat := app.Party("/api/chat")
	{
		chat.Post("/message", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.PostChatMessage)
		chat.Get("/suggestions", routes.GetQuickSuggestions)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	addr := "0.0.0.0:" + utils.Cfg.Port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
