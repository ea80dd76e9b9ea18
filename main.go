package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/routes"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/services"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()
	services.Notifications.StartRedisBridge(context.Background())

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the public site and the admin dashboard
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

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	// EventSource cannot set an Authorization header, so the SSE stream
	// also accepts the access token as a query parameter.
	accessTokenVerifier.Extractors = append(accessTokenVerifier.Extractors, func(ctx iris.Context) string {
		return ctx.URLParam("token")
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
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

	tours := app.Party("/api/tours")
	{
		tours.Get("/", routes.GetTours)
		tours.Get("/{slug:string}", routes.GetTourBySlug)
	}

	app.Get("/api/locations/{key:string}", routes.GetLocationTours)
	app.Get("/api/testimonials", routes.GetTestimonials)

	reviews := app.Party("/api/reviews")
	{
		reviews.Get("/", routes.GetReviews)
		reviews.Post("/", routes.CreateReview)
	}

	app.Post("/api/bookings", routes.CreateBooking)

	auth := app.Party("/api/auth")
	{
		auth.Post("/login", routes.AdminLogin)
		auth.Post("/google", routes.AdminGoogleLogin)
	}
	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/tours", routes.AdminListTours)
		admin.Post("/tours", routes.AdminCreateTour)
		admin.Get("/tours/{id:uint}", routes.AdminGetTour)
		admin.Put("/tours/{id:uint}", routes.AdminUpdateTour)
		admin.Delete("/tours/{id:uint}", routes.AdminDeleteTour)
		admin.Post("/tours/{id:uint}/images", routes.AdminUploadTourImage)
		admin.Delete("/tours/{id:uint}/images", routes.AdminDeleteTourImage)

		admin.Get("/bookings", routes.AdminListBookings)
		admin.Get("/bookings/{id:uint}", routes.AdminGetBooking)
		admin.Patch("/bookings/{id:uint}/status", routes.AdminUpdateBookingStatus)
		admin.Delete("/bookings/{id:uint}", routes.AdminDeleteBooking)

		admin.Get("/reviews", routes.AdminListReviews)
		admin.Patch("/reviews/{id:uint}/approval", routes.AdminUpdateReviewApproval)
		admin.Delete("/reviews/{id:uint}", routes.AdminDeleteReview)

		admin.Get("/testimonials", routes.AdminListTestimonials)
		admin.Post("/testimonials", routes.AdminCreateTestimonial)
		admin.Put("/testimonials/{id:uint}", routes.AdminUpdateTestimonial)
		admin.Post("/testimonials/reorder", routes.AdminReorderTestimonials)
		admin.Delete("/testimonials/{id:uint}", routes.AdminDeleteTestimonial)

		admin.Get("/users", routes.AdminListUsers)
		admin.Post("/users", routes.AdminCreateUser)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, routes.AdminChangeUserRole)
		admin.Delete("/users/{id:uint}", routes.AdminDeleteUser)

		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)

		admin.Post("/export", routes.AdminCreateExport)
		admin.Get("/export/{id:string}", routes.AdminGetExport)

		admin.Get("/notifications", routes.AdminListNotifications)
		admin.Post("/notifications/read", routes.AdminMarkNotificationsRead)
		admin.Get("/notifications/stream", routes.StreamNotifications)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
