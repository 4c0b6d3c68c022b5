package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samialh/ketab/internal/app/controllers"
	"github.com/samialh/ketab/internal/middleware"
)

// Controllers bundles the handlers the router mounts.
type Controllers struct {
	Health       *controllers.HealthController
	Auth         *controllers.AuthController
	Course       *controllers.CourseController
	Lesson       *controllers.LessonController
	Subscription *controllers.SubscriptionController
	Writer       *controllers.WriterController
	Package      *controllers.PackageController
	Booking      *controllers.BookingController
	Slot         *controllers.SlotController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *Controllers,
	session *middleware.SessionMiddleware,
	cache gin.HandlerFunc,
) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(session.SessionAuth())

	router.GET("/health/", ctrl.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := router.Group("/auth")
	{
		auth.GET("/csrf/", ctrl.Auth.CSRF)
		auth.POST("/login/", ctrl.Auth.Login)
		auth.POST("/register/", ctrl.Auth.Register)
		auth.POST("/logout/", ctrl.Auth.Logout)
		auth.GET("/me/", ctrl.Auth.Me)
	}

	courses := router.Group("/courses")
	{
		courses.GET("", cache, ctrl.Course.ListCourses)
		courses.GET("/:id", ctrl.Course.GetCourse)
		courses.POST("", ctrl.Course.CreateCourse)
		courses.PUT("/:id", ctrl.Course.ReplaceCourse)
		courses.PATCH("/:id", ctrl.Course.PatchCourse)
		courses.DELETE("/:id", ctrl.Course.DeleteCourse)
	}

	lessons := router.Group("/lessons")
	{
		lessons.GET("", cache, ctrl.Lesson.ListLessons)
		lessons.GET("/:id", ctrl.Lesson.GetLesson)
		lessons.POST("", ctrl.Lesson.CreateLesson)
		lessons.PUT("/:id", ctrl.Lesson.ReplaceLesson)
		lessons.PATCH("/:id", ctrl.Lesson.PatchLesson)
		lessons.DELETE("/:id", ctrl.Lesson.DeleteLesson)
	}

	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.GET("", ctrl.Subscription.ListSubscriptions)
		subscriptions.GET("/:id", ctrl.Subscription.GetSubscription)
		subscriptions.POST("", ctrl.Subscription.CreateSubscription)
		subscriptions.PUT("/:id", ctrl.Subscription.ReplaceSubscription)
		subscriptions.PATCH("/:id", ctrl.Subscription.PatchSubscription)
		subscriptions.DELETE("/:id", ctrl.Subscription.DeleteSubscription)
	}

	writers := router.Group("/writers")
	{
		writers.GET("", cache, ctrl.Writer.ListWriters)
		writers.GET("/:id", ctrl.Writer.GetWriter)
		writers.POST("", ctrl.Writer.CreateWriter)
		writers.PUT("/:id", ctrl.Writer.ReplaceWriter)
		writers.PATCH("/:id", ctrl.Writer.PatchWriter)
		writers.DELETE("/:id", ctrl.Writer.DeleteWriter)
	}

	packages := router.Group("/mentorship-packages")
	{
		packages.GET("", cache, ctrl.Package.ListPackages)
		packages.GET("/:id", ctrl.Package.GetPackage)
		packages.POST("", ctrl.Package.CreatePackage)
		packages.PUT("/:id", ctrl.Package.ReplacePackage)
		packages.PATCH("/:id", ctrl.Package.PatchPackage)
		packages.DELETE("/:id", ctrl.Package.DeletePackage)
	}

	bookings := router.Group("/bookings")
	{
		bookings.GET("", ctrl.Booking.ListBookings)
		bookings.GET("/:id", ctrl.Booking.GetBooking)
		bookings.POST("", ctrl.Booking.CreateBooking)
		bookings.PUT("/:id", ctrl.Booking.ReplaceBooking)
		bookings.PATCH("/:id", ctrl.Booking.PatchBooking)
		bookings.DELETE("/:id", ctrl.Booking.DeleteBooking)
	}

	slots := router.Group("/available-slots")
	{
		slots.GET("", ctrl.Slot.ListSlots)
		slots.GET("/:id", ctrl.Slot.GetSlot)
		slots.POST("", ctrl.Slot.CreateSlot)
		slots.PUT("/:id", ctrl.Slot.ReplaceSlot)
		slots.PATCH("/:id", ctrl.Slot.PatchSlot)
		slots.DELETE("/:id", ctrl.Slot.DeleteSlot)
	}
}
