package models

// Role defines the account role type
type Role string

const (
	RoleInstructor Role = "instructor"
	RoleWriter     Role = "writer"
	RoleStudent    Role = "student"
	RoleManager    Role = "manager"
)

// ValidRole reports whether r is one of the allowed account roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleInstructor, RoleWriter, RoleStudent, RoleManager:
		return true
	}
	return false
}

// CourseType classifies how a course is monetized
type CourseType string

const (
	CourseFree  CourseType = "free"
	CoursePaid  CourseType = "paid"
	CourseMixed CourseType = "mixed"
)

// CourseLevel is the difficulty level of a course
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// LessonType classifies lesson delivery
type LessonType string

const (
	LessonVideo    LessonType = "video"
	LessonExercise LessonType = "exercise"
	LessonLive     LessonType = "live"
)

// PaymentStatus tracks payment state on subscriptions and bookings
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// BookingStatus tracks the lifecycle of a mentorship booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)
