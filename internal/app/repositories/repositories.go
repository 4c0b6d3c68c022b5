package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances behind their
// interfaces so services and tests can swap implementations.
type Repositories struct {
	UserRepository         IUserRepository
	SessionRepository      ISessionRepository
	CourseRepository       ICourseRepository
	LessonRepository       ILessonRepository
	SubscriptionRepository ISubscriptionRepository
	WriterRepository       IWriterRepository
	PackageRepository      IPackageRepository
	BookingRepository      IBookingRepository
	SlotRepository         ISlotRepository
}

// NewRepositories initializes all repositories over the shared pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		SessionRepository:      NewSessionRepository(db),
		CourseRepository:       NewCourseRepository(db),
		LessonRepository:       NewLessonRepository(db),
		SubscriptionRepository: NewSubscriptionRepository(db),
		WriterRepository:       NewWriterRepository(db),
		PackageRepository:      NewPackageRepository(db),
		BookingRepository:      NewBookingRepository(db),
		SlotRepository:         NewSlotRepository(db),
	}
}
