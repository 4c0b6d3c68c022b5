package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/repositories"
)

// CreateSampleData populates the catalog with the sample writers,
// courses, packages and bookings the platform ships with. Every insert
// is get-or-create on a natural key, so reruns are no-ops.
func CreateSampleData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)
	s := &seeder{db: dbPool, repos: repos, lgr: lgr}

	lgr.Info().Msg("Checking/Creating sample data...")

	writer1, err := s.writer(ctx, &models.Writer{
		Name:         "د. سارة الهاشمي",
		Bio:          "روائية ومدرّبة كتابة إبداعية بخبرة أكثر من 10 سنوات.",
		Specialty:    "الكتابة الإبداعية",
		Email:        "sara@ketab.com",
		Experience:   "10+ سنوات",
		Achievements: "حاصلة على جوائز أدبية ومؤلفة لعدة أعمال روائية.",
		Active:       true,
	})
	if err != nil {
		return err
	}
	writer2, err := s.writer(ctx, &models.Writer{
		Name:         "أ. خالد الشمري",
		Bio:          "مدرّب كتابة وتقنيات سرد، وخبير في بناء الحبكة.",
		Specialty:    "تقنيات السرد",
		Email:        "khaled@ketab.com",
		Experience:   "8 سنوات",
		Achievements: "أدار ورش كتابة متعددة في السعودية والخليج.",
		Active:       true,
	})
	if err != nil {
		return err
	}

	zero, price2 := 0.0, 149.0
	course1, err := s.course(ctx, &models.Course{
		Title:        "أساسيات الكتابة الإبداعية",
		Description:  "ابدأ من الصفر وتعلّم بناء الفكرة والشخصيات والحبكة.",
		Instructor:   writer1.Name,
		Type:         models.CourseFree,
		Price:        &zero,
		Requirements: "لا توجد متطلبات مسبقة.",
		Category:     "إبداعي",
		Duration:     "3 ساعات",
		Level:        models.LevelBeginner,
		Published:    true,
	})
	if err != nil {
		return err
	}
	course2, err := s.course(ctx, &models.Course{
		Title:        "تقنيات السرد وبناء الحبكة",
		Description:  "كيف تبني حبكة قوية وتكتب مشاهد مؤثرة بدون ملل.",
		Instructor:   writer2.Name,
		Type:         models.CoursePaid,
		Price:        &price2,
		Requirements: "خبرة بسيطة في الكتابة.",
		Category:     "سرد",
		Duration:     "6 ساعات",
		Level:        models.LevelIntermediate,
		Published:    true,
	})
	if err != nil {
		return err
	}

	lessons := []*models.Lesson{
		{CourseID: course1.ID, Order: 1, Title: "مدخل إلى الكتابة", Description: "تعرف على أساسيات الكتابة الإبداعية.", Type: models.LessonVideo, VideoURL: "https://example.com/video1", Content: "محتوى تمهيدي.", IsFree: true, Duration: "20 دقيقة"},
		{CourseID: course1.ID, Order: 2, Title: "بناء الفكرة", Description: "كيف تولّد أفكاراً لقصصك.", Type: models.LessonExercise, Content: "تمرين عملي لتوليد الأفكار.", Duration: "25 دقيقة"},
		{CourseID: course2.ID, Order: 1, Title: "الحبكة وأنواعها", Description: "مقدمة في أنواع الحبكات.", Type: models.LessonVideo, VideoURL: "https://example.com/video2", Content: "شرح نظري.", Duration: "30 دقيقة"},
		{CourseID: course2.ID, Order: 2, Title: "المشهد المؤثر", Description: "تقنيات كتابة المشاهد المؤثرة.", Type: models.LessonLive, Content: "جلسة مباشرة.", Duration: "45 دقيقة"},
	}
	for _, lesson := range lessons {
		if err := s.lesson(ctx, lesson); err != nil {
			return err
		}
	}

	package1, err := s.mentorshipPackage(ctx, &models.MentorshipPackage{
		WriterID:        writer1.ID,
		WriterName:      writer1.Name,
		Name:            "جلسة واحدة",
		SessionsCount:   1,
		Price:           200,
		Description:     "جلسة إرشاد فردية لمدة ساعة.",
		SessionDuration: "60 دقيقة",
		Benefits:        []string{"مراجعة نص", "توجيهات عملية"},
	})
	if err != nil {
		return err
	}
	package2, err := s.mentorshipPackage(ctx, &models.MentorshipPackage{
		WriterID:        writer2.ID,
		WriterName:      writer2.Name,
		Name:            "3 جلسات",
		SessionsCount:   3,
		Price:           500,
		Description:     "ثلاث جلسات إرشادية مكثفة.",
		SessionDuration: "60 دقيقة",
		Benefits:        []string{"متابعة مستمرة", "خطة تطوير"},
	})
	if err != nil {
		return err
	}

	today := futureDate(0)
	expiry := futureDate(30)
	if err := s.subscription(ctx, &models.Subscription{
		UserEmail:     "student@example.com",
		CourseID:      course1.ID,
		CourseTitle:   course1.Title,
		PaymentStatus: models.PaymentCompleted,
		PaymentAmount: &zero,
		PaymentDate:   &today,
		ExpiryDate:    &expiry,
	}); err != nil {
		return err
	}
	if err := s.subscription(ctx, &models.Subscription{
		UserEmail:     "student2@example.com",
		CourseID:      course2.ID,
		CourseTitle:   course2.Title,
		PaymentStatus: models.PaymentCompleted,
		PaymentAmount: &price2,
		PaymentDate:   &today,
		ExpiryDate:    &expiry,
	}); err != nil {
		return err
	}

	sessionDate1 := time.Now().UTC().AddDate(0, 0, 2)
	sessionDate2 := time.Now().UTC().AddDate(0, 0, 4)
	booking1, err := s.booking(ctx, &models.Booking{
		UserEmail:     "student@example.com",
		UserName:      "فهد أحمد",
		WriterID:      writer1.ID,
		WriterName:    writer1.Name,
		WriterEmail:   writer1.Email,
		PackageID:     package1.ID,
		SessionsCount: 1,
		SessionDate:   &sessionDate1,
		Status:        models.BookingConfirmed,
		PaymentStatus: models.PaymentCompleted,
		Notes:         "يرجى مراجعة الفصل الأول.",
	})
	if err != nil {
		return err
	}
	booking2, err := s.booking(ctx, &models.Booking{
		UserEmail:     "student2@example.com",
		UserName:      "نورة علي",
		WriterID:      writer2.ID,
		WriterName:    writer2.Name,
		WriterEmail:   writer2.Email,
		PackageID:     package2.ID,
		SessionsCount: 3,
		SessionDate:   &sessionDate2,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		Notes:         "تحديد موعد مناسب للجلسات.",
	})
	if err != nil {
		return err
	}

	slots := []*models.AvailableSlot{
		{WriterID: writer1.ID, Date: futureDate(5), Time: "18:00", IsAvailable: true},
		{WriterID: writer1.ID, Date: futureDate(6), Time: "20:00", IsAvailable: false, BookingID: &booking1.ID},
		{WriterID: writer2.ID, Date: futureDate(7), Time: "17:00", IsAvailable: true},
		{WriterID: writer2.ID, Date: futureDate(8), Time: "19:00", IsAvailable: false, BookingID: &booking2.ID},
	}
	for _, slot := range slots {
		if err := s.slot(ctx, slot); err != nil {
			return err
		}
	}

	lgr.Info().Msg("Sample data ready")
	return nil
}

// futureDate returns today's date shifted by the given number of days.
func futureDate(days int) models.Date {
	t := time.Now().UTC().AddDate(0, 0, days)
	return models.NewDate(t.Year(), t.Month(), t.Day())
}

type seeder struct {
	db    *pgxpool.Pool
	repos *repositories.Repositories
	lgr   zerolog.Logger
}

// lookupID resolves a natural key to an existing row id.
func (s *seeder) lookupID(ctx context.Context, query string, args ...interface{}) (int64, bool, error) {
	var id int64
	err := s.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("seed lookup failed: %w", err)
	}
	return id, true, nil
}

func (s *seeder) writer(ctx context.Context, writer *models.Writer) (*models.Writer, error) {
	id, found, err := s.lookupID(ctx, `SELECT id FROM writers WHERE name = $1`, writer.Name)
	if err != nil {
		return nil, err
	}
	if !found {
		if id, err = s.repos.WriterRepository.Create(ctx, writer); err != nil {
			return nil, err
		}
	}
	writer.ID = id
	return writer, nil
}

func (s *seeder) course(ctx context.Context, course *models.Course) (*models.Course, error) {
	id, found, err := s.lookupID(ctx, `SELECT id FROM courses WHERE title = $1`, course.Title)
	if err != nil {
		return nil, err
	}
	if !found {
		if id, err = s.repos.CourseRepository.Create(ctx, course); err != nil {
			return nil, err
		}
	}
	course.ID = id
	return course, nil
}

func (s *seeder) lesson(ctx context.Context, lesson *models.Lesson) error {
	_, found, err := s.lookupID(ctx, `SELECT id FROM lessons WHERE course_id = $1 AND position = $2`,
		lesson.CourseID, lesson.Order)
	if err != nil || found {
		return err
	}
	_, err = s.repos.LessonRepository.Create(ctx, lesson)
	return err
}

func (s *seeder) mentorshipPackage(ctx context.Context, pkg *models.MentorshipPackage) (*models.MentorshipPackage, error) {
	id, found, err := s.lookupID(ctx, `SELECT id FROM mentorship_packages WHERE writer_id = $1 AND name = $2`,
		pkg.WriterID, pkg.Name)
	if err != nil {
		return nil, err
	}
	if !found {
		if id, err = s.repos.PackageRepository.Create(ctx, pkg); err != nil {
			return nil, err
		}
	}
	pkg.ID = id
	return pkg, nil
}

func (s *seeder) subscription(ctx context.Context, sub *models.Subscription) error {
	_, found, err := s.lookupID(ctx, `SELECT id FROM subscriptions WHERE user_email = $1 AND course_id = $2`,
		sub.UserEmail, sub.CourseID)
	if err != nil || found {
		return err
	}
	_, err = s.repos.SubscriptionRepository.Create(ctx, sub)
	return err
}

func (s *seeder) booking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	id, found, err := s.lookupID(ctx, `SELECT id FROM bookings WHERE user_email = $1 AND writer_id = $2 AND package_id = $3`,
		booking.UserEmail, booking.WriterID, booking.PackageID)
	if err != nil {
		return nil, err
	}
	if !found {
		if id, err = s.repos.BookingRepository.Create(ctx, booking); err != nil {
			return nil, err
		}
	}
	booking.ID = id
	return booking, nil
}

func (s *seeder) slot(ctx context.Context, slot *models.AvailableSlot) error {
	_, found, err := s.lookupID(ctx, `SELECT id FROM available_slots WHERE writer_id = $1 AND slot_date = $2 AND slot_time = $3`,
		slot.WriterID, slot.Date.Time, slot.Time)
	if err != nil || found {
		return err
	}
	_, err = s.repos.SlotRepository.Create(ctx, slot)
	return err
}
