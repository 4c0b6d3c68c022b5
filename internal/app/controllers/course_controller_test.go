package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/imagedata"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// fakeCourseService records calls and serves canned courses.
type fakeCourseService struct {
	courses     map[int64]*models.Course
	lastFilters queryfilter.Filters
	deleted     []int64
}

func newFakeCourseService(courses ...*models.Course) *fakeCourseService {
	s := &fakeCourseService{courses: map[int64]*models.Course{}}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *fakeCourseService) ListCourses(_ context.Context, filters queryfilter.Filters) ([]*models.Course, error) {
	s.lastFilters = filters
	out := []*models.Course{}
	for _, c := range s.courses {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCourseService) GetCourse(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := s.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeCourseService) CreateCourse(_ context.Context, req *dto.CreateCourseRequest, image *imagedata.Image) (*models.Course, error) {
	course := req.ToModel()
	course.ID = int64(len(s.courses) + 1)
	course.Image = image
	s.courses[course.ID] = course
	return course, nil
}

func (s *fakeCourseService) ReplaceCourse(_ context.Context, id int64, req *dto.CreateCourseRequest, image *imagedata.Image) (*models.Course, error) {
	if _, ok := s.courses[id]; !ok {
		return nil, apperrors.ErrNotFound
	}
	course := req.ToModel()
	course.ID = id
	course.Image = image
	s.courses[id] = course
	return course, nil
}

func (s *fakeCourseService) PatchCourse(_ context.Context, id int64, req *dto.UpdateCourseRequest, _ *imagedata.Image) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	return course, nil
}

func (s *fakeCourseService) DeleteCourse(_ context.Context, id int64) error {
	if _, ok := s.courses[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.courses, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func courseRouter(svc *fakeCourseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewCourseController(svc)
	router.GET("/courses", ctrl.ListCourses)
	router.GET("/courses/:id", ctrl.GetCourse)
	router.POST("/courses", ctrl.CreateCourse)
	router.PUT("/courses/:id", ctrl.ReplaceCourse)
	router.PATCH("/courses/:id", ctrl.PatchCourse)
	router.DELETE("/courses/:id", ctrl.DeleteCourse)
	return router
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.DetailResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Detail
}

func TestListCoursesAppliesFilterWhitelist(t *testing.T) {
	svc := newFakeCourseService()
	router := courseRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses?published=true&level=beginner&instructor=123&bogus=1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	want := queryfilter.Filters{"published": true, "level": "beginner", "instructor": "123"}
	if !reflect.DeepEqual(svc.lastFilters, want) {
		t.Errorf("filters = %v, want %v", svc.lastFilters, want)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty list body = %s, want []", w.Body.String())
	}
}

func TestGetCourseNonNumericIDIs404(t *testing.T) {
	router := courseRouter(newFakeCourseService())

	for _, id := range []string{"abc", "0", "-3"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/courses/"+id, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("GET /courses/%s status = %d, want 404", id, w.Code)
		}
		if detail := decodeDetail(t, w); detail != "Not found." {
			t.Errorf("detail = %q, want Not found.", detail)
		}
	}
}

func TestGetCourseMissingIs404(t *testing.T) {
	router := courseRouter(newFakeCourseService())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/42", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCreateCourseValidation(t *testing.T) {
	router := courseRouter(newFakeCourseService())

	// title and type are required
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(`{"instructor":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateCourse(t *testing.T) {
	svc := newFakeCourseService()
	router := courseRouter(svc)

	w := httptest.NewRecorder()
	body := `{"title":"Narrative craft","instructor":"Sara","type":"paid","price":149,"level":"intermediate"}`
	req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	var resp dto.CourseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == 0 || resp.Title != "Narrative craft" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !resp.Published {
		t.Error("published should default true")
	}
}

func TestCreateCourseWithoutLevel(t *testing.T) {
	svc := newFakeCourseService()
	router := courseRouter(svc)

	w := httptest.NewRecorder()
	body := `{"title":"Creative writing basics","instructor":"Sara","type":"free"}`
	req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	var resp dto.CourseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Level != "" {
		t.Errorf("level = %q, want blank when omitted", resp.Level)
	}
}

func TestDeleteCourseReturns204(t *testing.T) {
	svc := newFakeCourseService(&models.Course{ID: 1, Title: "x"})
	router := courseRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/1", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("delete body = %q, want empty", w.Body.String())
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != 1 {
		t.Errorf("deleted = %v, want [1]", svc.deleted)
	}
}

func TestPatchCourseAppliesSuppliedFields(t *testing.T) {
	svc := newFakeCourseService(&models.Course{ID: 1, Title: "old", Instructor: "Sara"})
	router := courseRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/courses/1", strings.NewReader(`{"title":"new"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp dto.CourseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Title != "new" || resp.Instructor != "Sara" {
		t.Errorf("patch result = %+v, want title replaced and instructor kept", resp)
	}
}
