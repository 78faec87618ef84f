package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-library-backend/internal/domains/course/model"
	"course-library-backend/internal/domains/course/repository"
	"course-library-backend/internal/domains/course/service"
	"course-library-backend/internal/infrastructure/memstore"
	"course-library-backend/internal/shared/response"
)

const (
	berry     = "d28888e9-2ba9-473a-a40f-e38cb54f9b35"
	mutiny    = "d8663e5e-7494-4f81-8739-6e0de1bea7ee"
	rutherfor = "2aadd2df-7caf-45ab-9355-7f6332985a87"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := memstore.New()
	require.NoError(t, db.Seed())
	store, err := repository.NewMemoryStore(db)
	require.NoError(t, err)
	svc, err := service.NewCourseService(store)
	require.NoError(t, err)
	h, err := NewCourseHandler(svc)
	require.NoError(t, err)

	r := gin.New()
	courses := r.Group("/api/authors/:authorId/courses")
	courses.GET("", h.GetCoursesForAuthor)
	courses.POST("", h.CreateCourseForAuthor)
	courses.OPTIONS("", h.GetCoursesOptions)
	courses.GET("/:courseId", h.GetCourseForAuthor)
	courses.PUT("/:courseId", h.UpdateCourseForAuthor)
	courses.PATCH("/:courseId", h.PartiallyUpdateCourseForAuthor)
	courses.DELETE("/:courseId", h.DeleteCourseForAuthor)
	return r
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "http://courses.test"+path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func coursesPath(authorID string) string {
	return "/api/authors/" + authorID + "/courses"
}

func coursePath(authorID, courseID string) string {
	return coursesPath(authorID) + "/" + courseID
}

func decodeCourse(t *testing.T, w *httptest.ResponseRecorder) model.CourseResponse {
	t.Helper()
	var c model.CourseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	return c
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) response.ProblemDetails {
	t.Helper()
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, response.ProblemContentType, w.Header().Get("Content-Type"))
	var p response.ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestNewCourseHandler_NilService(t *testing.T) {
	_, err := NewCourseHandler(nil)
	assert.ErrorIs(t, err, model.ErrNilDependency)
}

func TestUnknownAuthor_404Everywhere(t *testing.T) {
	r := setupRouter(t)
	unknown := uuid.NewString()
	course := uuid.NewString()

	cases := []struct{ method, path, body string }{
		{http.MethodGet, coursesPath(unknown), ""},
		{http.MethodGet, coursePath(unknown, mutiny), ""},
		{http.MethodPost, coursesPath(unknown), `{"title":""}`},
		{http.MethodPut, coursePath(unknown, course), `{"title":"x","description":"x"}`},
		{http.MethodPatch, coursePath(unknown, course), `[{"op":"remove","path":"/title"}]`},
		{http.MethodDelete, coursePath(unknown, mutiny), ""},
	}

	for _, tc := range cases {
		w := send(r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
		assert.Empty(t, w.Body.String())
	}
}

func TestMalformedUUID_400(t *testing.T) {
	r := setupRouter(t)

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, coursesPath("not-a-uuid"), "").Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, coursePath(berry, "nope"), "").Code)
}

func TestGetCourses(t *testing.T) {
	r := setupRouter(t)

	w := send(r, http.MethodGet, coursesPath(berry), "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []model.CourseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	w = send(r, http.MethodGet, coursesPath(rutherfor), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetCourse(t *testing.T) {
	r := setupRouter(t)

	w := send(r, http.MethodGet, coursePath(berry, mutiny), "")
	require.Equal(t, http.StatusOK, w.Code)
	c := decodeCourse(t, w)
	assert.Equal(t, "Overthrowing Mutiny", c.Title)
	assert.Equal(t, berry, c.AuthorID.String())

	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, coursePath(rutherfor, mutiny), "").Code)
}

func TestCreateCourse(t *testing.T) {
	r := setupRouter(t)

	w := send(r, http.MethodPost, coursesPath(rutherfor), `{"title":"C#","description":"Intro"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeCourse(t, w)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "C#", created.Title)
	assert.Equal(t, "Intro", created.Description)

	location := w.Header().Get("Location")
	assert.Equal(t, "http://courses.test"+coursePath(rutherfor, created.ID.String()), location)

	w = send(r, http.MethodGet, strings.TrimPrefix(location, "http://courses.test"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeCourse(t, w))
}

func TestCreateCourse_ValidationProblem(t *testing.T) {
	r := setupRouter(t)
	path := coursesPath(rutherfor)

	p := decodeProblem(t, send(r, http.MethodPost, path, `{"title":"Same","description":"Same"}`))
	assert.Equal(t, []string{model.MsgTitleSameAsDescription}, p.Errors["title"])
	assert.Equal(t, path, p.Instance)
	assert.Equal(t, http.StatusUnprocessableEntity, p.Status)

	long := strings.Repeat("t", 101)
	p = decodeProblem(t, send(r, http.MethodPost, path, `{"title":"`+long+`"}`))
	assert.Equal(t, []string{model.MsgTitleTooLong}, p.Errors["title"])
}

func TestCreateCourse_MalformedJSON(t *testing.T) {
	r := setupRouter(t)

	w := send(r, http.MethodPost, coursesPath(rutherfor), `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestOptions(t *testing.T) {
	r := setupRouter(t)

	w := send(r, http.MethodOptions, coursesPath(berry), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, OPTIONS, POST, PUT, PATCH, DELETE", w.Header().Get("Allow"))
	assert.Empty(t, w.Body.String())
}

func TestPut_UpsertThenReplace(t *testing.T) {
	r := setupRouter(t)
	id := uuid.NewString()
	body := `{"title":"Knots","description":"Tying"}`

	w := send(r, http.MethodPut, coursePath(rutherfor, id), body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "http://courses.test"+coursePath(rutherfor, id), w.Header().Get("Location"))
	assert.Equal(t, id, decodeCourse(t, w).ID.String())

	w = send(r, http.MethodPut, coursePath(rutherfor, id), body)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = send(r, http.MethodGet, coursePath(rutherfor, id), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeCourse(t, w)
	assert.Equal(t, "Knots", got.Title)
	assert.Equal(t, "Tying", got.Description)
}

func TestPut_MissingDescription(t *testing.T) {
	r := setupRouter(t)

	p := decodeProblem(t, send(r, http.MethodPut, coursePath(berry, mutiny), `{"title":"Only a title"}`))

	assert.Equal(t, []string{model.MsgDescriptionRequired}, p.Errors["description"])
}

func TestPatch_EmptyDocumentIs204AndNoop(t *testing.T) {
	r := setupRouter(t)
	before := send(r, http.MethodGet, coursePath(berry, mutiny), "").Body.String()

	w := send(r, http.MethodPatch, coursePath(berry, mutiny), `[]`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.JSONEq(t, before, send(r, http.MethodGet, coursePath(berry, mutiny), "").Body.String())
}

func TestPatch_UpsertCreates(t *testing.T) {
	r := setupRouter(t)
	id := uuid.NewString()

	w := send(r, http.MethodPatch, coursePath(rutherfor, id),
		`[{"op":"replace","path":"/title","value":"Rigging"},{"op":"replace","path":"/description","value":"Ropes"}]`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, id, decodeCourse(t, w).ID.String())

	got := decodeCourse(t, send(r, http.MethodGet, coursePath(rutherfor, id), ""))
	assert.Equal(t, "Rigging", got.Title)
	assert.Equal(t, "Ropes", got.Description)
}

func TestPatch_Revalidates(t *testing.T) {
	r := setupRouter(t)

	p := decodeProblem(t, send(r, http.MethodPatch, coursePath(berry, mutiny),
		`[{"op":"replace","path":"/title","value":""}]`))

	assert.Equal(t, []string{model.MsgTitleRequired}, p.Errors["title"])
}

func TestPatch_NotApplicable(t *testing.T) {
	r := setupRouter(t)

	p := decodeProblem(t, send(r, http.MethodPatch, coursePath(berry, mutiny),
		`[{"op":"add","path":"/price","value":3}]`))

	assert.Contains(t, p.Errors, "patch")
}

func TestPatch_MalformedDocument(t *testing.T) {
	r := setupRouter(t)

	for _, body := range []string{``, `null`, `{"op":"replace"}`, `[{`} {
		w := send(r, http.MethodPatch, coursePath(berry, mutiny), body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestDelete_ThenGet404(t *testing.T) {
	r := setupRouter(t)

	w := send(r, http.MethodDelete, coursePath(berry, mutiny), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, coursePath(berry, mutiny), "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodDelete, coursePath(berry, mutiny), "").Code)
}
