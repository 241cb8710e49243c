package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-service/internal/auth"
	"quiz-service/internal/middleware"
	"quiz-service/internal/quiz"
	"quiz-service/internal/session"
	"quiz-service/internal/user"
)

type env struct {
	router  *gin.Engine
	quizzes *quiz.MemStore
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{quizzes: quiz.NewMemStore()}
	users := user.NewMemStore()
	sessions := session.NewMemStore()

	e.router = gin.New()
	admin := e.router.Group("/")
	admin.Use(
		middleware.GinRequireAuth(middleware.NewAuthMiddleware(sessions, users)),
		middleware.RequireRole(user.RoleAdmin),
	)
	NewHandler(e.quizzes).RegisterRoutes(e.router, admin)

	e.loginAs(t, users, sessions)
	return e
}

var roleSessions = map[string]string{
	user.RoleAdmin: "admin-session",
	user.RoleUser:  "user-session",
}

// loginAs seeds one user and one live session per role, bypassing the login
// endpoint; issuing sessions is the auth handler's job and is tested there.
func (e *env) loginAs(t *testing.T, users *user.MemStore, sessions *session.MemStore) {
	t.Helper()
	for role, sid := range roleSessions {
		username := role + "-tester"
		hash, err := auth.HashPassword("pw-" + role)
		require.NoError(t, err)
		_, err = users.Create(context.Background(), &user.User{
			Username:     username,
			PasswordHash: hash,
			Active:       true,
			Verified:     true,
			Role:         role,
		})
		require.NoError(t, err)

		claim, err := session.Claim{Username: username, PasswordHash: hash}.Encode()
		require.NoError(t, err)
		require.NoError(t, sessions.Create(context.Background(), session.Session{
			SessionID: sid,
			Claim:     claim,
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}
}

func asRole(req *apitest.Request, role string) *apitest.Request {
	return req.Cookies(apitest.NewCookie(session.CookieName).Value(roleSessions[role]))
}

const validQuiz = `{
	"question": "What is 2+2?",
	"option_a": "3",
	"option_b": "4",
	"option_c": "5",
	"option_d": "6",
	"correct_option": "b"
}`

func TestCreateRequiresAuthentication(t *testing.T) {
	e := newEnv(t)

	apitest.New().
		Handler(e.router).
		Post("/quizzes").
		JSON(validQuiz).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	quizzes, err := e.quizzes.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, quizzes)
}

func TestCreateForbiddenForNonAdmin(t *testing.T) {
	e := newEnv(t)

	asRole(apitest.New().Handler(e.router).Post("/quizzes").JSON(validQuiz), user.RoleUser).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	// nothing persisted on a rejected write
	quizzes, err := e.quizzes.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, quizzes)
}

func TestCreateAsAdmin(t *testing.T) {
	e := newEnv(t)

	asRole(apitest.New().Handler(e.router).Post("/quizzes").JSON(validQuiz), user.RoleAdmin).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.question`, "What is 2+2?")).
		Assert(jsonpath.Equal(`$.correct_option`, "b")).
		End()

	quizzes, err := e.quizzes.List(context.Background())
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "What is 2+2?", quizzes[0].Question)
}

func TestCreateRejectsBadCorrectOption(t *testing.T) {
	e := newEnv(t)

	asRole(apitest.New().Handler(e.router).Post("/quizzes").JSON(`{
		"question": "q",
		"option_a": "1",
		"option_b": "2",
		"option_c": "3",
		"option_d": "4",
		"correct_option": "e"
	}`), user.RoleAdmin).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestReadsArePublic(t *testing.T) {
	e := newEnv(t)

	q, err := e.quizzes.Create(context.Background(), &quiz.Quiz{
		Question: "q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d",
		CorrectOption: "a",
	})
	require.NoError(t, err)

	apitest.New().
		Handler(e.router).
		Get("/quizzes").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		End()

	apitest.New().
		Handler(e.router).
		Get("/quizzes/"+q.ID.String()).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.question`, "q1")).
		End()
}

func TestGetUnknownQuiz(t *testing.T) {
	e := newEnv(t)

	apitest.New().
		Handler(e.router).
		Get("/quizzes/"+uuid.NewString()).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	// malformed ids are indistinguishable from missing ones
	apitest.New().
		Handler(e.router).
		Get("/quizzes/not-a-uuid").
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestUpdatePartial(t *testing.T) {
	e := newEnv(t)

	q, err := e.quizzes.Create(context.Background(), &quiz.Quiz{
		Question: "old", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d",
		CorrectOption: "a",
	})
	require.NoError(t, err)

	asRole(apitest.New().Handler(e.router).Patch("/quizzes/"+q.ID.String()).
		JSON(`{"question":"new","correct_option":"d"}`), user.RoleAdmin).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.question`, "new")).
		Assert(jsonpath.Equal(`$.correct_option`, "d")).
		Assert(jsonpath.Equal(`$.option_a`, "a")).
		End()
}

func TestUpdateForbiddenForNonAdmin(t *testing.T) {
	e := newEnv(t)

	q, err := e.quizzes.Create(context.Background(), &quiz.Quiz{
		Question: "old", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d",
		CorrectOption: "a",
	})
	require.NoError(t, err)

	asRole(apitest.New().Handler(e.router).Patch("/quizzes/"+q.ID.String()).
		JSON(`{"question":"new"}`), user.RoleUser).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	got, err := e.quizzes.Get(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, "old", got.Question)
}

func TestDelete(t *testing.T) {
	e := newEnv(t)

	q, err := e.quizzes.Create(context.Background(), &quiz.Quiz{
		Question: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d",
		CorrectOption: "a",
	})
	require.NoError(t, err)

	asRole(apitest.New().Handler(e.router).Delete("/quizzes/"+q.ID.String()), user.RoleAdmin).
		Expect(t).
		Status(http.StatusNoContent).
		End()

	apitest.New().
		Handler(e.router).
		Get("/quizzes/"+q.ID.String()).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestDeleteUnknownQuiz(t *testing.T) {
	e := newEnv(t)

	asRole(apitest.New().Handler(e.router).Delete("/quizzes/"+uuid.NewString()), user.RoleAdmin).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}
