package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sipblog/internal/config"
	"sipblog/internal/models"
	"sipblog/internal/service"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, *models.Session, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	session, _ := args.Get(1).(*models.Session)
	return user, session, args.Error(2)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAuthService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockPostService struct{ mock.Mock }

func (m *mockPostService) CreatePost(ctx context.Context, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockPostService) UpdatePost(ctx context.Context, req service.UpdatePostRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockPostService) DeletePost(ctx context.Context, postID int) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *mockPostService) GetPost(ctx context.Context, postID int) (*models.Post, error) {
	args := m.Called(ctx, postID)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockPostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

type mockCommentService struct{ mock.Mock }

func (m *mockCommentService) AddComment(ctx context.Context, req service.AddCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, req)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentService) ThreadsForPost(ctx context.Context, postID int, includeHidden bool) ([]service.ThreadEntry, error) {
	args := m.Called(ctx, postID, includeHidden)
	entries, _ := args.Get(0).([]service.ThreadEntry)
	return entries, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User, password string) error {
	return m.Called(ctx, user, password).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID int) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, sender, subject, textBody string) error {
	return m.Called(ctx, sender, subject, textBody).Error(0)
}

type testMocks struct {
	auth    *mockAuthService
	posts   *mockPostService
	comment *mockCommentService
	users   *mockUserRepo
	mailer  *mockMailer
}

func newTestHandlers(t *testing.T) (*Handlers, *testMocks) {
	t.Helper()

	m := &testMocks{
		auth:    &mockAuthService{},
		posts:   &mockPostService{},
		comment: &mockCommentService{},
		users:   &mockUserRepo{},
		mailer:  &mockMailer{},
	}

	h := &Handlers{
		AuthService:    m.auth,
		PostService:    m.posts,
		CommentService: m.comment,
		UserRepo:       m.users,
		Mailer:         m.mailer,
		Cfg: &config.Config{
			MaxUploadSize: 10 << 20,
			Mail:          config.Mail{Subject: "SIP Website Contact Form Submitted"},
		},
		Validate: validator.New(),
	}

	return h, m
}

// postForm builds a urlencoded POST request to target.
func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	return req
}

// expectUser wires UserByToken so the session cookie resolves to the user.
func expectUser(m *testMocks, token string, user *models.User) {
	m.auth.On("UserByToken", mock.Anything, token).Return(user, nil)
}

// flashMessage pulls the one-time notice out of the response cookies.
func flashMessage(t *testing.T, res *http.Response) *Flash {
	t.Helper()

	for _, cookie := range res.Cookies() {
		if cookie.Name != flashCookieName || cookie.Value == "" {
			continue
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		flash := popFlash(httptest.NewRecorder(), req)
		require.NotNil(t, flash)
		return flash
	}

	t.Fatal("флеш-сообщение не найдено в ответе")
	return nil
}
