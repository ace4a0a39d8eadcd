package delivery_http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogboard/internal/custom_errors"
	"blogboard/internal/infrastructure/metrics"
	"blogboard/internal/logger"
	"blogboard/internal/model"
	"blogboard/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(posts *mocks.PostService, auth *mocks.AuthService) *gin.Engine {
	return NewRouter(posts, auth, 6, logger.New("test"), metrics.NoOp{})
}

func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListPosts(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	posts.On("ListPosts", mock.Anything, mock.MatchedBy(func(f *model.PostFilters) bool {
		return f.Search != nil && *f.Search == "go" &&
			f.Offset != nil && *f.Offset == 6 &&
			f.Limit != nil && *f.Limit == 6
	})).Return([]*model.PostDetailed{
		{Post: &model.Post{ID: 7, Title: "Go post"}},
	}, 13, nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/posts?page=2&search=go", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListPostsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 13, resp.TotalCount)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, int64(7), resp.Posts[0].Post.ID)

	posts.AssertExpectations(t)
}

func TestListPosts_InvalidPage(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	rec := doRequest(router, http.MethodGet, "/api/v1/posts?page=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPost_NotFound(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	posts.On("GetPostByID", mock.Anything, int64(42)).
		Return(nil, custom_errors.ErrPostNotFound)

	rec := doRequest(router, http.MethodGet, "/api/v1/posts/42", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post not found or removed")
}

func TestCreatePost(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("GetSession", mock.Anything, "tok").
		Return(&model.Identity{ID: 7, LoggedIn: true}, nil)
	posts.On("CreatePost", mock.Anything, mock.MatchedBy(func(dto *model.CreatePostDTO) bool {
		return dto.OwnerID == 7 && dto.Title == "Hello"
	})).Return(&model.PostDetailed{Post: &model.Post{ID: 1, OwnerID: 7, Title: "Hello"}}, nil)

	rec := doRequest(router, http.MethodPost, "/api/v1/posts", "tok", gin.H{
		"title":   "Hello",
		"content": "Body",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	posts.AssertExpectations(t)
}

func TestCreatePost_RequiresAuth(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	rec := doRequest(router, http.MethodPost, "/api/v1/posts", "", gin.H{
		"title":   "Hello",
		"content": "Body",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
	posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestCreatePost_ValidationFailure(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("GetSession", mock.Anything, "tok").
		Return(&model.Identity{ID: 7, LoggedIn: true}, nil)

	rec := doRequest(router, http.MethodPost, "/api/v1/posts", "tok", gin.H{
		"title": "Missing content",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestUpdatePost_Forbidden(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("GetSession", mock.Anything, "tok").
		Return(&model.Identity{ID: 9, LoggedIn: true}, nil)
	posts.On("UpdatePost", mock.Anything, int64(9), int64(1), mock.AnythingOfType("*model.UpdatePostDTO")).
		Return(nil, custom_errors.ErrForbidden)

	rec := doRequest(router, http.MethodPatch, "/api/v1/posts/1", "tok", gin.H{
		"title": "hijack",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You do not own this post")
}

func TestUpdatePost_NoFields(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("GetSession", mock.Anything, "tok").
		Return(&model.Identity{ID: 7, LoggedIn: true}, nil)

	rec := doRequest(router, http.MethodPatch, "/api/v1/posts/1", "tok", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	posts.AssertNotCalled(t, "UpdatePost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePost(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("GetSession", mock.Anything, "tok").
		Return(&model.Identity{ID: 7, LoggedIn: true}, nil)
	posts.On("DeletePost", mock.Anything, int64(7), int64(1)).Return(nil)

	rec := doRequest(router, http.MethodDelete, "/api/v1/posts/1", "tok", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	posts.AssertExpectations(t)
}

func TestDeletePost_RequiresAuth(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	rec := doRequest(router, http.MethodDelete, "/api/v1/posts/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	posts.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePost_InvalidToken(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("GetSession", mock.Anything, "stale").
		Return(nil, custom_errors.ErrSessionNotFound)

	rec := doRequest(router, http.MethodDelete, "/api/v1/posts/1", "stale", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	posts.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignUp(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("SignUp", mock.Anything, mock.AnythingOfType("*model.SignUpDTO")).
		Return(&model.Identity{ID: 1, Email: "a@example.com", LoggedIn: true}, "tok-1", nil)

	rec := doRequest(router, http.MethodPost, "/auth/signup", "", gin.H{
		"email":      "a@example.com",
		"password":   "longenough",
		"first_name": "Ada",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok-1", resp.Token)
	assert.True(t, resp.Identity.LoggedIn)
}

func TestSignUp_ShortPassword(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	rec := doRequest(router, http.MethodPost, "/auth/signup", "", gin.H{
		"email":    "a@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	auth.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("SignUp", mock.Anything, mock.AnythingOfType("*model.SignUpDTO")).
		Return(nil, "", custom_errors.ErrEmailAlreadyUsed)

	rec := doRequest(router, http.MethodPost, "/auth/signup", "", gin.H{
		"email":    "a@example.com",
		"password": "longenough",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignIn_WrongPassword(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("SignIn", mock.Anything, "a@example.com", "wrong").
		Return(nil, "", custom_errors.ErrInvalidCredentials)

	rec := doRequest(router, http.MethodPost, "/auth/signin", "", gin.H{
		"email":    "a@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSession_Anonymous(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	rec := doRequest(router, http.MethodGet, "/auth/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Identity.LoggedIn)
}

func TestSession_StaleTokenIsAnonymousNotError(t *testing.T) {
	posts := new(mocks.PostService)
	auth := new(mocks.AuthService)
	router := newTestRouter(posts, auth)

	auth.On("GetSession", mock.Anything, "stale").
		Return(nil, custom_errors.ErrSessionNotFound)

	rec := doRequest(router, http.MethodGet, "/auth/session", "stale", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Identity.LoggedIn)
}
