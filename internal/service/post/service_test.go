package post_service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blogboard/internal/custom_errors"
	"blogboard/internal/infrastructure/metrics"
	"blogboard/internal/logger"
	"blogboard/internal/model"
	"blogboard/mocks"
)

func strPtr(s string) *string { return &s }

func TestPostService_CreatePost(t *testing.T) {
	log := logger.New("test")
	type args struct {
		ctx  context.Context
		post *model.CreatePostDTO
	}
	tests := []struct {
		name        string
		mocks       func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository)
		args        args
		want        *model.PostDetailed
		wantErr     bool
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {
				postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
					Return(&model.Post{ID: 1, OwnerID: 1, Title: "Test Post", Content: "Body"}, nil)
				profileRepo.On("GetByUserID", mock.Anything, int64(1)).
					Return(&model.Profile{UserID: 1, FirstName: "Ada", LastName: "Lovelace"}, nil)
			},
			args: args{
				ctx: context.Background(),
				post: &model.CreatePostDTO{
					OwnerID: 1,
					Title:   "Test Post",
					Content: "Body",
				},
			},
			want: &model.PostDetailed{
				Post:   &model.Post{ID: 1, OwnerID: 1, Title: "Test Post", Content: "Body"},
				Author: &model.Profile{UserID: 1, FirstName: "Ada", LastName: "Lovelace"},
			},
			wantErr: false,
		},
		{
			name: "Missing profile still succeeds with nil author",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {
				postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
					Return(&model.Post{ID: 2, OwnerID: 5, Title: "Orphan", Content: "Body"}, nil)
				profileRepo.On("GetByUserID", mock.Anything, int64(5)).
					Return(nil, custom_errors.ErrProfileNotFound)
			},
			args: args{
				ctx: context.Background(),
				post: &model.CreatePostDTO{
					OwnerID: 5,
					Title:   "Orphan",
					Content: "Body",
				},
			},
			want: &model.PostDetailed{
				Post: &model.Post{ID: 2, OwnerID: 5, Title: "Orphan", Content: "Body"},
			},
			wantErr: false,
		},
		{
			name:  "Empty title rejected before repository",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {},
			args: args{
				ctx: context.Background(),
				post: &model.CreatePostDTO{
					OwnerID: 1,
					Title:   "   ",
					Content: "Body",
				},
			},
			want:        nil,
			wantErr:     true,
			wantErrType: custom_errors.ErrPostValidation,
		},
		{
			name:  "Empty content rejected before repository",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {},
			args: args{
				ctx: context.Background(),
				post: &model.CreatePostDTO{
					OwnerID: 1,
					Title:   "Title",
					Content: "",
				},
			},
			want:        nil,
			wantErr:     true,
			wantErrType: custom_errors.ErrPostValidation,
		},
		{
			name:  "Invalid owner id rejected",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {},
			args: args{
				ctx: context.Background(),
				post: &model.CreatePostDTO{
					OwnerID: 0,
					Title:   "Title",
					Content: "Body",
				},
			},
			want:        nil,
			wantErr:     true,
			wantErrType: custom_errors.ErrInvalidInput,
		},
		{
			name: "Repository failure",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {
				postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
					Return(nil, errors.New("db error"))
			},
			args: args{
				ctx: context.Background(),
				post: &model.CreatePostDTO{
					OwnerID: 1,
					Title:   "Title",
					Content: "Body",
				},
			},
			want:        nil,
			wantErr:     true,
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(mocks.PostRepository)
			profileRepo := new(mocks.ProfileRepository)
			if tt.mocks != nil {
				tt.mocks(postRepo, profileRepo)
			}

			s := NewPostService(postRepo, profileRepo, log, metrics.NoOp{})
			got, err := s.CreatePost(tt.args.ctx, tt.args.post)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrType != nil {
					assert.True(t, errors.Is(err, tt.wantErrType), "expected error type %T, got %T", tt.wantErrType, err)
				}
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)

			postRepo.AssertExpectations(t)
			profileRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_GetPostByID(t *testing.T) {
	log := logger.New("test")
	tests := []struct {
		name        string
		mocks       func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository)
		id          int64
		want        *model.PostDetailed
		wantErr     bool
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {
				postRepo.On("GetByID", mock.Anything, int64(1)).
					Return(&model.Post{ID: 1, OwnerID: 2, Title: "Post"}, nil)
				profileRepo.On("GetByUserID", mock.Anything, int64(2)).
					Return(&model.Profile{UserID: 2, FirstName: "Ada"}, nil)
			},
			id: 1,
			want: &model.PostDetailed{
				Post:   &model.Post{ID: 1, OwnerID: 2, Title: "Post"},
				Author: &model.Profile{UserID: 2, FirstName: "Ada"},
			},
		},
		{
			name: "Not found",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {
				postRepo.On("GetByID", mock.Anything, int64(42)).
					Return(nil, custom_errors.ErrPostNotFound)
			},
			id:          42,
			wantErr:     true,
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name: "Database failure",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {
				postRepo.On("GetByID", mock.Anything, int64(1)).
					Return(nil, errors.New("db error"))
			},
			id:          1,
			wantErr:     true,
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(mocks.PostRepository)
			profileRepo := new(mocks.ProfileRepository)
			tt.mocks(postRepo, profileRepo)

			s := NewPostService(postRepo, profileRepo, log, metrics.NoOp{})
			got, err := s.GetPostByID(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErrType))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			postRepo.AssertExpectations(t)
			profileRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_ListPosts(t *testing.T) {
	log := logger.New("test")
	tests := []struct {
		name      string
		mocks     func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository)
		filters   *model.PostFilters
		wantLen   int
		wantTotal int
		wantErr   bool
	}{
		{
			name: "Success with total beyond the page",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {
				postRepo.On("List", mock.Anything, mock.AnythingOfType("model.PostFilters")).
					Return([]*model.Post{
						{ID: 1, OwnerID: 1},
						{ID: 2, OwnerID: 2},
					}, 13, nil)
				profileRepo.On("GetByUserID", mock.Anything, int64(1)).
					Return(&model.Profile{UserID: 1, FirstName: "Ada"}, nil)
				profileRepo.On("GetByUserID", mock.Anything, int64(2)).
					Return(nil, custom_errors.ErrProfileNotFound)
			},
			filters:   &model.PostFilters{Search: strPtr("a")},
			wantLen:   2,
			wantTotal: 13,
		},
		{
			name: "Repository failure",
			mocks: func(postRepo *mocks.PostRepository, profileRepo *mocks.ProfileRepository) {
				postRepo.On("List", mock.Anything, mock.AnythingOfType("model.PostFilters")).
					Return(nil, 0, errors.New("db error"))
			},
			filters: &model.PostFilters{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(mocks.PostRepository)
			profileRepo := new(mocks.ProfileRepository)
			tt.mocks(postRepo, profileRepo)

			s := NewPostService(postRepo, profileRepo, log, metrics.NoOp{})
			got, total, err := s.ListPosts(context.Background(), tt.filters)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantTotal, total)

			// The second author has no profile; the caller renders it anonymously.
			assert.NotNil(t, got[0].Author)
			assert.Nil(t, got[1].Author)
			postRepo.AssertExpectations(t)
			profileRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_UpdatePost(t *testing.T) {
	log := logger.New("test")
	tests := []struct {
		name        string
		mocks       func(postRepo *mocks.PostRepository)
		userID      int64
		id          int64
		update      *model.UpdatePostDTO
		want        *model.Post
		wantErr     bool
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(postRepo *mocks.PostRepository) {
				postRepo.On("GetByID", mock.Anything, int64(1)).
					Return(&model.Post{ID: 1, OwnerID: 7, Title: "before"}, nil)
				postRepo.On("Update", mock.Anything, int64(1), mock.AnythingOfType("*model.UpdatePostDTO")).
					Return(&model.Post{ID: 1, OwnerID: 7, Title: "after"}, nil)
			},
			userID: 7,
			id:     1,
			update: &model.UpdatePostDTO{Title: strPtr("after")},
			want:   &model.Post{ID: 1, OwnerID: 7, Title: "after"},
		},
		{
			name: "Not the owner",
			mocks: func(postRepo *mocks.PostRepository) {
				postRepo.On("GetByID", mock.Anything, int64(1)).
					Return(&model.Post{ID: 1, OwnerID: 7}, nil)
			},
			userID:      9,
			id:          1,
			update:      &model.UpdatePostDTO{Title: strPtr("after")},
			wantErr:     true,
			wantErrType: custom_errors.ErrForbidden,
		},
		{
			name: "Post not found",
			mocks: func(postRepo *mocks.PostRepository) {
				postRepo.On("GetByID", mock.Anything, int64(42)).
					Return(nil, custom_errors.ErrPostNotFound)
			},
			userID:      7,
			id:          42,
			update:      &model.UpdatePostDTO{Title: strPtr("after")},
			wantErr:     true,
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name:        "Blank title rejected before repository",
			mocks:       func(postRepo *mocks.PostRepository) {},
			userID:      7,
			id:          1,
			update:      &model.UpdatePostDTO{Title: strPtr("   ")},
			wantErr:     true,
			wantErrType: custom_errors.ErrPostValidation,
		},
		{
			name:        "Blank content rejected before repository",
			mocks:       func(postRepo *mocks.PostRepository) {},
			userID:      7,
			id:          1,
			update:      &model.UpdatePostDTO{Content: strPtr("")},
			wantErr:     true,
			wantErrType: custom_errors.ErrPostValidation,
		},
		{
			name: "No fields to update",
			mocks: func(postRepo *mocks.PostRepository) {
				postRepo.On("GetByID", mock.Anything, int64(1)).
					Return(&model.Post{ID: 1, OwnerID: 7}, nil)
				postRepo.On("Update", mock.Anything, int64(1), mock.AnythingOfType("*model.UpdatePostDTO")).
					Return(nil, custom_errors.ErrNoUpdateRows)
			},
			userID:      7,
			id:          1,
			update:      &model.UpdatePostDTO{},
			wantErr:     true,
			wantErrType: custom_errors.ErrNoUpdateRows,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(mocks.PostRepository)
			profileRepo := new(mocks.ProfileRepository)
			tt.mocks(postRepo)

			s := NewPostService(postRepo, profileRepo, log, metrics.NoOp{})
			got, err := s.UpdatePost(context.Background(), tt.userID, tt.id, tt.update)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErrType), "expected error type %T, got %T", tt.wantErrType, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			postRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_DeletePost(t *testing.T) {
	log := logger.New("test")
	tests := []struct {
		name        string
		mocks       func(postRepo *mocks.PostRepository)
		userID      int64
		id          int64
		wantErr     bool
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(postRepo *mocks.PostRepository) {
				postRepo.On("GetByID", mock.Anything, int64(1)).
					Return(&model.Post{ID: 1, OwnerID: 7}, nil)
				postRepo.On("Delete", mock.Anything, int64(1)).Return(nil)
			},
			userID: 7,
			id:     1,
		},
		{
			name: "Not the owner",
			mocks: func(postRepo *mocks.PostRepository) {
				postRepo.On("GetByID", mock.Anything, int64(1)).
					Return(&model.Post{ID: 1, OwnerID: 7}, nil)
			},
			userID:      9,
			id:          1,
			wantErr:     true,
			wantErrType: custom_errors.ErrForbidden,
		},
		{
			name: "Post not found",
			mocks: func(postRepo *mocks.PostRepository) {
				postRepo.On("GetByID", mock.Anything, int64(42)).
					Return(nil, custom_errors.ErrPostNotFound)
			},
			userID:      7,
			id:          42,
			wantErr:     true,
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name: "Delete failure",
			mocks: func(postRepo *mocks.PostRepository) {
				postRepo.On("GetByID", mock.Anything, int64(1)).
					Return(&model.Post{ID: 1, OwnerID: 7}, nil)
				postRepo.On("Delete", mock.Anything, int64(1)).Return(errors.New("db error"))
			},
			userID:      7,
			id:          1,
			wantErr:     true,
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(mocks.PostRepository)
			profileRepo := new(mocks.ProfileRepository)
			tt.mocks(postRepo)

			s := NewPostService(postRepo, profileRepo, log, metrics.NoOp{})
			err := s.DeletePost(context.Background(), tt.userID, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErrType), "expected error type %T, got %T", tt.wantErrType, err)
			} else {
				assert.NoError(t, err)
			}
			postRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_CountsOperations(t *testing.T) {
	log := logger.New("test")

	t.Run("successful delete counted as success", func(t *testing.T) {
		postRepo := new(mocks.PostRepository)
		profileRepo := new(mocks.ProfileRepository)
		provider := new(mocks.MetricsProvider)
		postRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&model.Post{ID: 1, OwnerID: 7}, nil)
		postRepo.On("Delete", mock.Anything, int64(1)).Return(nil)
		provider.On("IncrementPostOperations", "delete", true).Return()

		s := NewPostService(postRepo, profileRepo, log, provider)
		err := s.DeletePost(context.Background(), 7, 1)

		assert.NoError(t, err)
		provider.AssertCalled(t, "IncrementPostOperations", "delete", true)
	})

	t.Run("forbidden delete counted as failure", func(t *testing.T) {
		postRepo := new(mocks.PostRepository)
		profileRepo := new(mocks.ProfileRepository)
		provider := new(mocks.MetricsProvider)
		postRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&model.Post{ID: 1, OwnerID: 7}, nil)
		provider.On("IncrementPostOperations", "delete", false).Return()

		s := NewPostService(postRepo, profileRepo, log, provider)
		err := s.DeletePost(context.Background(), 9, 1)

		assert.True(t, errors.Is(err, custom_errors.ErrForbidden))
		provider.AssertCalled(t, "IncrementPostOperations", "delete", false)
		postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("create and list counted", func(t *testing.T) {
		postRepo := new(mocks.PostRepository)
		profileRepo := new(mocks.ProfileRepository)
		provider := new(mocks.MetricsProvider)
		postRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.Post{ID: 5, OwnerID: 7, Title: "First", Content: "Body"}, nil)
		postRepo.On("List", mock.Anything, mock.Anything).
			Return([]*model.Post{}, 0, nil)
		profileRepo.On("GetByUserID", mock.Anything, int64(7)).
			Return(nil, custom_errors.ErrProfileNotFound)
		provider.On("IncrementPostOperations", "create", true).Return()
		provider.On("IncrementPostOperations", "list", true).Return()

		s := NewPostService(postRepo, profileRepo, log, provider)
		_, err := s.CreatePost(context.Background(), &model.CreatePostDTO{OwnerID: 7, Title: "First", Content: "Body"})
		assert.NoError(t, err)

		_, _, err = s.ListPosts(context.Background(), &model.PostFilters{})
		assert.NoError(t, err)

		provider.AssertExpectations(t)
	})
}
