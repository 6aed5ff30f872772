package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

// =========================================================================
// FAKES
// =========================================================================

// The fakes embed the repository interface so they only implement what the
// services call. Calling anything else panics on the nil interface.

type fakeUserRepo struct {
	repository.UserRepository
	users  map[int64]*model.User
	nextID int64
	// set to simulate a database failure
	err error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Save(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for id := int64(1); id < f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Search(ctx context.Context, term string) ([]model.User, error) {
	all, _ := f.FindAll(ctx)
	out := []model.User{}
	for _, u := range all {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(term)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.users, id)
	return nil
}

type fakeRoleRepo struct {
	repository.RoleRepository
	roles []model.Role
}

func (f *fakeRoleRepo) FindByName(_ context.Context, name string) (*model.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			copied := r
			return &copied, nil
		}
	}
	return nil, nil
}

type fakePostRepo struct {
	repository.PostRepository
	posts   map[int64]*model.Post
	nextID  int64
	deleted []int64
	err     error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*model.Post), nextID: 1}
}

func (f *fakePostRepo) Save(_ context.Context, post *model.Post) error {
	if f.err != nil {
		return f.err
	}
	post.ID = f.nextID
	f.nextID++
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id int64) (*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostRepo) FindAll(_ context.Context) ([]model.Post, error) {
	out := []model.Post{}
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.posts[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) FindByCategoryID(ctx context.Context, categoryID int64) ([]model.Post, error) {
	all, _ := f.FindAll(ctx)
	out := []model.Post{}
	for _, p := range all {
		if p.Category.ID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) Search(ctx context.Context, term string) ([]model.Post, error) {
	all, _ := f.FindAll(ctx)
	out := []model.Post{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.posts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeQuestionRepo struct {
	repository.QuestionRepository
	questions map[int64]*model.Question
	nextID    int64
	deleted   []int64
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[int64]*model.Question), nextID: 1}
}

func (f *fakeQuestionRepo) Save(_ context.Context, question *model.Question) error {
	question.ID = f.nextID
	f.nextID++
	copied := *question
	f.questions[question.ID] = &copied
	return nil
}

func (f *fakeQuestionRepo) FindByID(_ context.Context, id int64) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, nil
	}
	copied := *q
	return &copied, nil
}

func (f *fakeQuestionRepo) FindAll(_ context.Context) ([]model.Question, error) {
	out := []model.Question{}
	for id := int64(1); id < f.nextID; id++ {
		if q, ok := f.questions[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Search(ctx context.Context, term string) ([]model.Question, error) {
	all, _ := f.FindAll(ctx)
	out := []model.Question{}
	term = strings.ToLower(term)
	for _, q := range all {
		if strings.Contains(strings.ToLower(q.Title), term) || strings.Contains(strings.ToLower(q.Details), term) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Delete(_ context.Context, id int64) error {
	delete(f.questions, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAnswerRepo struct {
	repository.AnswerRepository
	answers []model.Answer
}

func (f *fakeAnswerRepo) Save(_ context.Context, answer *model.Answer) error {
	answer.ID = int64(len(f.answers) + 1)
	f.answers = append(f.answers, *answer)
	return nil
}

func (f *fakeAnswerRepo) FindByQuestionID(_ context.Context, questionID int64) ([]model.Answer, error) {
	out := []model.Answer{}
	for _, a := range f.answers {
		if a.Question.ID == questionID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	repository.ReviewRepository
	reviews []model.Review
}

func (f *fakeReviewRepo) Save(_ context.Context, review *model.Review) error {
	review.ID = int64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) FindByPostID(_ context.Context, postID int64) ([]model.Review, error) {
	out := []model.Review{}
	for _, r := range f.reviews {
		if r.Post.ID == postID {
			out = append(out, r)
		}
	}
	return out, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
