package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/feedstore/backend/internal/models"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := epoch
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

// seqIDs returns a deterministic id generator.
func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fixture struct {
	db       *DB
	users    *MemoryUserRepository
	posts    *MemoryPostRepository
	comments *MemoryCommentRepository
	likes    *MemoryLikeRepository
}

func newFixture(opts ...Option) fixture {
	opts = append([]Option{WithClock(stepClock()), WithIDGenerator(seqIDs())}, opts...)
	opts = append(opts, WithUser(models.User{ID: "user-1", Username: "alexj", Name: "Alex Johnson"}))
	db := NewDB(opts...)
	return fixture{
		db:       db,
		users:    NewMemoryUserRepository(db),
		posts:    NewMemoryPostRepository(db),
		comments: NewMemoryCommentRepository(db),
		likes:    NewMemoryLikeRepository(db),
	}
}

func (f fixture) mustPost(t *testing.T, content string) *models.Post {
	t.Helper()
	post, err := f.posts.CreatePost(context.Background(), "user-1", models.CreatePostRequest{Content: content})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	return post
}

func (f fixture) likesFor(postID string) int {
	n := 0
	for key := range f.db.likes {
		if key.postID == postID {
			n++
		}
	}
	return n
}

func (f fixture) commentsFor(postID string) int {
	n := 0
	for _, row := range f.db.comments {
		if row.comment.PostID == postID {
			n++
		}
	}
	return n
}

func TestUserRepository_SeededUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.users.GetUserByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if user.Username != "alexj" {
		t.Errorf("Username = %q, want alexj", user.Username)
	}
	if user.CreatedAt.IsZero() {
		t.Error("seeded user should get a creation time")
	}
}

func TestUserRepository_CreateUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.users.CreateUser(ctx, models.CreateUserRequest{Username: "sam", Name: "Sam"})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.ID == "" || user.ID == "user-1" {
		t.Errorf("CreateUser assigned id %q", user.ID)
	}
	if user.Avatar != nil {
		t.Errorf("Avatar = %v, want nil", *user.Avatar)
	}

	withAvatar, _ := f.users.CreateUser(ctx, models.CreateUserRequest{Username: "kim", Name: "Kim", Avatar: "https://example.com/a.png"})
	if withAvatar.Avatar == nil || *withAvatar.Avatar != "https://example.com/a.png" {
		t.Errorf("Avatar not stored: %v", withAvatar.Avatar)
	}

	users, _ := f.users.ListUsers(ctx)
	if len(users) != 3 {
		t.Errorf("ListUsers returned %d users, want 3", len(users))
	}
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.users.GetUserByUsername(ctx, "alexj"); err != nil {
		t.Errorf("exact username lookup failed: %v", err)
	}
	if _, err := f.users.GetUserByUsername(ctx, "AlexJ"); !errors.Is(err, ErrNotFound) {
		t.Errorf("lookup should be case-sensitive, got err=%v", err)
	}
}

func TestUserRepository_UsernamesNotUnique(t *testing.T) {
	f := newFixture()

	_, err := f.users.CreateUser(context.Background(), models.CreateUserRequest{Username: "alexj", Name: "Other Alex"})
	if err != nil {
		t.Errorf("duplicate username should be accepted, got %v", err)
	}
}

func TestUserRepository_GetUserByID_NotFound(t *testing.T) {
	f := newFixture()

	user, err := f.users.GetUserByID(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if user != nil {
		t.Error("user should be nil when not found")
	}
}

func TestPostRepository_CreatePost(t *testing.T) {
	f := newFixture()

	post, err := f.posts.CreatePost(context.Background(), "user-1", models.CreatePostRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if post.LikesCount != 0 || post.CommentsCount != 0 || post.SharesCount != 0 {
		t.Errorf("counters = %d/%d/%d, want zeros", post.LikesCount, post.CommentsCount, post.SharesCount)
	}
	if post.ImageURL != nil {
		t.Error("ImageURL should be nil when unset")
	}
	if post.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestPostRepository_CreatePost_UnknownAuthorKept(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.CreatePost(ctx, "ghost", models.CreatePostRequest{Content: "boo"})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if _, err := f.posts.GetPostByID(ctx, post.ID); err != nil {
		t.Errorf("post with unknown author should be retained: %v", err)
	}
}

func TestPostRepository_ReturnsCopies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	post := f.mustPost(t, "hello")

	post.LikesCount = 99
	got, _ := f.posts.GetPostByID(ctx, post.ID)
	if got.LikesCount != 0 {
		t.Errorf("caller mutation leaked into store: LikesCount = %d", got.LikesCount)
	}
}

func TestPostRepository_GetAllPosts_NewestFirst(t *testing.T) {
	t1 := epoch.Add(1 * time.Minute)
	t2 := epoch.Add(2 * time.Minute)
	t3 := epoch.Add(3 * time.Minute)

	orders := [][]time.Time{
		{t1, t2, t3},
		{t3, t1, t2},
		{t2, t3, t1},
	}
	for _, order := range orders {
		i := 0
		clock := func() time.Time {
			if i >= len(order) {
				return epoch
			}
			ts := order[i]
			i++
			return ts
		}
		db := NewDB(WithClock(clock))
		posts := NewMemoryPostRepository(db)
		for _, ts := range order {
			_, _ = posts.CreatePost(context.Background(), "user-1", models.CreatePostRequest{Content: ts.Format(time.Kitchen)})
		}

		list, _ := posts.GetAllPosts(context.Background())
		if len(list) != 3 {
			t.Fatalf("order %v: got %d posts, want 3", order, len(list))
		}
		want := []time.Time{t3, t2, t1}
		for k, p := range list {
			if !p.CreatedAt.Equal(want[k]) {
				t.Errorf("order %v: position %d = %v, want %v", order, k, p.CreatedAt, want[k])
			}
		}
	}
}

func TestPostRepository_GetAllPosts_TiesKeepInsertionOrder(t *testing.T) {
	db := NewDB(WithClock(func() time.Time { return epoch }))
	posts := NewMemoryPostRepository(db)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		p, _ := posts.CreatePost(ctx, "user-1", models.CreatePostRequest{Content: fmt.Sprint(i)})
		ids = append(ids, p.ID)
	}

	list, _ := posts.GetAllPosts(ctx)
	if len(list) != len(ids) {
		t.Fatalf("got %d posts, want %d", len(list), len(ids))
	}
	for i, p := range list {
		if p.ID != ids[i] {
			t.Errorf("position %d = %s, want %s", i, p.ID, ids[i])
		}
	}
}

func TestPostRepository_UpdatePost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	post := f.mustPost(t, "hello")
	_, _ = f.likes.ToggleLike(ctx, "user-1", post.ID)

	image := "https://example.com/cat.png"
	updated, err := f.posts.UpdatePost(ctx, post.ID, models.UpdatePostRequest{ImageURL: &image})
	if err != nil {
		t.Fatalf("UpdatePost returned error: %v", err)
	}
	if updated.Content != "hello" {
		t.Errorf("Content = %q, unset field should be kept", updated.Content)
	}
	if updated.ImageURL == nil || *updated.ImageURL != image {
		t.Errorf("ImageURL = %v, want %s", updated.ImageURL, image)
	}
	if updated.LikesCount != 1 {
		t.Errorf("LikesCount = %d, update must not touch counters", updated.LikesCount)
	}

	content := "edited"
	none := ""
	updated, _ = f.posts.UpdatePost(ctx, post.ID, models.UpdatePostRequest{Content: &content, ImageURL: &none})
	if updated.Content != "edited" {
		t.Errorf("Content = %q, want edited", updated.Content)
	}
	if updated.ImageURL != nil {
		t.Errorf("ImageURL = %v, want cleared", *updated.ImageURL)
	}
}

func TestPostRepository_UpdatePost_NotFound(t *testing.T) {
	f := newFixture()
	content := "x"

	post, err := f.posts.UpdatePost(context.Background(), "missing", models.UpdatePostRequest{Content: &content})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if post != nil {
		t.Error("post should be nil when not found")
	}
}

func TestPostRepository_DeletePost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	post := f.mustPost(t, "hello")

	deleted, err := f.posts.DeletePost(ctx, "missing")
	if err != nil || deleted {
		t.Errorf("DeletePost(missing) = %v, %v; want false, nil", deleted, err)
	}
	if len(f.db.posts) != 1 {
		t.Errorf("ledger size = %d after failed delete, want 1", len(f.db.posts))
	}

	deleted, err = f.posts.DeletePost(ctx, post.ID)
	if err != nil || !deleted {
		t.Errorf("DeletePost(existing) = %v, %v; want true, nil", deleted, err)
	}
	if _, err := f.posts.GetPostByID(ctx, post.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPostByID after delete: err = %v, want ErrNotFound", err)
	}
}

func TestPostRepository_AdjustCountsClampAtZero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	post := f.mustPost(t, "hello")

	_ = f.posts.AdjustLikesCount(ctx, post.ID, -1)
	_ = f.posts.AdjustCommentsCount(ctx, post.ID, -3)
	got, _ := f.posts.GetPostByID(ctx, post.ID)
	if got.LikesCount != 0 || got.CommentsCount != 0 {
		t.Errorf("counters = %d/%d, want 0/0", got.LikesCount, got.CommentsCount)
	}

	_ = f.posts.AdjustLikesCount(ctx, post.ID, 2)
	_ = f.posts.AdjustLikesCount(ctx, post.ID, -5)
	got, _ = f.posts.GetPostByID(ctx, post.ID)
	if got.LikesCount != 0 {
		t.Errorf("LikesCount = %d, want 0", got.LikesCount)
	}

	if err := f.posts.AdjustLikesCount(ctx, "missing", 1); err != nil {
		t.Errorf("adjusting an unknown post should be a no-op, got %v", err)
	}
}

func TestLikeRepository_ToggleParity(t *testing.T) {
	for n := 1; n <= 6; n++ {
		f := newFixture()
		ctx := context.Background()
		post := f.mustPost(t, "hello")

		var last bool
		for i := 0; i < n; i++ {
			last, _ = f.likes.ToggleLike(ctx, "user-1", post.ID)
		}

		wantLiked := n%2 == 1
		if last != wantLiked {
			t.Errorf("n=%d: last toggle = %v, want %v", n, last, wantLiked)
		}
		liked, _ := f.likes.HasUserLikedPost(ctx, "user-1", post.ID)
		if liked != wantLiked {
			t.Errorf("n=%d: HasUserLikedPost = %v, want %v", n, liked, wantLiked)
		}
		got, _ := f.posts.GetPostByID(ctx, post.ID)
		if got.LikesCount != n%2 {
			t.Errorf("n=%d: LikesCount = %d, want %d", n, got.LikesCount, n%2)
		}
	}
}

func TestLikeRepository_IndependentPairs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	post := f.mustPost(t, "hello")

	_, _ = f.likes.ToggleLike(ctx, "user-1", post.ID)
	_, _ = f.likes.ToggleLike(ctx, "user-2", post.ID)

	got, _ := f.posts.GetPostByID(ctx, post.ID)
	if got.LikesCount != 2 {
		t.Errorf("LikesCount = %d, want 2", got.LikesCount)
	}
	if liked, _ := f.likes.HasUserLikedPost(ctx, "user-3", post.ID); liked {
		t.Error("user-3 should not like the post")
	}
}

func TestLikeRepository_ToggleUnknownPost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	liked, err := f.likes.ToggleLike(ctx, "nobody", "no-post")
	if err != nil || !liked {
		t.Errorf("ToggleLike on unknown ids = %v, %v; want true, nil", liked, err)
	}
	liked, err = f.likes.ToggleLike(ctx, "nobody", "no-post")
	if err != nil || liked {
		t.Errorf("second ToggleLike = %v, %v; want false, nil", liked, err)
	}
}

func TestCommentRepository_CountTracksLedger(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	post := f.mustPost(t, "hello")

	check := func(step string) {
		t.Helper()
		got, _ := f.posts.GetPostByID(ctx, post.ID)
		if want := f.commentsFor(post.ID); got.CommentsCount != want {
			t.Errorf("%s: CommentsCount = %d, ledger has %d", step, got.CommentsCount, want)
		}
	}

	var ids []string
	for i := 0; i < 3; i++ {
		c, _ := f.comments.CreateComment(ctx, "user-1", models.CreateCommentRequest{PostID: post.ID, Content: fmt.Sprint(i)})
		ids = append(ids, c.ID)
		check(fmt.Sprintf("create %d", i))
	}

	deleted, _ := f.comments.DeleteComment(ctx, ids[1])
	if !deleted {
		t.Error("DeleteComment(existing) = false")
	}
	check("delete existing")

	deleted, _ = f.comments.DeleteComment(ctx, ids[1])
	if deleted {
		t.Error("DeleteComment(already deleted) = true")
	}
	check("delete twice")

	deleted, _ = f.comments.DeleteComment(ctx, "missing")
	if deleted {
		t.Error("DeleteComment(missing) = true")
	}
	check("delete missing")
}

func TestCommentRepository_GetCommentsByPostID_OldestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	post := f.mustPost(t, "hello")
	other := f.mustPost(t, "other")

	for i := 0; i < 3; i++ {
		_, _ = f.comments.CreateComment(ctx, "user-1", models.CreateCommentRequest{PostID: post.ID, Content: fmt.Sprint(i)})
		_, _ = f.comments.CreateComment(ctx, "user-1", models.CreateCommentRequest{PostID: other.ID, Content: "noise"})
	}

	comments, _ := f.comments.GetCommentsByPostID(ctx, post.ID)
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	for i := 1; i < len(comments); i++ {
		if comments[i].CreatedAt.Before(comments[i-1].CreatedAt) {
			t.Errorf("comments not in ascending order at %d", i)
		}
	}
	if comments[0].Content != "0" || comments[2].Content != "2" {
		t.Errorf("unexpected order: %q .. %q", comments[0].Content, comments[2].Content)
	}
}

func TestCommentRepository_CreateOnUnknownPost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c, err := f.comments.CreateComment(ctx, "user-1", models.CreateCommentRequest{PostID: "no-post", Content: "hi"})
	if err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}
	comments, _ := f.comments.GetCommentsByPostID(ctx, "no-post")
	if len(comments) != 1 || comments[0].ID != c.ID {
		t.Errorf("comment on unknown post not retained: %v", comments)
	}
}

func TestScenario_NoCascadeOnPostDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post := f.mustPost(t, "hello")
	if post.LikesCount != 0 || post.CommentsCount != 0 {
		t.Fatalf("fresh post counters = %d/%d", post.LikesCount, post.CommentsCount)
	}

	if liked, _ := f.likes.ToggleLike(ctx, "user-1", post.ID); !liked {
		t.Error("first toggle should like")
	}
	got, _ := f.posts.GetPostByID(ctx, post.ID)
	if got.LikesCount != 1 {
		t.Errorf("LikesCount = %d, want 1", got.LikesCount)
	}
	if liked, _ := f.likes.ToggleLike(ctx, "user-1", post.ID); liked {
		t.Error("second toggle should unlike")
	}
	got, _ = f.posts.GetPostByID(ctx, post.ID)
	if got.LikesCount != 0 {
		t.Errorf("LikesCount = %d, want 0", got.LikesCount)
	}

	comment, _ := f.comments.CreateComment(ctx, "user-1", models.CreateCommentRequest{PostID: post.ID, Content: "first"})
	got, _ = f.posts.GetPostByID(ctx, post.ID)
	if got.CommentsCount != 1 {
		t.Errorf("CommentsCount = %d, want 1", got.CommentsCount)
	}

	if deleted, _ := f.posts.DeletePost(ctx, post.ID); !deleted {
		t.Fatal("DeletePost returned false")
	}
	if _, err := f.posts.GetPostByID(ctx, post.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("post still present: %v", err)
	}

	comments, _ := f.comments.GetCommentsByPostID(ctx, post.ID)
	if len(comments) != 1 || comments[0].ID != comment.ID {
		t.Errorf("comment should survive post deletion, got %v", comments)
	}

	// Deleting the orphan must not panic or resurrect the post.
	if deleted, _ := f.comments.DeleteComment(ctx, comment.ID); !deleted {
		t.Error("orphaned comment could not be deleted")
	}
}

func TestConcurrentTogglesKeepCounterConsistent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	post := f.mustPost(t, "hello")

	const users = 20
	const togglesPerUser = 7

	var wg sync.WaitGroup
	for u := 0; u < users; u++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			for i := 0; i < togglesPerUser; i++ {
				_, _ = f.likes.ToggleLike(ctx, userID, post.ID)
				_, _ = f.comments.CreateComment(ctx, userID, models.CreateCommentRequest{PostID: post.ID, Content: "c"})
			}
		}(fmt.Sprintf("user-%d", u))
	}
	wg.Wait()

	got, _ := f.posts.GetPostByID(ctx, post.ID)
	if got.LikesCount != users {
		t.Errorf("LikesCount = %d, want %d", got.LikesCount, users)
	}
	if got.LikesCount != f.likesFor(post.ID) {
		t.Errorf("LikesCount = %d, like index has %d", got.LikesCount, f.likesFor(post.ID))
	}
	if got.CommentsCount != users*togglesPerUser {
		t.Errorf("CommentsCount = %d, want %d", got.CommentsCount, users*togglesPerUser)
	}
}

func TestCancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.posts.CreatePost(ctx, "user-1", models.CreatePostRequest{Content: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("CreatePost err = %v, want context.Canceled", err)
	}
	if _, err := f.likes.ToggleLike(ctx, "user-1", "p"); !errors.Is(err, context.Canceled) {
		t.Errorf("ToggleLike err = %v, want context.Canceled", err)
	}
	if len(f.db.posts) != 0 || len(f.db.likes) != 0 {
		t.Error("cancelled calls must not mutate the store")
	}
}
