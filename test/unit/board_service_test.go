package unit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MexicoHamburger/Copoto/config"
	"github.com/MexicoHamburger/Copoto/internal/domain"
	"github.com/MexicoHamburger/Copoto/internal/usecase"
	pkglog "github.com/MexicoHamburger/Copoto/pkg/log"
)

var (
	alice = &domain.User{ID: "alice", Nickname: "Alice"}
	bob   = &domain.User{ID: "bob", Nickname: "Bob"}
)

func boardConfig() *config.Config {
	return &config.Config{ModerationFailOpen: true, TempPostLimit: 10}
}

type boardDeps struct {
	posts      *mockPostRepo
	comments   *mockCommentRepo
	drafts     *mockTempPostRepo
	users      *mockUserRepo
	classifier *stubClassifier
	events     *recordingPublisher
	cfg        *config.Config
}

func newBoardDeps() *boardDeps {
	return &boardDeps{
		posts:      newMockPostRepo(),
		comments:   newMockCommentRepo(),
		drafts:     newMockTempPostRepo(),
		users:      newMockUserRepo(),
		classifier: &stubClassifier{flagged: map[string]bool{}},
		events:     &recordingPublisher{},
		cfg:        boardConfig(),
	}
}

func newPostService(deps *boardDeps) usecase.PostService {
	return usecase.NewPostService(deps.cfg, pkglog.New("test"), deps.posts, deps.classifier, deps.events)
}

func newCommentService(deps *boardDeps) usecase.CommentService {
	return usecase.NewCommentService(deps.cfg, pkglog.New("test"), deps.comments, deps.posts, deps.users, deps.classifier)
}

func newTempPostService(deps *boardDeps) usecase.TempPostService {
	return usecase.NewTempPostService(deps.cfg, pkglog.New("test"), deps.drafts, deps.classifier)
}

func createPost(t *testing.T, svc usecase.PostService, owner *domain.User, title string) *domain.Post {
	t.Helper()
	post, err := svc.Create(context.Background(), "trace", owner, title, "contents", "free")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestPostCreateRequiresIdentity(t *testing.T) {
	svc := newPostService(newBoardDeps())
	if _, err := svc.Create(context.Background(), "trace", nil, "title", "contents", "free"); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("want authentication required, got %v", err)
	}
}

func TestPostCreateSetsOwnerAndPublishes(t *testing.T) {
	deps := newBoardDeps()
	svc := newPostService(deps)
	post := createPost(t, svc, alice, "hello")
	if post.UserID != alice.ID {
		t.Fatalf("owner = %q, want %q", post.UserID, alice.ID)
	}
	if len(deps.events.posts) != 1 || deps.events.posts[0] != post.PostID {
		t.Fatalf("creation event not published: %v", deps.events.posts)
	}
}

func TestPostGetIncrementsViewCount(t *testing.T) {
	deps := newBoardDeps()
	svc := newPostService(deps)
	post := createPost(t, svc, alice, "hello")

	for i := 0; i < 3; i++ {
		if _, err := svc.Get(context.Background(), post.PostID); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	stored, _ := deps.posts.FindByID(context.Background(), post.PostID)
	if stored.ViewCount != 3 {
		t.Fatalf("view count = %d, want 3", stored.ViewCount)
	}
}

func TestPostUpdateDeniedForNonOwner(t *testing.T) {
	deps := newBoardDeps()
	svc := newPostService(deps)
	post := createPost(t, svc, alice, "hello")

	if _, err := svc.Update(context.Background(), "trace", bob, post.PostID, "hijack", "", ""); !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("want authorization denied, got %v", err)
	}
	stored, _ := deps.posts.FindByID(context.Background(), post.PostID)
	if stored.Title != "hello" {
		t.Fatalf("post was modified despite denial: %q", stored.Title)
	}

	if err := svc.Delete(context.Background(), "trace", bob, post.PostID); !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("delete: want authorization denied, got %v", err)
	}
	if _, err := deps.posts.FindByID(context.Background(), post.PostID); err != nil {
		t.Fatalf("post deleted despite denial")
	}
}

func TestPostUpdateDeniedForAnonymous(t *testing.T) {
	deps := newBoardDeps()
	svc := newPostService(deps)
	post := createPost(t, svc, alice, "hello")

	// Missing identity reads as unauthenticated, not forbidden.
	if _, err := svc.Update(context.Background(), "trace", nil, post.PostID, "hijack", "", ""); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("want authentication required, got %v", err)
	}
}

func TestPostUpdateAppliesNonEmptyFields(t *testing.T) {
	deps := newBoardDeps()
	svc := newPostService(deps)
	post := createPost(t, svc, alice, "hello")

	updated, err := svc.Update(context.Background(), "trace", alice, post.PostID, "", "new contents", "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "hello" || updated.Contents != "new contents" {
		t.Fatalf("partial update wrong: %+v", updated)
	}
	if _, err := svc.Update(context.Background(), "trace", alice, post.PostID, "", "", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty update: want validation error, got %v", err)
	}
}

func TestPostCreateRejectedByModeration(t *testing.T) {
	deps := newBoardDeps()
	deps.classifier.flagged["nasty"] = true
	svc := newPostService(deps)

	if _, err := svc.Create(context.Background(), "trace", alice, "nasty", "contents", "free"); !errors.Is(err, domain.ErrModerationRejected) {
		t.Fatalf("want moderation rejected, got %v", err)
	}
	if len(deps.posts.posts) != 0 {
		t.Fatalf("flagged post was persisted")
	}
}

func TestPostCreateFailOpenOnClassifierError(t *testing.T) {
	deps := newBoardDeps()
	deps.classifier.err = fmt.Errorf("classifier down")
	svc := newPostService(deps)

	post, err := svc.Create(context.Background(), "trace", alice, "hello", "contents", "free")
	if err != nil {
		t.Fatalf("fail-open create: %v", err)
	}
	if post.PostID == 0 {
		t.Fatalf("post not persisted")
	}
}

func TestPostCreateFailClosedOnClassifierError(t *testing.T) {
	deps := newBoardDeps()
	deps.cfg.ModerationFailOpen = false
	deps.classifier.err = fmt.Errorf("classifier down")
	svc := newPostService(deps)

	if _, err := svc.Create(context.Background(), "trace", alice, "hello", "contents", "free"); err == nil {
		t.Fatalf("fail-closed create should fail when the classifier is down")
	}
	if len(deps.posts.posts) != 0 {
		t.Fatalf("post was persisted despite moderation failure")
	}
}

func TestCommentCreateRequiresExistingPost(t *testing.T) {
	deps := newBoardDeps()
	svc := newCommentService(deps)
	if _, err := svc.Create(context.Background(), "trace", alice, 99, "hi"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestCommentOwnershipEnforced(t *testing.T) {
	deps := newBoardDeps()
	post := createPost(t, newPostService(deps), alice, "hello")
	svc := newCommentService(deps)

	comment, err := svc.Create(context.Background(), "trace", alice, post.PostID, "first")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := svc.Update(context.Background(), "trace", bob, comment.ID, "edited"); !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("update: want authorization denied, got %v", err)
	}
	if err := svc.Delete(context.Background(), "trace", bob, comment.ID); !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("delete: want authorization denied, got %v", err)
	}

	updated, err := svc.Update(context.Background(), "trace", alice, comment.ID, "edited")
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("content = %q", updated.Content)
	}
	if err := svc.Delete(context.Background(), "trace", alice, comment.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestCommentCreateRejectedByModeration(t *testing.T) {
	deps := newBoardDeps()
	post := createPost(t, newPostService(deps), alice, "hello")
	deps.classifier.flagged["slur"] = true
	svc := newCommentService(deps)

	if _, err := svc.Create(context.Background(), "trace", alice, post.PostID, "slur"); !errors.Is(err, domain.ErrModerationRejected) {
		t.Fatalf("want moderation rejected, got %v", err)
	}
	if len(deps.comments.comments) != 0 {
		t.Fatalf("flagged comment was persisted")
	}
}

func TestCommentByUserRequiresExistingUser(t *testing.T) {
	deps := newBoardDeps()
	svc := newCommentService(deps)
	if _, err := svc.ByUser(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestTempPostCapEvictsOldest(t *testing.T) {
	deps := newBoardDeps()
	svc := newTempPostService(deps)

	// Spread creation times so eviction order is unambiguous.
	base := time.Now().Add(-time.Hour)
	var firstID uint
	for i := 0; i < deps.cfg.TempPostLimit; i++ {
		draft := &domain.TempPost{Title: fmt.Sprintf("draft %d", i), Contents: "c", UserID: alice.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := deps.drafts.Create(context.Background(), draft); err != nil {
			t.Fatalf("seed draft: %v", err)
		}
		if i == 0 {
			firstID = draft.ID
		}
	}

	saved, err := svc.Save(context.Background(), "trace", alice, "one more", "contents")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	count, _ := deps.drafts.CountByUser(context.Background(), alice.ID)
	if count != int64(deps.cfg.TempPostLimit) {
		t.Fatalf("draft count = %d, want %d", count, deps.cfg.TempPostLimit)
	}
	if _, err := deps.drafts.FindByID(context.Background(), firstID); err == nil {
		t.Fatalf("oldest draft survived the cap")
	}
	if _, err := deps.drafts.FindByID(context.Background(), saved.ID); err != nil {
		t.Fatalf("new draft missing: %v", err)
	}
}

func TestTempPostCapIsPerUser(t *testing.T) {
	deps := newBoardDeps()
	svc := newTempPostService(deps)

	for i := 0; i < deps.cfg.TempPostLimit; i++ {
		if _, err := svc.Save(context.Background(), "trace", alice, fmt.Sprintf("draft %d", i), "c"); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if _, err := svc.Save(context.Background(), "trace", bob, "bob draft", "c"); err != nil {
		t.Fatalf("save for other user: %v", err)
	}
	count, _ := deps.drafts.CountByUser(context.Background(), bob.ID)
	if count != 1 {
		t.Fatalf("bob draft count = %d, want 1", count)
	}
}

func TestTempPostsArePrivate(t *testing.T) {
	deps := newBoardDeps()
	svc := newTempPostService(deps)

	draft, err := svc.Save(context.Background(), "trace", alice, "secret draft", "c")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Get(context.Background(), bob, draft.ID); !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("get: want authorization denied, got %v", err)
	}
	if err := svc.Delete(context.Background(), "trace", bob, draft.ID); !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("delete: want authorization denied, got %v", err)
	}
	if _, err := svc.List(context.Background(), nil); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("list: want authentication required, got %v", err)
	}

	drafts, err := svc.List(context.Background(), alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("draft count = %d, want 1", len(drafts))
	}
}
