package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photo-sharing-backend/internal/auth"
	"photo-sharing-backend/internal/models"
	"photo-sharing-backend/internal/repository"
	"photo-sharing-backend/internal/storage"
	"photo-sharing-backend/internal/store"
)

type testEnv struct {
	client   *store.Client
	imageDir string
	users    *UserService
	photos   *PhotoService
	comments *CommentService
	gallery  *GalleryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	client, err := store.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	dir := t.TempDir()
	images, err := storage.NewLocalStore(dir)
	if err != nil {
		t.Fatalf("new image store: %v", err)
	}

	photos := NewPhotoService(client.Photos, client.Users, images, "http://localhost:3001", nil)
	return &testEnv{
		client:   client,
		imageDir: dir,
		users:    NewUserService(client.Users),
		photos:   photos,
		comments: NewCommentService(client.Comments, client.Photos, client.Users, nil),
		gallery:  NewGalleryService(client.Users, client.Comments, photos),
	}
}

func (e *testEnv) register(t *testing.T, login, first, last string) *models.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), RegisterRequest{
		LoginName: login,
		Password:  "pw-" + login,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		t.Fatalf("register %s: %v", login, err)
	}
	return user
}

func (e *testEnv) upload(t *testing.T, ownerID, name, body string) *models.PhotoView {
	t.Helper()
	photo, err := e.photos.Upload(context.Background(), ownerID, UploadInput{
		File:         strings.NewReader(body),
		OriginalName: name,
		ContentType:  "image/jpeg",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return photo
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   RegisterRequest
		field string
	}{
		{"missing login", RegisterRequest{Password: "p", FirstName: "A", LastName: "B"}, "login_name"},
		{"missing password", RegisterRequest{LoginName: "a", FirstName: "A", LastName: "B"}, "password"},
		{"blank first name", RegisterRequest{LoginName: "a", Password: "p", FirstName: "  ", LastName: "B"}, "first_name"},
		{"missing last name", RegisterRequest{LoginName: "a", Password: "p", FirstName: "A"}, "last_name"},
		{"bad birthday", RegisterRequest{LoginName: "a", Password: "p", FirstName: "A", LastName: "B", Birthday: "yesterday"}, "birthday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.users.Register(ctx, tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Fatalf("expected field %q, got %q (%s)", tt.field, verr.Field, verr.Message)
			}
		})
	}
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 72 runes pass the length tag but take 144 bytes
	_, err := env.users.Register(ctx, RegisterRequest{
		LoginName: "wide", Password: strings.Repeat("é", 72), FirstName: "W", LastName: "D",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" {
		t.Fatalf("expected password ValidationError, got %v", err)
	}
	if _, err := env.users.FindByLoginName(ctx, "wide"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("rejected user should not be stored, got %v", err)
	}

	// 36 two-byte runes sit exactly at the limit
	if _, err := env.users.Register(ctx, RegisterRequest{
		LoginName: "edge", Password: strings.Repeat("é", 36), FirstName: "E", LastName: "D",
	}); err != nil {
		t.Fatalf("password at the byte limit should register: %v", err)
	}
}

func TestRegisterDuplicateLoginName(t *testing.T) {
	env := newTestEnv(t)
	first := env.register(t, "van", "Van", "Doan")
	if first.Password == "pw-van" || first.Password == "" {
		t.Fatalf("password should be stored hashed")
	}

	_, err := env.users.Register(context.Background(), RegisterRequest{
		LoginName: "van", Password: "other", FirstName: "V", LastName: "D",
	})
	if !errors.Is(err, ErrLoginNameTaken) {
		t.Fatalf("expected ErrLoginNameTaken, got %v", err)
	}
}

func TestRegisterOptionalFields(t *testing.T) {
	env := newTestEnv(t)
	user, err := env.users.Register(context.Background(), RegisterRequest{
		LoginName: "kim", Password: "pw", FirstName: "Kim", LastName: "Tran",
		Occupation: "Photographer", Birthday: "1995-07-14",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := env.users.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Occupation != "Photographer" {
		t.Fatalf("unexpected occupation %q", got.Occupation)
	}
	if got.Birthday == nil || got.Birthday.Format("2006-01-02") != "1995-07-14" {
		t.Fatalf("unexpected birthday %v", got.Birthday)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Fatalf("hash should verify against the original password")
	}
	for _, other := range []string{"", "correct horse ", "Correct horse", "battery"} {
		if CheckPassword(hash, other) {
			t.Fatalf("hash verified against %q", other)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "van", "Van", "Doan")
	ctx := context.Background()

	user, err := env.users.Authenticate(ctx, LoginRequest{LoginName: "van", Password: "pw-van"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.LoginName != "van" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := env.users.Authenticate(ctx, LoginRequest{LoginName: "van", Password: "nope"}); !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
	if _, err := env.users.Authenticate(ctx, LoginRequest{LoginName: "ghost", Password: "pw"}); !errors.Is(err, ErrCannotFindUser) {
		t.Fatalf("expected ErrCannotFindUser, got %v", err)
	}
	var verr *ValidationError
	if _, err := env.users.Authenticate(ctx, LoginRequest{LoginName: "van"}); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFindAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "b", "Bao", "Nguyen")
	env.register(t, "a", "An", "Le")

	if _, err := env.users.FindByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := env.users.FindByLoginName(ctx, "b"); err != nil {
		t.Fatalf("find by login: %v", err)
	}

	users, err := env.users.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].LastName != "Le" {
		t.Fatalf("expected users ordered by last name, got %+v", users)
	}
}

func TestUploadPhoto(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "van", "Van", "Doan")
	ctx := context.Background()

	photo := env.upload(t, owner.ID, "Holiday.JPG", "jpeg-bytes")
	if !strings.HasSuffix(photo.Filename, ".jpg") {
		t.Fatalf("expected lower-cased extension kept, got %q", photo.Filename)
	}
	if photo.URL != "http://localhost:3001/images/"+photo.Filename {
		t.Fatalf("unexpected url %q", photo.URL)
	}
	if photo.UserID != owner.ID {
		t.Fatalf("unexpected owner %q", photo.UserID)
	}

	data, err := os.ReadFile(filepath.Join(env.imageDir, photo.Filename))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected file contents %q", data)
	}

	list, err := env.photos.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != photo.ID || list[0].URL != photo.URL {
		t.Fatalf("expected uploaded photo listed, got %+v", list)
	}

	entries, err := os.ReadDir(env.imageDir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one stored file, got %d", len(entries))
	}
}

func TestUploadRejectsMissingFileAndCaller(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.photos.Upload(ctx, "", UploadInput{File: strings.NewReader("x")}); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	var verr *ValidationError
	if _, err := env.photos.Upload(ctx, "someone", UploadInput{}); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

type failingPhotos struct {
	repository.PhotoStore
}

func (failingPhotos) Create(context.Context, *models.Photo) error {
	return errors.New("disk full")
}

func TestUploadRemovesFileWhenRecordFails(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "van", "Van", "Doan")
	images, err := storage.NewLocalStore(env.imageDir)
	if err != nil {
		t.Fatalf("new image store: %v", err)
	}
	photos := NewPhotoService(failingPhotos{PhotoStore: env.client.Photos}, env.client.Users, images, "", nil)

	_, err = photos.Upload(context.Background(), owner.ID, UploadInput{
		File: strings.NewReader("x"), OriginalName: "a.png",
	})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected record failure, got %v", err)
	}
	entries, err := os.ReadDir(env.imageDir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected orphaned file removed, found %d", len(entries))
	}
}

func TestUnknownCallerIsUserNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "van", "Van", "Doan")
	photo := env.upload(t, owner.ID, "a.jpg", "x")
	ctx := context.Background()

	_, err := env.photos.Upload(ctx, "no-such-user", UploadInput{
		File: strings.NewReader("y"), OriginalName: "b.png",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("upload: expected ErrUserNotFound, got %v", err)
	}
	_, err = env.comments.Create(ctx, photo.ID, "no-such-user", "hi")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("comment: expected ErrUserNotFound, got %v", err)
	}

	entries, err := os.ReadDir(env.imageDir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("nothing should be stored for an unknown owner, found %d files", len(entries))
	}
}

func TestUniqueFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name, err := uniqueFilename("photo.PNG", now)
		if err != nil {
			t.Fatalf("unique filename: %v", err)
		}
		if !strings.HasPrefix(name, "1700000000123-") || !strings.HasSuffix(name, ".png") {
			t.Fatalf("unexpected filename %q", name)
		}
		if seen[name] {
			t.Fatalf("duplicate filename %q", name)
		}
		seen[name] = true
	}

	name, err := uniqueFilename("weird.<script>", now)
	if err != nil {
		t.Fatalf("unique filename: %v", err)
	}
	if strings.Contains(name, "<") {
		t.Fatalf("suspicious extension kept: %q", name)
	}
}

func TestCreateComment(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "van", "Van", "Doan")
	friend := env.register(t, "kim", "Kim", "Tran")
	photo := env.upload(t, owner.ID, "a.jpg", "x")
	ctx := context.Background()

	comment, err := env.comments.Create(ctx, photo.ID, friend.ID, "  nice shot  ")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.Text != "nice shot" {
		t.Fatalf("expected trimmed text, got %q", comment.Text)
	}
	if comment.User.FirstName != "Kim" || comment.User.LastName != "Tran" || comment.User.ID != friend.ID {
		t.Fatalf("author not resolved: %+v", comment.User)
	}

	var verr *ValidationError
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := env.comments.Create(ctx, photo.ID, friend.ID, text); !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError for %q, got %v", text, err)
		}
	}
	if _, err := env.comments.Create(ctx, "missing-photo", friend.ID, "hi"); !errors.Is(err, ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}
	if _, err := env.comments.Create(ctx, photo.ID, "", "hi"); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserPhotosWithComments(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "van", "Van", "Doan")
	friend := env.register(t, "kim", "Kim", "Tran")
	ctx := context.Background()

	first := env.upload(t, owner.ID, "a.jpg", "a")
	second := env.upload(t, owner.ID, "b.jpg", "b")

	base := time.Now()
	step := 0
	env.comments.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	for _, c := range []struct {
		photo, author, text string
	}{
		{first.ID, friend.ID, "oldest"},
		{first.ID, owner.ID, "middle"},
		{first.ID, friend.ID, "newest"},
		{second.ID, friend.ID, "only"},
	} {
		if _, err := env.comments.Create(ctx, c.photo, c.author, c.text); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	gallery, err := env.gallery.UserPhotosWithComments(ctx, owner.ID)
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if gallery.User.ID != owner.ID || gallery.User.FirstName != "Van" {
		t.Fatalf("unexpected user %+v", gallery.User)
	}
	if len(gallery.Photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(gallery.Photos))
	}

	byID := map[string]models.PhotoWithComments{}
	for _, p := range gallery.Photos {
		byID[p.ID] = p
	}
	got := byID[first.ID].Comments
	if len(got) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(got))
	}
	want := []string{"newest", "middle", "oldest"}
	for i, c := range got {
		if c.Text != want[i] {
			t.Fatalf("comment %d: expected %q, got %q", i, want[i], c.Text)
		}
	}
	if got[1].User.FirstName != "Van" || got[0].User.FirstName != "Kim" {
		t.Fatalf("authors not resolved: %+v %+v", got[0].User, got[1].User)
	}
	if len(byID[second.ID].Comments) != 1 {
		t.Fatalf("expected 1 comment on second photo")
	}
	if byID[second.ID].URL == "" {
		t.Fatalf("expected photo url")
	}
}

func TestUserPhotosWithCommentsUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.gallery.UserPhotosWithComments(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserPhotosWithCommentsNoPhotos(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "van", "Van", "Doan")

	gallery, err := env.gallery.UserPhotosWithComments(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if gallery.Photos == nil || len(gallery.Photos) != 0 {
		t.Fatalf("expected empty photo list, got %#v", gallery.Photos)
	}
}

type failingComments struct {
	repository.CommentStore
	failOn string
}

func (f failingComments) ListByPhotoID(ctx context.Context, photoID string) ([]models.CommentView, error) {
	if photoID == f.failOn {
		return nil, errors.New("connection reset")
	}
	return f.CommentStore.ListByPhotoID(ctx, photoID)
}

func TestUserPhotosWithCommentsPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "van", "Van", "Doan")
	env.upload(t, owner.ID, "a.jpg", "a")
	broken := env.upload(t, owner.ID, "b.jpg", "b")

	gallery := NewGalleryService(env.client.Users, failingComments{CommentStore: env.client.Comments, failOn: broken.ID}, env.photos)
	_, err := gallery.UserPhotosWithComments(context.Background(), owner.ID)
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected the sub-fetch failure to fail the request, got %v", err)
	}
	if errors.Is(err, ErrUserNotFound) {
		t.Fatalf("failure should not look like a missing user")
	}
}
