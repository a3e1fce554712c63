package authapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/communitycare/carehub/internal/app/features/authapi"
	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/app/system/auth"
	"github.com/communitycare/carehub/internal/app/system/indexes"
	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/communitycare/carehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*authapi.Handler, *userstore.Store, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)
	return &authapi.Handler{
		Users:  users,
		Tokens: auth.NewTokenManager("test-secret", time.Hour),
		Log:    zap.NewNop(),
	}, users, db
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, postJSON("/auth/register", `{
		"full_name": "New Person",
		"email": "new@example.com",
		"password": "password123",
		"role": "Volunteer"
	}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var u models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if u.ApprovalStatus.Status != models.StatusPending {
		t.Errorf("new account status = %q, want pending", u.ApprovalStatus.Status)
	}
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, postJSON("/auth/register", `{
		"full_name": "Sneaky",
		"email": "sneaky@example.com",
		"password": "password123",
		"role": "Admin"
	}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a self-granted admin role", rec.Code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, users, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The conflict is reported through the unique email index.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := users.Create(ctx, models.User{
		FullName: "Existing", Email: "taken@example.com", Role: models.RoleSeeker,
	}, "password123"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Register(rec, postJSON("/auth/register", `{
		"full_name": "Second",
		"email": "taken@example.com",
		"password": "password123",
		"role": "Support Seeker"
	}`))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	h, users, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := users.Create(ctx, models.User{
		FullName: "Login User", Email: "login@example.com", Role: models.RoleSeeker,
	}, "password123")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	// Pending accounts cannot sign in.
	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/auth/login", `{"email":"login@example.com","password":"password123"}`))
	if rec.Code != http.StatusForbidden {
		t.Errorf("pending login status = %d, want 403", rec.Code)
	}

	if err := users.SetApproval(ctx, created.ID, models.ApprovalStatus{Status: models.StatusApproved}); err != nil {
		t.Fatalf("approve user: %v", err)
	}

	rec = httptest.NewRecorder()
	h.Login(rec, postJSON("/auth/login", `{"email":"login@example.com","password":"password123"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("approved login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" {
		t.Error("expected a bearer token in the response")
	}

	// Wrong password gets the same generic 401 as an unknown email.
	rec = httptest.NewRecorder()
	h.Login(rec, postJSON("/auth/login", `{"email":"login@example.com","password":"wrong"}`))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.Login(rec, postJSON("/auth/login", `{"email":"nobody@example.com","password":"password123"}`))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d, want 401", rec.Code)
	}
}

func TestMe(t *testing.T) {
	h, users, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := users.Create(ctx, models.User{
		FullName: "Me User", Email: "me@example.com", Role: models.RoleSeeker,
	}, "password123")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("GET", "/auth/me", nil), created)
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var u models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("returned user %v, want %v", u.ID, created.ID)
	}
}
