package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/kcouncil/portal/internal/db"
	"github.com/kcouncil/portal/internal/media"
	"github.com/kcouncil/portal/internal/models"
	"github.com/kcouncil/portal/internal/services"
	"gorm.io/gorm"
)

// recordingMailer captures reset mails instead of dialing SMTP.
type recordingMailer struct {
	mu   sync.Mutex
	sent []recordedMail
	fail bool
}

type recordedMail struct {
	To       string
	ResetURL string
}

func (mailer *recordingMailer) SendPasswordReset(to string, resetURL string) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if mailer.fail {
		return errMailerDown
	}
	mailer.sent = append(mailer.sent, recordedMail{To: to, ResetURL: resetURL})
	return nil
}

func (mailer *recordingMailer) lastMail(t *testing.T) recordedMail {
	t.Helper()
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) == 0 {
		t.Fatal("no reset mail was sent")
	}
	return mailer.sent[len(mailer.sent)-1]
}

var errMailerDown = fiber.NewError(fiber.StatusServiceUnavailable, "smtp unavailable")

type testPortal struct {
	app       *fiber.App
	database  *gorm.DB
	mailer    *recordingMailer
	mediaRoot string
}

func newTestPortal(t *testing.T) *testPortal {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}
	templatesDir := filepath.Join(filepath.Dir(filepath.Dir(testFile)), "templates")

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "portal-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	mediaRoot := t.TempDir()
	mediaStore, err := media.NewStore(mediaRoot, nil)
	if err != nil {
		t.Fatalf("init media store: %v", err)
	}

	resetMailer := &recordingMailer{}
	handler, err := NewHandler(database, nil, templatesDir, mediaStore, resetMailer, "http://portal.test")
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)

	return &testPortal{
		app:       app,
		database:  database,
		mailer:    resetMailer,
		mediaRoot: mediaRoot,
	}
}

func createPortalUser(t *testing.T, database *gorm.DB, membershipNumber string, email string, password string, isAdmin bool) models.User {
	t.Helper()

	var emailPtr *string
	if email != "" {
		emailPtr = &email
	}
	user := models.User{
		MembershipNumber: membershipNumber,
		FirstName:        "Test",
		LastName:         "Member",
		Email:            emailPtr,
		IsAdmin:          isAdmin,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if password != "" {
		hash, err := services.HashPassword(password)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		credential := models.Credential{MembershipNumber: membershipNumber, PasswordHash: hash}
		if err := database.Create(&credential).Error; err != nil {
			t.Fatalf("create credential: %v", err)
		}
	}
	return user
}

func loginAndExtractSessionCookie(t *testing.T, app *fiber.App, username string, password string) string {
	t.Helper()

	response := postForm(t, app, "/login", "", url.Values{
		"username": {username},
		"password": {password},
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}
	for _, cookie := range response.Cookies() {
		if cookie.Name == "user_id" && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("session cookie is missing in login response")
	return ""
}

func getPage(t *testing.T, app *fiber.App, path string, sessionCookie string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionCookie != "" {
		request.Header.Set("Cookie", sessionCookie)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return response
}

func postForm(t *testing.T, app *fiber.App, path string, sessionCookie string, form url.Values) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sessionCookie != "" {
		request.Header.Set("Cookie", sessionCookie)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return response
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func requireStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, response.StatusCode)
	}
}

func requireContains(t *testing.T, body string, fragment string) {
	t.Helper()
	if !strings.Contains(body, fragment) {
		t.Fatalf("expected body to contain %q, got:\n%s", fragment, body)
	}
}
