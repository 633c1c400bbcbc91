package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/service"
	"github.com/MKhiriev/go-contacts/internal/utils"
	"github.com/MKhiriev/go-contacts/models"
	"github.com/go-chi/chi/v5"
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

// fakeContactService implements service.ContactService. Each method field
// can be overridden per test case; unset fields panic when called.
type fakeContactService struct {
	listFn      func(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error)
	getFn       func(ctx context.Context, contactID, ownerID int64) (models.Contact, error)
	createFn    func(ctx context.Context, create models.ContactCreate, ownerID int64) (models.Contact, error)
	updateFn    func(ctx context.Context, contactID int64, update models.ContactUpdate, ownerID int64) (models.Contact, error)
	deleteFn    func(ctx context.Context, contactID, ownerID int64) (models.Contact, error)
	searchFn    func(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error)
	birthdaysFn func(ctx context.Context, ownerID int64, days int) ([]models.Contact, error)
}

func (f *fakeContactService) ListContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	return f.listFn(ctx, ownerID, filter)
}

func (f *fakeContactService) GetContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error) {
	return f.getFn(ctx, contactID, ownerID)
}

func (f *fakeContactService) CreateContact(ctx context.Context, create models.ContactCreate, ownerID int64) (models.Contact, error) {
	return f.createFn(ctx, create, ownerID)
}

func (f *fakeContactService) UpdateContact(ctx context.Context, contactID int64, update models.ContactUpdate, ownerID int64) (models.Contact, error) {
	return f.updateFn(ctx, contactID, update, ownerID)
}

func (f *fakeContactService) DeleteContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error) {
	return f.deleteFn(ctx, contactID, ownerID)
}

func (f *fakeContactService) SearchContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	return f.searchFn(ctx, ownerID, filter)
}

func (f *fakeContactService) UpcomingBirthdays(ctx context.Context, ownerID int64, days int) ([]models.Contact, error) {
	return f.birthdaysFn(ctx, ownerID, days)
}

type fakeAuthService struct {
	signupFn       func(ctx context.Context, signup models.UserSignup) (models.User, error)
	loginFn        func(ctx context.Context, login models.UserLogin) (models.TokenPair, error)
	refreshFn      func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	confirmEmailFn func(ctx context.Context, token string) (bool, error)
	requestEmailFn func(ctx context.Context, email string) (bool, error)
	currentUserFn  func(ctx context.Context, accessToken string) (models.User, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, signup models.UserSignup) (models.User, error) {
	return f.signupFn(ctx, signup)
}

func (f *fakeAuthService) Login(ctx context.Context, login models.UserLogin) (models.TokenPair, error) {
	return f.loginFn(ctx, login)
}

func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAuthService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	return f.confirmEmailFn(ctx, token)
}

func (f *fakeAuthService) RequestEmail(ctx context.Context, email string) (bool, error) {
	return f.requestEmailFn(ctx, email)
}

func (f *fakeAuthService) CurrentUser(ctx context.Context, accessToken string) (models.User, error) {
	return f.currentUserFn(ctx, accessToken)
}

type fakeUserService struct {
	updateAvatarFn func(ctx context.Context, user models.User, file io.Reader, size int64, contentType string) (models.User, error)
}

func (f *fakeUserService) UpdateAvatar(ctx context.Context, user models.User, file io.Reader, size int64, contentType string) (models.User, error) {
	return f.updateAvatarFn(ctx, user, file, size, contentType)
}

type fakeAppInfoService struct {
	build models.BuildInfoResponse
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string {
	return f.build.Version
}

func (f *fakeAppInfoService) GetBuildInfo(_ context.Context) models.BuildInfoResponse {
	return f.build
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testAccessToken = "access.jwt.token"

var testUser = models.User{ID: 7, Username: "alice", Email: "alice@example.com", Confirmed: true}

// newTestHandler builds a Handler without rate limiting around services.
// Nil service fields are replaced by empty fakes.
func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()

	if services == nil {
		services = &service.Services{}
	}
	if services.ContactService == nil {
		services.ContactService = &fakeContactService{}
	}
	if services.AuthService == nil {
		services.AuthService = &fakeAuthService{}
	}
	if services.UserService == nil {
		services.UserService = &fakeUserService{}
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &fakeAppInfoService{build: models.BuildInfoResponse{Version: "test"}}
	}

	return NewHandler(services, nil, config.App{AllowedOrigins: []string{"http://localhost:8000"}}, nil, logger.Nop())
}

// authService accepts testAccessToken for testUser and rejects anything else.
func authService() *fakeAuthService {
	return &fakeAuthService{
		currentUserFn: func(_ context.Context, token string) (models.User, error) {
			if token != testAccessToken {
				return models.User{}, service.ErrTokenIsExpiredOrInvalid
			}
			return testUser, nil
		},
	}
}

// withUserContext attaches testUser to the request the way the auth
// middleware does.
func withUserContext(r *http.Request) *http.Request {
	return r.WithContext(utils.WithUser(r.Context(), testUser))
}

// withURLParams attaches chi route parameters to a request that does not
// pass through the router.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serve sends req through the full router of h.
func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}
