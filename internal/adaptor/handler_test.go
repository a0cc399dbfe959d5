package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"villa-rental/internal/dto/request"
	"villa-rental/internal/dto/response"
	"villa-rental/internal/usecase"
	"villa-rental/pkg/apperror"
	"villa-rental/pkg/storage"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stubVillaService records what the handler passed in. Methods not
// overridden panic through the nil embedded interface.
type stubVillaService struct {
	usecase.VillaService
	query  *request.VillaQuery
	owner  utils.Principal
	create *request.CreateVillaRequest
	files  []usecase.FileUpload
	err    error
}

func (s *stubVillaService) GetVillas(_ context.Context, q *request.VillaQuery) (*response.PaginatedResponse[response.VillaResponse], error) {
	s.query = q
	return response.NewPaginatedResponse([]response.VillaResponse{}, q.Page, q.Limit(), 0), s.err
}

func (s *stubVillaService) GetVillaByID(_ context.Context, _ string) (*response.VillaDetailResponse, error) {
	return nil, s.err
}

func (s *stubVillaService) CreateVilla(_ context.Context, owner utils.Principal, req *request.CreateVillaRequest) (*response.VillaResponse, error) {
	s.owner = owner
	s.create = req
	if s.err != nil {
		return nil, s.err
	}
	return &response.VillaResponse{ID: uuid.NewString(), Name: req.Name, Status: "pending"}, nil
}

func (s *stubVillaService) UploadPhotos(_ context.Context, owner utils.Principal, _ string, files []usecase.FileUpload) ([]response.PhotoResponse, error) {
	s.owner = owner
	s.files = files
	return []response.PhotoResponse{}, s.err
}

type stubPaymentService struct {
	usecase.PaymentService
	monthRange string
	search     string
}

func (s *stubPaymentService) GetMonthlyReport(_ context.Context, _ utils.Principal, monthRange string) (*response.MonthlyReport, error) {
	s.monthRange = monthRange
	return &response.MonthlyReport{Range: monthRange}, nil
}

func (s *stubPaymentService) GetPayments(_ context.Context, q *request.PaymentQuery) (*response.PaginatedResponse[response.PaymentResponse], error) {
	s.search = q.Search
	return response.NewPaginatedResponse([]response.PaymentResponse{}, q.Page, q.Limit(), 0), nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func withPrincipal(r *http.Request, role utils.Role) (*http.Request, utils.Principal) {
	p := utils.Principal{ID: uuid.New(), Role: role}
	return r.WithContext(utils.SetPrincipal(r.Context(), p)), p
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantErrors bool
	}{
		{"validation", apperror.Validation("Validation failed", map[string]string{"price": "Must be greater than 0"}), http.StatusBadRequest, true},
		{"conflict", apperror.Conflict("Payment code already used", map[string]string{"code": "Already used"}), http.StatusBadRequest, true},
		{"not found", apperror.NotFound("Villa"), http.StatusNotFound, false},
		{"auth", apperror.Auth("You do not own this villa"), http.StatusForbidden, false},
		{"internal", apperror.Internal("Failed to get villa", errors.New("db down")), http.StatusInternalServerError, false},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			resp := decodeResponse(t, rec)
			if resp.Status {
				t.Fatal("status flag should be false")
			}
			if (resp.Errors != nil) != tt.wantErrors {
				t.Fatalf("errors = %v", resp.Errors)
			}
		})
	}
}

func TestCreateVillaRequiresOwner(t *testing.T) {
	svc := &stubVillaService{}
	h := NewVillaHandler(svc, zap.NewNop())

	body := `{"name":"Villa Ubud","category":"mountain","location":"Bali","price":1500000}`
	req := httptest.NewRequest(http.MethodPost, "/api/villas", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateVilla(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("without principal status = %d, want 403", rec.Code)
	}

	// a user principal is not an owner
	req, _ = withPrincipal(httptest.NewRequest(http.MethodPost, "/api/villas", strings.NewReader(body)), utils.RoleUser)
	rec = httptest.NewRecorder()
	h.CreateVilla(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user principal status = %d, want 403", rec.Code)
	}

	req, owner := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/villas", strings.NewReader(body)), utils.RoleOwner)
	rec = httptest.NewRecorder()
	h.CreateVilla(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("owner status = %d, want 201", rec.Code)
	}
	if svc.owner != owner {
		t.Fatalf("service got owner %+v, want %+v", svc.owner, owner)
	}
	if svc.create.Name != "Villa Ubud" || svc.create.Price != 1500000 {
		t.Fatalf("decoded request = %+v", svc.create)
	}
}

func TestCreateVillaInvalidBody(t *testing.T) {
	h := NewVillaHandler(&stubVillaService{}, zap.NewNop())

	req, _ := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/villas", strings.NewReader("{not json")), utils.RoleOwner)
	rec := httptest.NewRecorder()
	h.CreateVilla(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Invalid request body" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestGetVillasParsesQuery(t *testing.T) {
	svc := &stubVillaService{}
	h := NewVillaHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet,
		"/api/villas?category=beach&location=Lombok&min_price=500000&max_price=abc&search=%20pool%20&page=2&per_page=5", nil)
	rec := httptest.NewRecorder()
	h.GetVillas(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	q := svc.query
	if q.Category != "beach" || q.Location != "Lombok" || q.Search != "pool" {
		t.Fatalf("query = %+v", q)
	}
	if q.MinPrice == nil || *q.MinPrice != 500000 {
		t.Fatalf("min price = %v", q.MinPrice)
	}
	if q.MaxPrice != nil {
		t.Fatal("malformed max price should be ignored")
	}
	if q.Page != 2 || q.PerPage != 5 {
		t.Fatalf("pagination = %d/%d", q.Page, q.PerPage)
	}
}

func TestGetVillaByIDNotFound(t *testing.T) {
	h := NewVillaHandler(&stubVillaService{err: apperror.NotFound("Villa")}, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/villas/{id}", h.GetVillaByID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/villas/"+uuid.NewString(), nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Villa not found" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestUploadPhotosReadsMultipart(t *testing.T) {
	svc := &stubVillaService{}
	h := NewVillaHandler(svc, zap.NewNop())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, name := range []string{"depan.png", "kolam.png"} {
		part, err := mw.CreateFormFile("photos", name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		part.Write([]byte("data-" + name))
	}
	mw.Close()

	r := chi.NewRouter()
	r.Post("/api/villas/{id}/photos", h.UploadPhotos)

	req, _ := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/villas/"+uuid.NewString()+"/photos", &body), utils.RoleOwner)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(svc.files) != 2 {
		t.Fatalf("files = %d, want 2", len(svc.files))
	}
	if svc.files[1].Name != "kolam.png" || string(svc.files[1].Data) != "data-kolam.png" {
		t.Fatalf("second file = %s %q", svc.files[1].Name, svc.files[1].Data)
	}
}

func TestUploadPhotosRejectsNonMultipart(t *testing.T) {
	h := NewVillaHandler(&stubVillaService{}, zap.NewNop())

	req, _ := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/villas/x/photos", strings.NewReader("{}")), utils.RoleOwner)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.UploadPhotos(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMonthlyReportPassesRange(t *testing.T) {
	svc := &stubPaymentService{}
	h := NewPaymentHandler(svc, zap.NewNop())

	req, _ := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/owner/payments/monthly?range=7-12", nil), utils.RoleOwner)
	rec := httptest.NewRecorder()
	h.GetMonthlyReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.monthRange != "7-12" {
		t.Fatalf("range = %q", svc.monthRange)
	}
}

func TestGetPaymentsSearch(t *testing.T) {
	svc := &stubPaymentService{}
	h := NewPaymentHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetPayments(rec, httptest.NewRequest(http.MethodGet, "/api/payments?search=+INV-01+", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.search != "INV-01" {
		t.Fatalf("search = %q", svc.search)
	}
}

type stubUserService struct {
	usecase.UserService
	caller   utils.Principal
	password *request.ChangePasswordRequest
	photo    *usecase.FileUpload
}

func (s *stubUserService) GetMe(_ context.Context, user utils.Principal) (*response.UserResponse, error) {
	s.caller = user
	return &response.UserResponse{ID: user.ID.String()}, nil
}

func (s *stubUserService) ChangePassword(_ context.Context, user utils.Principal, req *request.ChangePasswordRequest) error {
	s.caller = user
	s.password = req
	return nil
}

func (s *stubUserService) UploadProfilePhoto(_ context.Context, user utils.Principal, file usecase.FileUpload) (*response.UserResponse, error) {
	s.caller = user
	s.photo = &file
	return &response.UserResponse{ID: user.ID.String()}, nil
}

func TestAccountRoutesAcceptOwner(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc, zap.NewNop())

	req, owner := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/users/me", nil), utils.RoleOwner)
	rec := httptest.NewRecorder()
	h.GetMe(rec, req)
	if rec.Code != http.StatusOK || svc.caller != owner {
		t.Fatalf("owner GetMe status = %d caller = %+v", rec.Code, svc.caller)
	}

	body := `{"current_password":"rahasia123","new_password":"passwordbaru"}`
	req, owner = withPrincipal(httptest.NewRequest(http.MethodPut, "/api/users/me/password", strings.NewReader(body)), utils.RoleOwner)
	rec = httptest.NewRecorder()
	h.ChangePassword(rec, req)
	if rec.Code != http.StatusOK || svc.caller != owner {
		t.Fatalf("owner ChangePassword status = %d caller = %+v", rec.Code, svc.caller)
	}

	req, _ = withPrincipal(httptest.NewRequest(http.MethodGet, "/api/users/me", nil), utils.RoleAdmin)
	rec = httptest.NewRecorder()
	h.GetMe(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin GetMe status = %d, want 403", rec.Code)
	}
}

func TestDecodeJSONRejectsOversizedBody(t *testing.T) {
	svc := &stubVillaService{}
	h := NewVillaHandler(svc, zap.NewNop())

	body := `{"name":"Villa Ubud","description":"` + strings.Repeat("a", maxJSONBody) + `"}`
	req, _ := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/villas", strings.NewReader(body)), utils.RoleOwner)
	rec := httptest.NewRecorder()
	h.CreateVilla(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if svc.create != nil {
		t.Fatal("service called with an oversized body")
	}
}

func TestUploadRejectsOversizedBody(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc, zap.NewNop())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", "besar.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(bytes.Repeat([]byte{0}, storage.MaxImageSize+2*uploadSlack))
	mw.Close()

	req, _ := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/users/me/photo", &body), utils.RoleUser)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.UploadPhoto(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if svc.photo != nil {
		t.Fatal("service called with an oversized upload")
	}
}
