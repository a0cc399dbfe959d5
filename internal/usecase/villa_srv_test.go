package usecase

import (
	"context"
	"errors"
	"testing"

	"villa-rental/internal/data/entity"
	"villa-rental/internal/data/repository"
	"villa-rental/internal/dto/request"
	"villa-rental/pkg/apperror"
	"villa-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var pngData = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func ownerPrincipal() utils.Principal {
	return utils.Principal{ID: uuid.New(), Role: utils.RoleOwner}
}

func userPrincipal() utils.Principal {
	return utils.Principal{ID: uuid.New(), Role: utils.RoleUser}
}

func createVilla(t *testing.T, env *testEnv, owner utils.Principal) uuid.UUID {
	t.Helper()
	resp, err := env.svc.Villa.CreateVilla(context.Background(), owner, &request.CreateVillaRequest{
		Name:     "Villa Ubud",
		Category: "resort",
		Location: "Bali",
		Price:    1000,
	})
	if err != nil {
		t.Fatalf("CreateVilla: %v", err)
	}
	return uuid.MustParse(resp.ID)
}

func TestCreateVillaStartsPending(t *testing.T) {
	env := newTestEnv()
	owner := ownerPrincipal()

	resp, err := env.svc.Villa.CreateVilla(context.Background(), owner, &request.CreateVillaRequest{
		Name:     "  Villa Ubud ",
		Category: "resort",
		Location: "Bali",
		Price:    1500,
	})
	if err != nil {
		t.Fatalf("CreateVilla: %v", err)
	}
	if resp.Status != entity.VillaStatusPending {
		t.Fatalf("status = %s, want pending", resp.Status)
	}
	if resp.Name != "Villa Ubud" {
		t.Fatalf("name = %q", resp.Name)
	}
	if resp.OwnerID != owner.ID.String() {
		t.Fatalf("owner = %s", resp.OwnerID)
	}
	if len(resp.PhotoIDs) != 0 || len(resp.ReviewIDs) != 0 {
		t.Fatalf("expected empty reference lists")
	}
}

func TestCreateVillaValidation(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Villa.CreateVilla(context.Background(), ownerPrincipal(), &request.CreateVillaRequest{})
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	fields := err.(*apperror.Error).Fields
	for _, f := range []string{"name", "category", "location", "price"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("missing field error for %s", f)
		}
	}
}

func TestUpdateVillaResetsStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := ownerPrincipal()
	id := createVilla(t, env, owner)

	if _, err := env.svc.Villa.UpdateVillaStatus(ctx, id.String(), &request.UpdateVillaStatusRequest{Status: "success"}); err != nil {
		t.Fatalf("UpdateVillaStatus: %v", err)
	}
	if env.db.villas[id].Status != entity.VillaStatusSuccess {
		t.Fatalf("status not approved")
	}

	price := 2000.0
	resp, err := env.svc.Villa.UpdateVilla(ctx, owner, id.String(), &request.UpdateVillaRequest{Price: &price})
	if err != nil {
		t.Fatalf("UpdateVilla: %v", err)
	}
	if resp.Status != entity.VillaStatusPending {
		t.Fatalf("status = %s, want pending", resp.Status)
	}
	if resp.Price != 2000 {
		t.Fatalf("price = %v", resp.Price)
	}
}

func TestUpdateVillaRequiresOwner(t *testing.T) {
	env := newTestEnv()
	id := createVilla(t, env, ownerPrincipal())

	name := "Taken"
	_, err := env.svc.Villa.UpdateVilla(context.Background(), ownerPrincipal(), id.String(), &request.UpdateVillaRequest{Name: &name})
	if !apperror.Is(err, apperror.KindAuth) {
		t.Fatalf("err = %v, want auth", err)
	}
}

func TestGetVillaByIDUnknownAndInvalid(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.Villa.GetVillaByID(ctx, uuid.NewString())
	if !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}

	_, err = env.svc.Villa.GetVillaByID(ctx, "not-a-uuid")
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestGetVillasFilters(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := ownerPrincipal()

	for _, v := range []request.CreateVillaRequest{
		{Name: "Sea Breeze", Category: "beach", Location: "Lombok", Price: 500},
		{Name: "Hill Top", Category: "mountain", Location: "Bandung", Price: 900},
		{Name: "Sea Shell", Category: "beach", Location: "Bali", Price: 1500},
	} {
		v := v
		if _, err := env.svc.Villa.CreateVilla(ctx, owner, &v); err != nil {
			t.Fatalf("CreateVilla: %v", err)
		}
	}

	maxPrice := 1000.0
	resp, err := env.svc.Villa.GetVillas(ctx, &request.VillaQuery{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Category:         "beach",
		MaxPrice:         &maxPrice,
	})
	if err != nil {
		t.Fatalf("GetVillas: %v", err)
	}
	if resp.Pagination.Total != 1 || len(resp.Data) != 1 || resp.Data[0].Name != "Sea Breeze" {
		t.Fatalf("unexpected result: %+v", resp)
	}

	resp, err = env.svc.Villa.GetVillas(ctx, &request.VillaQuery{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Search:           "sea",
	})
	if err != nil {
		t.Fatalf("GetVillas: %v", err)
	}
	if resp.Pagination.Total != 2 {
		t.Fatalf("search total = %d, want 2", resp.Pagination.Total)
	}
}

func TestVillaPhotoLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := ownerPrincipal()
	id := createVilla(t, env, owner)

	photos, err := env.svc.Villa.UploadPhotos(ctx, owner, id.String(), []FileUpload{
		{Name: "front.png", Data: pngData},
		{Name: "pool.png", Data: pngData},
	})
	if err != nil {
		t.Fatalf("UploadPhotos: %v", err)
	}
	if len(photos) != 2 || len(env.db.villas[id].PhotoIDs) != 2 {
		t.Fatalf("photos = %d, villa refs = %d", len(photos), len(env.db.villas[id].PhotoIDs))
	}

	first := env.db.photos[uuid.MustParse(photos[0].ID)]
	if ok, _ := afero.Exists(env.fs, "/"+first.FilePath); !ok {
		t.Fatalf("photo file %s not stored", first.FilePath)
	}

	if err := env.svc.Villa.DeletePhoto(ctx, owner, id.String(), photos[0].ID); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}
	if ok, _ := afero.Exists(env.fs, "/"+first.FilePath); ok {
		t.Fatalf("photo file %s still present", first.FilePath)
	}
	if refs := env.db.villas[id].PhotoIDs; len(refs) != 1 || refs[0].String() != photos[1].ID {
		t.Fatalf("villa photo refs = %v", refs)
	}
}

func TestUploadPhotosRejectsNonImage(t *testing.T) {
	env := newTestEnv()
	owner := ownerPrincipal()
	id := createVilla(t, env, owner)

	_, err := env.svc.Villa.UploadPhotos(context.Background(), owner, id.String(), []FileUpload{
		{Name: "ok.png", Data: pngData},
		{Name: "notes.txt", Data: []byte("plain text")},
	})
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if len(env.db.photos) != 0 {
		t.Fatalf("no photo should be stored, got %d", len(env.db.photos))
	}
}

func TestDeleteVillaCascades(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := ownerPrincipal()
	guest := userPrincipal()
	villaID := createVilla(t, env, owner)

	photos, err := env.svc.Villa.UploadPhotos(ctx, owner, villaID.String(), []FileUpload{
		{Name: "a.png", Data: pngData},
		{Name: "b.png", Data: pngData},
	})
	if err != nil {
		t.Fatalf("UploadPhotos: %v", err)
	}
	var files []string
	for _, p := range photos {
		files = append(files, env.db.photos[uuid.MustParse(p.ID)].FilePath)
	}

	for _, dates := range [][2]string{{"2024-01-01", "2024-01-05"}, {"2024-02-01", "2024-02-03"}} {
		b, err := env.svc.Booking.CreateBooking(ctx, guest, &request.CreateBookingRequest{
			VillaID:   villaID.String(),
			StartDate: dates[0],
			EndDate:   dates[1],
		})
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		if _, err := env.svc.Payment.CreatePayment(ctx, validPayment(b.ID, "PAY-"+dates[0])); err != nil {
			t.Fatalf("CreatePayment: %v", err)
		}
	}

	if _, err := env.svc.Favorite.CreateFavorite(ctx, guest, &request.CreateFavoriteRequest{VillaID: villaID.String()}); err != nil {
		t.Fatalf("CreateFavorite: %v", err)
	}
	for i := 1; i <= 3; i++ {
		_, err := env.svc.Review.CreateReview(ctx, userPrincipal(), &request.CreateReviewRequest{
			VillaID: villaID.String(),
			Rating:  i,
			Comment: "nice",
		})
		if err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	if err := env.svc.Villa.DeleteVilla(ctx, owner, villaID.String()); err != nil {
		t.Fatalf("DeleteVilla: %v", err)
	}

	if n := len(env.db.villas); n != 0 {
		t.Errorf("villas left: %d", n)
	}
	if n := len(env.db.bookings); n != 0 {
		t.Errorf("bookings left: %d", n)
	}
	if n := len(env.db.payments); n != 0 {
		t.Errorf("payments left: %d", n)
	}
	if n := len(env.db.favorites); n != 0 {
		t.Errorf("favorites left: %d", n)
	}
	if n := len(env.db.reviews); n != 0 {
		t.Errorf("reviews left: %d", n)
	}
	if n := len(env.db.photos); n != 0 {
		t.Errorf("photos left: %d", n)
	}
	for _, f := range files {
		if ok, _ := afero.Exists(env.fs, "/"+f); ok {
			t.Errorf("file %s still present", f)
		}
	}
}

type brokenReviews struct{ repository.ReviewRepository }

func (brokenReviews) DeleteByVillaID(context.Context, uuid.UUID) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestDeleteVillaRollsBackOnFailure(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := ownerPrincipal()
	guest := userPrincipal()
	villaID := createVilla(t, env, owner)

	photos, err := env.svc.Villa.UploadPhotos(ctx, owner, villaID.String(), []FileUpload{{Name: "a.png", Data: pngData}})
	if err != nil {
		t.Fatalf("UploadPhotos: %v", err)
	}
	file := env.db.photos[uuid.MustParse(photos[0].ID)].FilePath

	b, err := env.svc.Booking.CreateBooking(ctx, guest, &request.CreateBookingRequest{
		VillaID:   villaID.String(),
		StartDate: "2024-01-01",
		EndDate:   "2024-01-05",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := env.svc.Payment.CreatePayment(ctx, validPayment(b.ID, "PAY-001")); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if _, err := env.svc.Favorite.CreateFavorite(ctx, guest, &request.CreateFavoriteRequest{VillaID: villaID.String()}); err != nil {
		t.Fatalf("CreateFavorite: %v", err)
	}

	// payments, bookings and favorites go first, then reviews fail
	env.repo.Review = brokenReviews{env.repo.Review}

	if err := env.svc.Villa.DeleteVilla(ctx, owner, villaID.String()); err == nil {
		t.Fatal("DeleteVilla succeeded with a failing review delete")
	}

	if _, ok := env.db.villas[villaID]; !ok {
		t.Error("villa row removed")
	}
	if len(env.db.bookings) != 1 || len(env.db.payments) != 1 || len(env.db.favorites) != 1 {
		t.Errorf("rows not restored: bookings=%d payments=%d favorites=%d",
			len(env.db.bookings), len(env.db.payments), len(env.db.favorites))
	}
	if len(env.db.photos) != 1 {
		t.Errorf("photos = %d, want 1", len(env.db.photos))
	}
	if ok, _ := afero.Exists(env.fs, "/"+file); !ok {
		t.Errorf("file %s removed although the delete failed", file)
	}
}

func TestGetVillaByIDAggregatesReviews(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	villaID := createVilla(t, env, ownerPrincipal())

	for _, rating := range []int{5, 4, 4, 1} {
		_, err := env.svc.Review.CreateReview(ctx, userPrincipal(), &request.CreateReviewRequest{
			VillaID: villaID.String(),
			Rating:  rating,
			Comment: "ok",
		})
		if err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	detail, err := env.svc.Villa.GetVillaByID(ctx, villaID.String())
	if err != nil {
		t.Fatalf("GetVillaByID: %v", err)
	}
	if detail.Rating.Count != 4 || detail.CommentCount != 4 {
		t.Fatalf("count = %d / %d", detail.Rating.Count, detail.CommentCount)
	}
	if detail.Rating.Average != 3.5 || detail.AverageRating != 3.5 {
		t.Fatalf("average = %v", detail.Rating.Average)
	}
	if detail.Rating.Distribution[4] != 50 {
		t.Fatalf("4-star share = %v", detail.Rating.Distribution[4])
	}
	if len(detail.Reviews) != 4 {
		t.Fatalf("reviews = %d", len(detail.Reviews))
	}
}
