package usecase

import (
	"context"
	"maps"
	"sort"
	"strings"

	"villa-rental/internal/data/entity"
	"villa-rental/internal/data/repository"
	"villa-rental/pkg/gateway"
	"villa-rental/pkg/storage"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// memDB is an in-memory stand-in for the postgres tables
type memDB struct {
	villas    map[uuid.UUID]*entity.Villa
	photos    map[uuid.UUID]*entity.VillaPhoto
	bookings  map[uuid.UUID]*entity.Booking
	payments  map[uuid.UUID]*entity.Payment
	reviews   map[uuid.UUID]*entity.Review
	favorites map[uuid.UUID]*entity.Favorite
	users     map[uuid.UUID]*entity.User
	admins    map[uuid.UUID]*entity.Admin
}

type testEnv struct {
	db    *memDB
	repo  *repository.Repository
	fs    afero.Fs
	store storage.FileStore
	gw    *fakeGateway
	svc   *Service
}

func newTestEnv() *testEnv {
	db := &memDB{
		villas:    map[uuid.UUID]*entity.Villa{},
		photos:    map[uuid.UUID]*entity.VillaPhoto{},
		bookings:  map[uuid.UUID]*entity.Booking{},
		payments:  map[uuid.UUID]*entity.Payment{},
		reviews:   map[uuid.UUID]*entity.Review{},
		favorites: map[uuid.UUID]*entity.Favorite{},
		users:     map[uuid.UUID]*entity.User{},
		admins:    map[uuid.UUID]*entity.Admin{},
	}
	repo := &repository.Repository{
		Tx:         fakeTx{db},
		Villa:      &fakeVillaRepo{db},
		VillaPhoto: &fakePhotoRepo{db},
		Booking:    &fakeBookingRepo{db},
		Payment:    &fakePaymentRepo{db},
		Review:     &fakeReviewRepo{db},
		Favorite:   &fakeFavoriteRepo{db},
		User:       &fakeUserRepo{db},
		Admin:      &fakeAdminRepo{db},
	}

	fs := afero.NewMemMapFs()
	store := storage.NewLocalFs(fs, "http://localhost:8080", zap.NewNop())
	gw := &fakeGateway{}

	return &testEnv{
		db:    db,
		repo:  repo,
		fs:    fs,
		store: store,
		gw:    gw,
		svc:   NewService(repo, store, gw, zap.NewNop()),
	}
}

// fakeTx snapshots every table and puts it back when fn fails
type fakeTx struct{ db *memDB }

func (tx fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := tx.db.snapshot()
	if err := fn(ctx); err != nil {
		*tx.db = saved
		return err
	}
	return nil
}

func (db *memDB) snapshot() memDB {
	return memDB{
		villas:    maps.Clone(db.villas),
		photos:    maps.Clone(db.photos),
		bookings:  maps.Clone(db.bookings),
		payments:  maps.Clone(db.payments),
		reviews:   maps.Clone(db.reviews),
		favorites: maps.Clone(db.favorites),
		users:     maps.Clone(db.users),
		admins:    maps.Clone(db.admins),
	}
}

type fakeGateway struct {
	lastRequest gateway.TransactionRequest
	err         error
}

func (g *fakeGateway) CreateTransaction(req gateway.TransactionRequest) (*gateway.Transaction, error) {
	g.lastRequest = req
	if g.err != nil {
		return nil, g.err
	}
	return &gateway.Transaction{Token: "token-" + req.OrderID, RedirectURL: "https://pay.test/" + req.OrderID}, nil
}

func (g *fakeGateway) Status(orderID string) (*coreapi.TransactionStatusResponse, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &coreapi.TransactionStatusResponse{OrderID: orderID, TransactionStatus: "settlement"}, nil
}

// sortedValues returns map values ordered by id for stable paging
func sortedValues[T any](m map[uuid.UUID]T, keep func(T) bool) []T {
	ids := make([]uuid.UUID, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// taken mimics a unique index: another row already holds the value
func taken[T any](m map[uuid.UUID]T, self uuid.UUID, same func(T) bool) bool {
	for id, v := range m {
		if id != self && same(v) {
			return true
		}
	}
	return false
}

func deleteWhere[T any](m map[uuid.UUID]T, match func(T) bool) int64 {
	var n int64
	for id, v := range m {
		if match(v) {
			delete(m, id)
			n++
		}
	}
	return n
}

// ==================== VILLA ====================

type fakeVillaRepo struct{ db *memDB }

func (r *fakeVillaRepo) Create(ctx context.Context, villa *entity.Villa) error {
	r.db.villas[villa.ID] = villa
	return nil
}

func (r *fakeVillaRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Villa, error) {
	return r.db.villas[id], nil
}

func (r *fakeVillaRepo) match(f repository.VillaFilter) func(*entity.Villa) bool {
	return func(v *entity.Villa) bool {
		if f.Category != "" && v.Category != f.Category {
			return false
		}
		if f.Location != "" && v.Location != f.Location {
			return false
		}
		if f.Status != "" && string(v.Status) != f.Status {
			return false
		}
		if f.OwnerID != nil && v.OwnerID != *f.OwnerID {
			return false
		}
		if f.MinPrice != nil && v.Price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && v.Price > *f.MaxPrice {
			return false
		}
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			hay := strings.ToLower(v.Name + " " + v.Description + " " + v.Location)
			if !strings.Contains(hay, term) {
				return false
			}
		}
		return true
	}
}

func (r *fakeVillaRepo) FindAll(ctx context.Context, filter repository.VillaFilter, limit, offset int) ([]*entity.Villa, error) {
	return page(sortedValues(r.db.villas, r.match(filter)), limit, offset), nil
}

func (r *fakeVillaRepo) Count(ctx context.Context, filter repository.VillaFilter) (int64, error) {
	return int64(len(sortedValues(r.db.villas, r.match(filter)))), nil
}

func (r *fakeVillaRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Villa, error) {
	return sortedValues(r.db.villas, func(v *entity.Villa) bool { return v.OwnerID == ownerID }), nil
}

func (r *fakeVillaRepo) Update(ctx context.Context, villa *entity.Villa) error {
	if _, ok := r.db.villas[villa.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.villas[villa.ID] = villa
	return nil
}

func (r *fakeVillaRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.VillaStatus) error {
	villa, ok := r.db.villas[id]
	if !ok {
		return repository.ErrNotFound
	}
	villa.Status = status
	return nil
}

func (r *fakeVillaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.villas[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.villas, id)
	return nil
}

func (r *fakeVillaRepo) AppendPhotos(ctx context.Context, id uuid.UUID, photoIDs []uuid.UUID) error {
	villa, ok := r.db.villas[id]
	if !ok {
		return repository.ErrNotFound
	}
	villa.PhotoIDs = append(villa.PhotoIDs, photoIDs...)
	return nil
}

func (r *fakeVillaRepo) RemovePhoto(ctx context.Context, id, photoID uuid.UUID) error {
	villa, ok := r.db.villas[id]
	if !ok {
		return repository.ErrNotFound
	}
	villa.PhotoIDs = without(villa.PhotoIDs, photoID)
	return nil
}

func (r *fakeVillaRepo) AppendReview(ctx context.Context, id, reviewID uuid.UUID) error {
	villa, ok := r.db.villas[id]
	if !ok {
		return repository.ErrNotFound
	}
	villa.ReviewIDs = append(villa.ReviewIDs, reviewID)
	return nil
}

func (r *fakeVillaRepo) RemoveReview(ctx context.Context, id, reviewID uuid.UUID) error {
	villa, ok := r.db.villas[id]
	if !ok {
		return repository.ErrNotFound
	}
	villa.ReviewIDs = without(villa.ReviewIDs, reviewID)
	return nil
}

func without(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ==================== VILLA PHOTO ====================

type fakePhotoRepo struct{ db *memDB }

func (r *fakePhotoRepo) Create(ctx context.Context, photo *entity.VillaPhoto) error {
	r.db.photos[photo.ID] = photo
	return nil
}

func (r *fakePhotoRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.VillaPhoto, error) {
	return r.db.photos[id], nil
}

func (r *fakePhotoRepo) FindByVillaID(ctx context.Context, villaID uuid.UUID) ([]*entity.VillaPhoto, error) {
	return sortedValues(r.db.photos, func(p *entity.VillaPhoto) bool { return p.VillaID == villaID }), nil
}

func (r *fakePhotoRepo) Update(ctx context.Context, photo *entity.VillaPhoto) error {
	if _, ok := r.db.photos[photo.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.photos[photo.ID] = photo
	return nil
}

func (r *fakePhotoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.photos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.photos, id)
	return nil
}

func (r *fakePhotoRepo) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.photos, func(p *entity.VillaPhoto) bool { return p.VillaID == villaID }), nil
}

// ==================== BOOKING ====================

type fakeBookingRepo struct{ db *memDB }

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.db.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.db.bookings[id], nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	return page(sortedValues(r.db.bookings, nil), limit, offset), nil
}

func (r *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.db.bookings)), nil
}

func (r *fakeBookingRepo) byUser(userID uuid.UUID) []*entity.Booking {
	return sortedValues(r.db.bookings, func(b *entity.Booking) bool { return b.UserID == userID })
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return page(r.byUser(userID), limit, offset), nil
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(r.byUser(userID))), nil
}

func (r *fakeBookingRepo) FindByVillaID(ctx context.Context, villaID uuid.UUID) ([]*entity.Booking, error) {
	return sortedValues(r.db.bookings, func(b *entity.Booking) bool { return b.VillaID == villaID }), nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	if _, ok := r.db.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.bookings, id)
	return nil
}

func (r *fakeBookingRepo) FindBookedDates(ctx context.Context, villaID uuid.UUID) ([]entity.BookedDate, error) {
	bookings := sortedValues(r.db.bookings, func(b *entity.Booking) bool {
		return b.VillaID == villaID && b.Status != entity.BookingStatusCancelled
	})
	sort.SliceStable(bookings, func(i, j int) bool { return bookings[i].StartDate.Before(bookings[j].StartDate) })

	out := make([]entity.BookedDate, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, entity.BookedDate{StartDate: b.StartDate, EndDate: b.EndDate})
	}
	return out, nil
}

func (r *fakeBookingRepo) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.bookings, func(b *entity.Booking) bool { return b.VillaID == villaID }), nil
}

func (r *fakeBookingRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.bookings, func(b *entity.Booking) bool { return b.UserID == userID }), nil
}

// ==================== PAYMENT ====================

type fakePaymentRepo struct{ db *memDB }

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if taken(r.db.payments, payment.ID, func(p *entity.Payment) bool { return p.Code == payment.Code }) {
		return repository.ErrDuplicate
	}
	r.db.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return r.db.payments[id], nil
}

func (r *fakePaymentRepo) FindByCode(ctx context.Context, code string) (*entity.Payment, error) {
	for _, p := range r.db.payments {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) match(f repository.PaymentFilter) func(*entity.Payment) bool {
	return func(p *entity.Payment) bool {
		booking := r.db.bookings[p.BookingID]
		if booking == nil {
			return false
		}
		if f.UserID != nil && booking.UserID != *f.UserID {
			return false
		}
		villa := r.db.villas[booking.VillaID]
		if f.OwnerID != nil && (villa == nil || villa.OwnerID != *f.OwnerID) {
			return false
		}
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			hay := strings.ToLower(p.PayerName + " " + p.PayerEmail + " " + p.Code + " " + p.Method + " " + p.Bank)
			if villa != nil {
				hay += " " + strings.ToLower(villa.Name)
			}
			if !strings.Contains(hay, term) {
				return false
			}
		}
		return true
	}
}

func (r *fakePaymentRepo) FindAll(ctx context.Context, filter repository.PaymentFilter, limit, offset int) ([]*entity.Payment, error) {
	return page(sortedValues(r.db.payments, r.match(filter)), limit, offset), nil
}

func (r *fakePaymentRepo) Count(ctx context.Context, filter repository.PaymentFilter) (int64, error) {
	return int64(len(sortedValues(r.db.payments, r.match(filter)))), nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	if _, ok := r.db.payments[payment.ID]; !ok {
		return repository.ErrNotFound
	}
	if taken(r.db.payments, payment.ID, func(p *entity.Payment) bool { return p.Code == payment.Code }) {
		return repository.ErrDuplicate
	}
	r.db.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.payments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.payments, id)
	return nil
}

func (r *fakePaymentRepo) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.payments, func(p *entity.Payment) bool { return p.BookingID == bookingID }), nil
}

func (r *fakePaymentRepo) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.payments, func(p *entity.Payment) bool {
		b := r.db.bookings[p.BookingID]
		return b != nil && b.VillaID == villaID
	}), nil
}

func (r *fakePaymentRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.payments, func(p *entity.Payment) bool {
		b := r.db.bookings[p.BookingID]
		return b != nil && b.UserID == userID
	}), nil
}

func (r *fakePaymentRepo) MonthlyTotals(ctx context.Context, ownerID uuid.UUID, startMonth, endMonth int) ([]entity.MonthlyTotal, error) {
	buckets := map[int]*entity.MonthlyTotal{}
	for _, p := range sortedValues(r.db.payments, r.match(repository.PaymentFilter{OwnerID: &ownerID})) {
		m := int(p.PaidAt.Month())
		if m < startMonth || m > endMonth {
			continue
		}
		if buckets[m] == nil {
			buckets[m] = &entity.MonthlyTotal{Month: m}
		}
		buckets[m].Total += p.Amount
		buckets[m].Count++
	}

	out := make([]entity.MonthlyTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// ==================== REVIEW ====================

type fakeReviewRepo struct{ db *memDB }

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.db.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return r.db.reviews[id], nil
}

func (r *fakeReviewRepo) match(f repository.ReviewFilter) func(*entity.Review) bool {
	return func(rv *entity.Review) bool {
		if f.VillaID != nil && rv.VillaID != *f.VillaID {
			return false
		}
		if f.UserID != nil && rv.UserID != *f.UserID {
			return false
		}
		return true
	}
}

func (r *fakeReviewRepo) FindAll(ctx context.Context, filter repository.ReviewFilter, limit, offset int) ([]*entity.Review, error) {
	return page(sortedValues(r.db.reviews, r.match(filter)), limit, offset), nil
}

func (r *fakeReviewRepo) Count(ctx context.Context, filter repository.ReviewFilter) (int64, error) {
	return int64(len(sortedValues(r.db.reviews, r.match(filter)))), nil
}

func (r *fakeReviewRepo) FindByVillaID(ctx context.Context, villaID uuid.UUID) ([]*entity.Review, error) {
	return sortedValues(r.db.reviews, func(rv *entity.Review) bool { return rv.VillaID == villaID }), nil
}

func (r *fakeReviewRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return sortedValues(r.db.reviews, func(rv *entity.Review) bool { return rv.UserID == userID }), nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	if _, ok := r.db.reviews[review.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.reviews, id)
	return nil
}

func (r *fakeReviewRepo) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.reviews, func(rv *entity.Review) bool { return rv.VillaID == villaID }), nil
}

func (r *fakeReviewRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.reviews, func(rv *entity.Review) bool { return rv.UserID == userID }), nil
}

// ==================== FAVORITE ====================

type fakeFavoriteRepo struct{ db *memDB }

func (r *fakeFavoriteRepo) Create(ctx context.Context, favorite *entity.Favorite) error {
	if taken(r.db.favorites, favorite.ID, func(f *entity.Favorite) bool {
		return f.UserID == favorite.UserID && f.VillaID == favorite.VillaID
	}) {
		return repository.ErrDuplicate
	}
	r.db.favorites[favorite.ID] = favorite
	return nil
}

func (r *fakeFavoriteRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Favorite, error) {
	return r.db.favorites[id], nil
}

func (r *fakeFavoriteRepo) FindByUserAndVilla(ctx context.Context, userID, villaID uuid.UUID) (*entity.Favorite, error) {
	for _, f := range r.db.favorites {
		if f.UserID == userID && f.VillaID == villaID {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFavoriteRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error) {
	return sortedValues(r.db.favorites, func(f *entity.Favorite) bool { return f.UserID == userID }), nil
}

func (r *fakeFavoriteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.favorites[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.favorites, id)
	return nil
}

func (r *fakeFavoriteRepo) DeleteByVillaID(ctx context.Context, villaID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.favorites, func(f *entity.Favorite) bool { return f.VillaID == villaID }), nil
}

func (r *fakeFavoriteRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return deleteWhere(r.db.favorites, func(f *entity.Favorite) bool { return f.UserID == userID }), nil
}

// ==================== USER ====================

type fakeUserRepo struct{ db *memDB }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if taken(r.db.users, user.ID, func(u *entity.User) bool { return u.Email == user.Email }) {
		return repository.ErrDuplicate
	}
	r.db.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.db.users[id], nil
}

func (r *fakeUserRepo) findOne(match func(*entity.User) bool) (*entity.User, error) {
	for _, u := range r.db.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.Phone != nil && *u.Phone == phone })
}

func (r *fakeUserRepo) FindByName(ctx context.Context, name string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.Name == name })
}

func (r *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return page(sortedValues(r.db.users, nil), limit, offset), nil
}

func (r *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.db.users)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.db.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	if taken(r.db.users, user.ID, func(u *entity.User) bool { return u.Email == user.Email }) {
		return repository.ErrDuplicate
	}
	r.db.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	user, ok := r.db.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error {
	user, ok := r.db.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	// Salin agar service tetap melihat foto lama
	updated := *user
	updated.ProfilePhoto = photo
	r.db.users[id] = &updated
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.users, id)
	return nil
}

// ==================== ADMIN ====================

type fakeAdminRepo struct{ db *memDB }

func (r *fakeAdminRepo) Create(ctx context.Context, admin *entity.Admin) error {
	if taken(r.db.admins, admin.ID, func(a *entity.Admin) bool { return a.Email == admin.Email }) {
		return repository.ErrDuplicate
	}
	r.db.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	return r.db.admins[id], nil
}

func (r *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	for _, a := range r.db.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Admin, error) {
	return page(sortedValues(r.db.admins, nil), limit, offset), nil
}

func (r *fakeAdminRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.db.admins)), nil
}

func (r *fakeAdminRepo) Update(ctx context.Context, admin *entity.Admin) error {
	if _, ok := r.db.admins[admin.ID]; !ok {
		return repository.ErrNotFound
	}
	if taken(r.db.admins, admin.ID, func(a *entity.Admin) bool { return a.Email == admin.Email }) {
		return repository.ErrDuplicate
	}
	r.db.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.admins[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.admins, id)
	return nil
}
