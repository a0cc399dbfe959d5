package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"villa-rental/internal/data/entity"
	"villa-rental/internal/data/repository"
	"villa-rental/internal/dto/request"
	"villa-rental/internal/dto/response"
	"villa-rental/pkg/apperror"
	"villa-rental/pkg/storage"
	"villa-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VillaService interface {
	// Public endpoints
	GetVillas(ctx context.Context, q *request.VillaQuery) (*response.PaginatedResponse[response.VillaResponse], error)
	GetVillaByID(ctx context.Context, villaID string) (*response.VillaDetailResponse, error)
	GetPhotos(ctx context.Context, villaID string) ([]response.PhotoResponse, error)

	// Owner endpoints
	GetOwnerVillas(ctx context.Context, owner utils.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VillaResponse], error)
	CreateVilla(ctx context.Context, owner utils.Principal, req *request.CreateVillaRequest) (*response.VillaResponse, error)
	UpdateVilla(ctx context.Context, owner utils.Principal, villaID string, req *request.UpdateVillaRequest) (*response.VillaResponse, error)
	DeleteVilla(ctx context.Context, owner utils.Principal, villaID string) error
	UploadPhotos(ctx context.Context, owner utils.Principal, villaID string, files []FileUpload) ([]response.PhotoResponse, error)
	ReplacePhoto(ctx context.Context, owner utils.Principal, villaID, photoID string, file FileUpload) (*response.PhotoResponse, error)
	DeletePhoto(ctx context.Context, owner utils.Principal, villaID, photoID string) error

	// Admin endpoints
	UpdateVillaStatus(ctx context.Context, villaID string, req *request.UpdateVillaStatusRequest) (*response.VillaResponse, error)
}

type villaService struct {
	repo    *repository.Repository
	store   storage.FileStore
	cascade *cascade
	log     *zap.Logger
}

func NewVillaService(repo *repository.Repository, store storage.FileStore, cascade *cascade, log *zap.Logger) VillaService {
	return &villaService{
		repo:    repo,
		store:   store,
		cascade: cascade,
		log:     log.With(zap.String("service", "villa")),
	}
}

func (s *villaService) GetVillas(ctx context.Context, q *request.VillaQuery) (*response.PaginatedResponse[response.VillaResponse], error) {
	filter := repository.VillaFilter{
		Category: q.Category,
		Location: q.Location,
		Status:   q.Status,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Search:   q.Search,
	}
	return s.listVillas(ctx, filter, &q.PaginatedRequest)
}

func (s *villaService) GetOwnerVillas(ctx context.Context, owner utils.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VillaResponse], error) {
	return s.listVillas(ctx, repository.VillaFilter{OwnerID: &owner.ID}, req)
}

func (s *villaService) listVillas(ctx context.Context, filter repository.VillaFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VillaResponse], error) {
	villas, err := s.repo.Villa.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get villas",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get villas: %w", err)
	}

	total, err := s.repo.Villa.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count villas: %w", err)
	}

	villaResponses := make([]response.VillaResponse, 0, len(villas))
	for _, villa := range villas {
		reviews, err := s.repo.Review.FindByVillaID(ctx, villa.ID)
		if err != nil {
			return nil, fmt.Errorf("get reviews for villa %s: %w", villa.ID.String(), err)
		}
		villaResponses = append(villaResponses, response.VillaToResponse(villa, summarizeReviews(reviews)))
	}

	return response.NewPaginatedResponse(villaResponses, req.Page, req.Limit(), total), nil
}

func (s *villaService) GetVillaByID(ctx context.Context, villaID string) (*response.VillaDetailResponse, error) {
	villa, err := s.findVilla(ctx, villaID)
	if err != nil {
		return nil, err
	}

	photos, err := s.repo.VillaPhoto.FindByVillaID(ctx, villa.ID)
	if err != nil {
		return nil, fmt.Errorf("get villa photos: %w", err)
	}

	reviews, err := s.repo.Review.FindByVillaID(ctx, villa.ID)
	if err != nil {
		return nil, fmt.Errorf("get villa reviews: %w", err)
	}

	bookedDates, err := s.repo.Booking.FindBookedDates(ctx, villa.ID)
	if err != nil {
		return nil, fmt.Errorf("get booked dates: %w", err)
	}

	rating := summarizeReviews(reviews)
	detail := &response.VillaDetailResponse{
		VillaResponse: response.VillaToResponse(villa, rating),
		Photos:        make([]response.PhotoResponse, 0, len(photos)),
		Reviews:       make([]response.ReviewResponse, 0, len(reviews)),
		Rating:        rating,
		BookedDates:   response.BookedDatesToResponse(bookedDates),
	}
	for _, photo := range photos {
		detail.Photos = append(detail.Photos, response.PhotoToResponse(photo))
	}
	for _, review := range reviews {
		detail.Reviews = append(detail.Reviews, response.ReviewToResponse(review))
	}

	return detail, nil
}

func (s *villaService) CreateVilla(ctx context.Context, owner utils.Principal, req *request.CreateVillaRequest) (*response.VillaResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create villa validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	now := time.Now()
	villa := &entity.Villa{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:     owner.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		Location:    strings.TrimSpace(req.Location),
		Price:       req.Price,
		Status:      entity.VillaStatusPending,
		PhotoIDs:    []uuid.UUID{},
		ReviewIDs:   []uuid.UUID{},
	}

	if err := s.repo.Villa.Create(ctx, villa); err != nil {
		return nil, fmt.Errorf("create villa: %w", err)
	}

	s.log.Info("Villa created",
		zap.String("villa_id", villa.ID.String()),
		zap.String("owner_id", owner.ID.String()),
	)

	resp := response.VillaToResponse(villa, Summarize(nil))
	return &resp, nil
}

func (s *villaService) UpdateVilla(ctx context.Context, owner utils.Principal, villaID string, req *request.UpdateVillaRequest) (*response.VillaResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update villa validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	villa, err := s.findOwnedVilla(ctx, owner, villaID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		villa.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		villa.Description = *req.Description
	}
	if req.Category != nil {
		villa.Category = strings.TrimSpace(*req.Category)
	}
	if req.Location != nil {
		villa.Location = strings.TrimSpace(*req.Location)
	}
	if req.Price != nil {
		villa.Price = *req.Price
	}

	// Setiap perubahan harus disetujui ulang oleh admin
	villa.Status = entity.VillaStatusPending
	villa.UpdatedAt = time.Now()

	if err := s.repo.Villa.Update(ctx, villa); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Villa")
		}
		return nil, fmt.Errorf("update villa: %w", err)
	}

	reviews, err := s.repo.Review.FindByVillaID(ctx, villa.ID)
	if err != nil {
		return nil, fmt.Errorf("get villa reviews: %w", err)
	}

	s.log.Info("Villa updated", zap.String("villa_id", villa.ID.String()))

	resp := response.VillaToResponse(villa, summarizeReviews(reviews))
	return &resp, nil
}

func (s *villaService) UpdateVillaStatus(ctx context.Context, villaID string, req *request.UpdateVillaStatusRequest) (*response.VillaResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	id, err := parseID("id", villaID)
	if err != nil {
		return nil, err
	}

	status := entity.VillaStatus(req.Status)
	if err := s.repo.Villa.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Villa")
		}
		return nil, fmt.Errorf("update villa status: %w", err)
	}

	s.log.Info("Villa status changed",
		zap.String("villa_id", villaID),
		zap.String("status", req.Status),
	)

	villa, err := s.findVilla(ctx, villaID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.repo.Review.FindByVillaID(ctx, villa.ID)
	if err != nil {
		return nil, fmt.Errorf("get villa reviews: %w", err)
	}

	resp := response.VillaToResponse(villa, summarizeReviews(reviews))
	return &resp, nil
}

func (s *villaService) DeleteVilla(ctx context.Context, owner utils.Principal, villaID string) error {
	villa, err := s.findOwnedVilla(ctx, owner, villaID)
	if err != nil {
		return err
	}

	if err := s.cascade.deleteVilla(ctx, villa.ID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		s.log.Error("Failed to delete villa",
			zap.Error(err),
			zap.String("villa_id", villaID),
		)
		return fmt.Errorf("delete villa: %w", err)
	}

	return nil
}

func (s *villaService) GetPhotos(ctx context.Context, villaID string) ([]response.PhotoResponse, error) {
	villa, err := s.findVilla(ctx, villaID)
	if err != nil {
		return nil, err
	}

	photos, err := s.repo.VillaPhoto.FindByVillaID(ctx, villa.ID)
	if err != nil {
		return nil, fmt.Errorf("get villa photos: %w", err)
	}

	out := make([]response.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		out = append(out, response.PhotoToResponse(photo))
	}
	return out, nil
}

func (s *villaService) UploadPhotos(ctx context.Context, owner utils.Principal, villaID string, files []FileUpload) ([]response.PhotoResponse, error) {
	if len(files) == 0 {
		return nil, validationFailed(map[string]string{"photos": "At least one photo is required"})
	}

	villa, err := s.findOwnedVilla(ctx, owner, villaID)
	if err != nil {
		return nil, err
	}

	// Cek semua file dulu sebelum ada yang disimpan
	types := make([]string, len(files))
	exts := make([]string, len(files))
	for i, f := range files {
		contentType, ext, err := storage.DetectImage(f.Data)
		if err != nil {
			return nil, validationFailed(map[string]string{"photos": fmt.Sprintf("%s: %s", f.Name, err.Error())})
		}
		types[i], exts[i] = contentType, ext
	}

	now := time.Now()
	photos := make([]*entity.VillaPhoto, 0, len(files))
	for i, f := range files {
		id := uuid.New()
		obj, err := s.store.Save(ctx, "villa/"+id.String()+exts[i], bytes.NewReader(f.Data), types[i])
		if err != nil {
			s.removeStored(ctx, photos)
			return nil, fmt.Errorf("save photo %s: %w", f.Name, err)
		}
		photos = append(photos, &entity.VillaPhoto{
			BaseSimple: entity.BaseSimple{ID: id, CreatedAt: now},
			VillaID:    villa.ID,
			Name:       f.Name,
			URL:        obj.URL,
			FilePath:   obj.Path,
		})
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		ids := make([]uuid.UUID, 0, len(photos))
		for _, photo := range photos {
			if err := s.repo.VillaPhoto.Create(ctx, photo); err != nil {
				return err
			}
			ids = append(ids, photo.ID)
		}
		return s.repo.Villa.AppendPhotos(ctx, villa.ID, ids)
	})
	if err != nil {
		s.removeStored(ctx, photos)
		s.log.Error("Failed to store photo records",
			zap.Error(err),
			zap.String("villa_id", villaID),
		)
		return nil, fmt.Errorf("save photo records: %w", err)
	}

	s.log.Info("Villa photos uploaded",
		zap.String("villa_id", villaID),
		zap.Int("count", len(photos)),
	)

	out := make([]response.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		out = append(out, response.PhotoToResponse(photo))
	}
	return out, nil
}

func (s *villaService) ReplacePhoto(ctx context.Context, owner utils.Principal, villaID, photoID string, file FileUpload) (*response.PhotoResponse, error) {
	villa, err := s.findOwnedVilla(ctx, owner, villaID)
	if err != nil {
		return nil, err
	}

	photo, err := s.findVillaPhoto(ctx, villa.ID, photoID)
	if err != nil {
		return nil, err
	}

	contentType, ext, err := storage.DetectImage(file.Data)
	if err != nil {
		return nil, validationFailed(map[string]string{"photo": err.Error()})
	}

	obj, err := s.store.Save(ctx, "villa/"+uuid.NewString()+ext, bytes.NewReader(file.Data), contentType)
	if err != nil {
		return nil, fmt.Errorf("save photo %s: %w", file.Name, err)
	}

	oldPath := photo.FilePath
	photo.Name = file.Name
	photo.URL = obj.URL
	photo.FilePath = obj.Path

	if err := s.repo.VillaPhoto.Update(ctx, photo); err != nil {
		s.removeFile(ctx, obj.Path)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Photo")
		}
		return nil, fmt.Errorf("update photo: %w", err)
	}

	s.removeFile(ctx, oldPath)

	resp := response.PhotoToResponse(photo)
	return &resp, nil
}

func (s *villaService) DeletePhoto(ctx context.Context, owner utils.Principal, villaID, photoID string) error {
	villa, err := s.findOwnedVilla(ctx, owner, villaID)
	if err != nil {
		return err
	}

	photo, err := s.findVillaPhoto(ctx, villa.ID, photoID)
	if err != nil {
		return err
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.VillaPhoto.Delete(ctx, photo.ID); err != nil {
			return err
		}
		return s.repo.Villa.RemovePhoto(ctx, villa.ID, photo.ID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Photo")
		}
		return fmt.Errorf("delete photo: %w", err)
	}

	s.removeFile(ctx, photo.FilePath)

	s.log.Info("Villa photo deleted",
		zap.String("villa_id", villaID),
		zap.String("photo_id", photoID),
	)
	return nil
}

func (s *villaService) findVilla(ctx context.Context, villaID string) (*entity.Villa, error) {
	id, err := parseID("id", villaID)
	if err != nil {
		return nil, err
	}

	villa, err := s.repo.Villa.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find villa: %w", err)
	}
	if villa == nil {
		return nil, apperror.NotFound("Villa")
	}
	return villa, nil
}

// findOwnedVilla also checks that the caller owns the villa
func (s *villaService) findOwnedVilla(ctx context.Context, owner utils.Principal, villaID string) (*entity.Villa, error) {
	villa, err := s.findVilla(ctx, villaID)
	if err != nil {
		return nil, err
	}

	if villa.OwnerID != owner.ID {
		s.log.Warn("Villa access by non-owner",
			zap.String("villa_id", villaID),
			zap.String("owner_id", owner.ID.String()),
		)
		return nil, apperror.Auth("You do not own this villa")
	}
	return villa, nil
}

func (s *villaService) findVillaPhoto(ctx context.Context, villaID uuid.UUID, photoID string) (*entity.VillaPhoto, error) {
	id, err := parseID("photoId", photoID)
	if err != nil {
		return nil, err
	}

	photo, err := s.repo.VillaPhoto.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find photo: %w", err)
	}
	if photo == nil || photo.VillaID != villaID {
		return nil, apperror.NotFound("Photo")
	}
	return photo, nil
}

func (s *villaService) removeStored(ctx context.Context, photos []*entity.VillaPhoto) {
	for _, photo := range photos {
		s.removeFile(ctx, photo.FilePath)
	}
}

func (s *villaService) removeFile(ctx context.Context, path string) {
	if err := s.store.Remove(ctx, path); err != nil {
		s.log.Warn("Failed to remove photo file", zap.Error(err), zap.String("path", path))
	}
}
