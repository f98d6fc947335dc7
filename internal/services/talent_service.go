package services

import (
	"context"
	"fmt"

	"talento_backend/internal/logger"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/internal/storage"
	"talento_backend/internal/validator"
	"talento_backend/pkg/apperrors"
)

// Caller - аутентифицированный инициатор операции
type Caller struct {
	ID    string
	Email string
	Role  string
}

func (c Caller) IsAdmin() bool {
	return c.Role == string(models.UserRoleAdmin)
}

// TalentListResult - список заявок вместе со счетчиками
type TalentListResult struct {
	Applications []dto.TalentResponse
	Stats        *repositories.TalentStats
}

type TalentService interface {
	Create(caller Caller, req *dto.CreateTalentRequest) (*dto.TalentResponse, error)
	List(status string) (*TalentListResult, error)
	ListVerified() ([]dto.TalentResponse, error)
	Me(userID string) (*dto.TalentResponse, error)
	GetByID(id string) (*dto.TalentResponse, error)
	Update(caller Caller, id string, req *dto.UpdateTalentRequest) (*dto.TalentResponse, error)
	UpdateStatus(caller Caller, id string, req *dto.UpdateStatusRequest) (*dto.TalentResponse, error)
	SetCelebrity(id string, isCelebrity bool) (*dto.TalentResponse, error)
	TrackClick(id string) (int, error)
	Delete(ctx context.Context, id string) (*dto.TalentResponse, error)
	Stats() (*repositories.TalentStats, error)
}

type TalentServiceImpl struct {
	talentRepo repositories.TalentRepository
	mediaRepo  repositories.MediaRepository
	store      storage.Storage
}

func NewTalentService(
	talentRepo repositories.TalentRepository,
	mediaRepo repositories.MediaRepository,
	store storage.Storage,
) TalentService {
	return &TalentServiceImpl{
		talentRepo: talentRepo,
		mediaRepo:  mediaRepo,
		store:      store,
	}
}

// Create - подача заявки. У обычного пользователя может быть лишь одна
// активная (pending/verified) заявка; администратор создает заявки
// от имени площадки без владельца, поэтому ограничение его не касается
func (s *TalentServiceImpl) Create(caller Caller, req *dto.CreateTalentRequest) (*dto.TalentResponse, error) {
	if !req.TermsAccepted {
		return nil, apperrors.NewBadRequestError("Terms must be accepted")
	}

	var ownerID *string
	if !caller.IsAdmin() {
		if existing, err := s.talentRepo.FindActiveByUserID(caller.ID); err == nil {
			return nil, activeApplicationConflict(existing)
		} else if !apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.DatabaseError(err)
		}
		id := caller.ID
		ownerID = &id
	}

	app := &models.TalentApplication{
		UserID: ownerID,
		Email:  caller.Email,
		Status: models.ApplicationStatusPending,

		FullName:  req.FullName,
		BirthYear: req.BirthYear,
		City:      req.City,
		Nickname:  req.Nickname,
		Phone:     req.Phone,
		Bio:       req.Bio,

		SocialChannels:    orEmptyList(req.SocialChannels),
		SocialLinks:       req.SocialLinks,
		MediaKitURLs:      orEmptyList(req.MediaKitURLs),
		ContentCategories: orEmptyList(req.ContentCategories),

		AvailableForProducts: orNo(req.AvailableForProducts),
		ShippingAddress:      req.ShippingAddress,
		AvailableForReels:    orNo(req.AvailableForReels),
		AvailableNext3Months: orNo(req.AvailableNext3Months),
		AvailabilityPeriod:   req.AvailabilityPeriod,

		CollaboratedAgencies: orNo(req.CollaboratedAgencies),
		AgenciesList:         req.AgenciesList,
		CollaboratedBrands:   orNo(req.CollaboratedBrands),
		BrandsList:           req.BrandsList,

		HasVAT:         orNo(req.HasVAT),
		PaymentMethods: orEmptyList(req.PaymentMethods),

		TermsAccepted: true,
	}

	if err := s.talentRepo.Create(app); err != nil {
		if apperrors.Is(err, repositories.ErrActiveApplicationExists) {
			// гонка: параллельная заявка успела раньше, индекс ее поймал
			if existing, ferr := s.talentRepo.FindActiveByUserID(caller.ID); ferr == nil {
				return nil, activeApplicationConflict(existing)
			}
			return nil, apperrors.NewConflictError("talent", "You already have an active application")
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("talent application submitted", "applicationId", app.ID, "email", app.Email, "admin", caller.IsAdmin())
	resp := dto.NewTalentResponse(app)
	return &resp, nil
}

func (s *TalentServiceImpl) List(status string) (*TalentListResult, error) {
	if status != "" && !isKnownApplicationStatus(status) {
		return nil, apperrors.NewBadRequestError("Invalid status filter")
	}

	apps, err := s.talentRepo.FindAll(models.ApplicationStatus(status))
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	stats, err := s.talentRepo.GetStats()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &TalentListResult{
		Applications: dto.NewTalentResponseList(apps),
		Stats:        stats,
	}, nil
}

// ListVerified - публичная витрина: только проверенные таланты
func (s *TalentServiceImpl) ListVerified() ([]dto.TalentResponse, error) {
	apps, err := s.talentRepo.FindAll(models.ApplicationStatusVerified)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewTalentResponseList(apps), nil
}

// Me возвращает последнюю заявку пользователя независимо от статуса
func (s *TalentServiceImpl) Me(userID string) (*dto.TalentResponse, error) {
	apps, err := s.talentRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if len(apps) == 0 {
		return nil, apperrors.NewNotFoundError("talent", "No application found for this user")
	}

	resp := dto.NewTalentResponse(&apps[0])
	return &resp, nil
}

func (s *TalentServiceImpl) GetByID(id string) (*dto.TalentResponse, error) {
	app, err := s.talentRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.NewNotFoundError("talent", "Application not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	resp := dto.NewTalentResponse(app)
	return &resp, nil
}

// Update - частичное обновление. Владелец правит свою заявку,
// администратор любую; поле price доступно только администратору
func (s *TalentServiceImpl) Update(caller Caller, id string, req *dto.UpdateTalentRequest) (*dto.TalentResponse, error) {
	app, err := s.talentRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.NewNotFoundError("talent", "Application not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !caller.IsAdmin() && (app.UserID == nil || *app.UserID != caller.ID) {
		return nil, apperrors.NewForbiddenError("You can only update your own application")
	}
	// права проверяются раньше формата: не-администратор получает 403
	// независимо от присланного значения
	if req.Price != nil {
		if !caller.IsAdmin() {
			return nil, apperrors.NewForbiddenError("Only admins can update the price field")
		}
		if !validator.IsPriceTier(*req.Price) {
			return nil, apperrors.ValidationError(map[string]string{
				"price": `must be empty or consist only of "€" characters`,
			})
		}
	}

	applyTalentUpdate(app, req)

	if err := s.talentRepo.Save(app); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("talent application updated", "applicationId", app.ID, "by", caller.ID)
	resp := dto.NewTalentResponse(app)
	return &resp, nil
}

// UpdateStatus - решение по заявке: verified или rejected.
// Статус, рецензент и заметки пишутся одним атомарным UPDATE
func (s *TalentServiceImpl) UpdateStatus(caller Caller, id string, req *dto.UpdateStatusRequest) (*dto.TalentResponse, error) {
	status := models.ApplicationStatus(req.Status)
	if !models.ReviewableStatuses[status] {
		return nil, apperrors.New(apperrors.CodeInvalidStatus, "talent",
			`Invalid status. Must be "verified" or "rejected"`, 400)
	}

	app, err := s.talentRepo.UpdateStatus(id, status, caller.ID, req.ReviewNotes)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.NewNotFoundError("talent", "Application not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("talent application reviewed", "applicationId", id, "status", status, "reviewedBy", caller.ID)
	resp := dto.NewTalentResponse(app)
	return &resp, nil
}

func (s *TalentServiceImpl) SetCelebrity(id string, isCelebrity bool) (*dto.TalentResponse, error) {
	app, err := s.talentRepo.SetCelebrity(id, isCelebrity)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.NewNotFoundError("talent", "Talent not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("celebrity status updated", "talentId", id, "isCelebrity", isCelebrity)
	resp := dto.NewTalentResponse(app)
	return &resp, nil
}

func (s *TalentServiceImpl) TrackClick(id string) (int, error) {
	count, err := s.talentRepo.IncrementClicks(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return 0, apperrors.NewNotFoundError("talent", "Talent not found")
		}
		return 0, apperrors.DatabaseError(err)
	}
	return count, nil
}

// Delete удаляет заявку. Записи медиафайлов каскадируются базой,
// бинарники у провайдера подчищаются best-effort
func (s *TalentServiceImpl) Delete(ctx context.Context, id string) (*dto.TalentResponse, error) {
	media, err := s.mediaRepo.FindByTalentID(id)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	app, err := s.talentRepo.Delete(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.NewNotFoundError("talent", "Application not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	for _, m := range media {
		if err := s.store.Delete(ctx, m.ProviderID); err != nil {
			logger.WithError(err).Warn("failed to delete media binary", "providerId", m.ProviderID)
		}
	}

	logger.Info("talent application deleted", "applicationId", id, "mediaFiles", len(media))
	resp := dto.NewTalentResponse(app)
	return &resp, nil
}

func (s *TalentServiceImpl) Stats() (*repositories.TalentStats, error) {
	stats, err := s.talentRepo.GetStats()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return stats, nil
}

func activeApplicationConflict(existing *models.TalentApplication) *apperrors.AppError {
	return apperrors.NewConflictError("talent",
		fmt.Sprintf("You already have a %s application", existing.Status)).
		WithDetails(dto.ExistingApplicationInfo{
			ID:          existing.ID,
			Status:      string(existing.Status),
			SubmittedAt: existing.CreatedAt,
		})
}

func applyTalentUpdate(app *models.TalentApplication, req *dto.UpdateTalentRequest) {
	if req.City != nil {
		app.City = *req.City
	}
	if req.Phone != nil {
		app.Phone = *req.Phone
	}
	if req.Bio != nil {
		app.Bio = *req.Bio
	}
	if req.SocialChannels != nil {
		app.SocialChannels = orEmptyList(*req.SocialChannels)
	}
	if req.SocialLinks != nil {
		app.SocialLinks = *req.SocialLinks
	}
	if req.MediaKitURLs != nil {
		app.MediaKitURLs = orEmptyList(*req.MediaKitURLs)
	}
	if req.ContentCategories != nil {
		app.ContentCategories = orEmptyList(*req.ContentCategories)
	}
	if req.AvailableForProducts != nil {
		app.AvailableForProducts = *req.AvailableForProducts
	}
	if req.ShippingAddress != nil {
		app.ShippingAddress = *req.ShippingAddress
	}
	if req.AvailableForReels != nil {
		app.AvailableForReels = *req.AvailableForReels
	}
	if req.AvailableNext3Months != nil {
		app.AvailableNext3Months = *req.AvailableNext3Months
	}
	if req.AvailabilityPeriod != nil {
		app.AvailabilityPeriod = *req.AvailabilityPeriod
	}
	if req.HasVAT != nil {
		app.HasVAT = *req.HasVAT
	}
	if req.PaymentMethods != nil {
		app.PaymentMethods = orEmptyList(*req.PaymentMethods)
	}
	if req.Price != nil {
		app.Price = *req.Price
	}
}

func isKnownApplicationStatus(status string) bool {
	switch models.ApplicationStatus(status) {
	case models.ApplicationStatusPending, models.ApplicationStatusVerified, models.ApplicationStatusRejected:
		return true
	}
	return false
}

func orEmptyList(list []string) models.StringList {
	if list == nil {
		return models.StringList{}
	}
	return models.StringList(list)
}

func orNo(value string) string {
	if value == "" {
		return "No"
	}
	return value
}
