package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	clientRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/client"
	"github.com/m04kA/SMC-BarberService/internal/service/clients/models"
)

// Service сервис пользователей: вход по телефону и справочник клиентов
type Service struct {
	clientRepo ClientRepository
	adminPhone string
	logger     Logger
}

// NewService создает новый экземпляр сервиса пользователей
// adminPhone - номер, который при входе получает роль администратора
func NewService(clientRepo ClientRepository, adminPhone string, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		adminPhone: strings.TrimSpace(adminPhone),
		logger:     logger,
	}
}

// LoginOrRegister находит пользователя по телефону или регистрирует нового
// Номер администратора всегда получает роль admin
func (s *Service) LoginOrRegister(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	req.Normalize()
	s.logger.Info("LoginOrRegister: phone=%s", req.Phone)

	// 1. Валидация входных данных
	if err := validateLogin(req); err != nil {
		s.logger.Warn("LoginOrRegister: validation failed: %v", err)
		return nil, err
	}

	// 2. Ищем существующего пользователя
	existing, err := s.clientRepo.GetByPhone(ctx, req.Phone)
	if err != nil && !errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Error("LoginOrRegister: failed to get user by phone: %v", err)
		return nil, fmt.Errorf("%w: LoginOrRegister - repository error: %v", ErrInternal, err)
	}

	if existing != nil {
		// 3. Повышаем до администратора, если номер совпал с настроенным
		if s.IsAdminPhone(existing.Phone) && !existing.IsAdmin() {
			if err := s.clientRepo.UpdateType(ctx, existing.ID, domain.UserTypeAdmin); err != nil {
				s.logger.Error("LoginOrRegister: failed to promote user id=%d: %v", existing.ID, err)
				return nil, fmt.Errorf("%w: LoginOrRegister - promote admin: %v", ErrInternal, err)
			}
			existing.Type = domain.UserTypeAdmin
			s.logger.Info("LoginOrRegister: user id=%d promoted to admin", existing.ID)
		}

		s.logger.Info("LoginOrRegister: user id=%d logged in", existing.ID)
		return &models.LoginResponse{Client: *models.FromDomainClient(existing)}, nil
	}

	// 4. Регистрируем нового пользователя
	userType := domain.UserTypeClient
	if s.IsAdminPhone(req.Phone) {
		userType = domain.UserTypeAdmin
	}

	created, err := s.clientRepo.Create(ctx, &domain.Client{
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Type:      userType,
	})
	if err != nil {
		// Параллельная регистрация того же номера
		if errors.Is(err, clientRepo.ErrPhoneTaken) {
			s.logger.Warn("LoginOrRegister: phone=%s registered concurrently, retrying lookup", req.Phone)
			return s.findAfterConflict(ctx, req.Phone)
		}
		s.logger.Error("LoginOrRegister: failed to create user: %v", err)
		return nil, fmt.Errorf("%w: LoginOrRegister - create user: %v", ErrInternal, err)
	}

	s.logger.Info("LoginOrRegister: registered user id=%d type=%s", created.ID, created.Type)
	return &models.LoginResponse{Client: *models.FromDomainClient(created), Registered: true}, nil
}

// IsAdminPhone проверяет, что номер принадлежит администратору
func (s *Service) IsAdminPhone(phone string) bool {
	return s.adminPhone != "" && strings.TrimSpace(phone) == s.adminPhone
}

// IsAdmin проверяет роль пользователя по ID
func (s *Service) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	c, err := s.getClient(ctx, "IsAdmin", userID)
	if err != nil {
		return false, err
	}
	return c.IsAdmin(), nil
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClientResponse, error) {
	c, err := s.getClient(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainClient(c), nil
}

// List возвращает всех зарегистрированных клиентов (без администраторов)
func (s *Service) List(ctx context.Context) (*models.ClientListResponse, error) {
	s.logger.Info("List: fetching clients")

	userType := domain.UserTypeClient
	list, err := s.clientRepo.List(ctx, &userType)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d clients", len(list))
	return models.FromDomainClientList(list), nil
}

// FindByPhone ищет пользователя по номеру телефона
func (s *Service) FindByPhone(ctx context.Context, phone string) (*models.ClientResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	c, err := s.clientRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("FindByPhone: phone=%s not found", phone)
			return nil, ErrClientNotFound
		}
		s.logger.Error("FindByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: FindByPhone - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClient(c), nil
}

func (s *Service) findAfterConflict(ctx context.Context, phone string) (*models.LoginResponse, error) {
	c, err := s.clientRepo.GetByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("LoginOrRegister: lookup after conflict failed: %v", err)
		return nil, fmt.Errorf("%w: LoginOrRegister - lookup after conflict: %v", ErrInternal, err)
	}
	return &models.LoginResponse{Client: *models.FromDomainClient(c)}, nil
}

func (s *Service) getClient(ctx context.Context, op string, id int64) (*domain.Client, error) {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, id)
			return nil, ErrClientNotFound
		}
		s.logger.Error("%s: repository error for user id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return c, nil
}

// validateLogin проверяет поля запроса на вход
func validateLogin(req *models.LoginRequest) error {
	if req.Phone == "" || req.FirstName == "" || req.LastName == "" {
		return fmt.Errorf("%w: phone, firstName and lastName are required", ErrInvalidInput)
	}

	phoneLen := utf8.RuneCountInString(req.Phone)
	if phoneLen < domain.MinPhoneLength || phoneLen > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone must be %d-%d characters", ErrInvalidInput, domain.MinPhoneLength, domain.MaxPhoneLength)
	}

	for _, r := range req.Phone {
		if (r < '0' || r > '9') && r != '+' && r != '-' && r != ' ' {
			return fmt.Errorf("%w: phone contains invalid characters", ErrInvalidInput)
		}
	}

	if utf8.RuneCountInString(req.FirstName) > domain.MaxNameLength || utf8.RuneCountInString(req.LastName) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	return nil
}
