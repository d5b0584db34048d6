package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

// maxAddresses caps saved delivery addresses per customer.
const maxAddresses = 5

type userService struct {
	userRepo     repository.UserRepository
	addressRepo  repository.AddressRepository
	cardRepo     repository.CardRepository
	favoriteRepo repository.FavoriteRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	addressRepo repository.AddressRepository,
	cardRepo repository.CardRepository,
	favoriteRepo repository.FavoriteRepository,
) UserService {
	return &userService{
		userRepo:     userRepo,
		addressRepo:  addressRepo,
		cardRepo:     cardRepo,
		favoriteRepo: favoriteRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, language string) (*domain.User, error) {
	switch language {
	case "ru", "en", "uz":
	default:
		return nil, ErrValidation
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(name)
	user.Language = language
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListAddresses(ctx context.Context, userID int32) ([]domain.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

func (s *userService) CreateAddress(ctx context.Context, address *domain.Address) error {
	if strings.TrimSpace(address.Line) == "" || strings.TrimSpace(address.City) == "" {
		return ErrValidation
	}
	count, err := s.addressRepo.CountByUser(ctx, address.UserID)
	if err != nil {
		return err
	}
	if count >= maxAddresses {
		return ErrAddressLimit
	}
	// The first saved address always becomes the default.
	if count == 0 {
		address.IsDefault = true
	}
	return s.addressRepo.Create(ctx, address)
}

func (s *userService) UpdateAddress(ctx context.Context, address *domain.Address) error {
	existing, err := s.addressRepo.GetByID(ctx, address.ID)
	if err != nil {
		return err
	}
	if existing.UserID != address.UserID {
		return repository.ErrNotFound
	}
	if strings.TrimSpace(address.Line) == "" || strings.TrimSpace(address.City) == "" {
		return ErrValidation
	}
	return s.addressRepo.Update(ctx, address)
}

func (s *userService) DeleteAddress(ctx context.Context, userID, addressID int32) error {
	return s.addressRepo.Delete(ctx, addressID, userID)
}

func (s *userService) ListCards(ctx context.Context, userID int32) ([]domain.Card, error) {
	return s.cardRepo.ListByUser(ctx, userID)
}

func (s *userService) CreateCard(ctx context.Context, userID int32, pan string, expMonth, expYear int32, isDefault bool) (*domain.Card, error) {
	masked, err := maskPAN(pan)
	if err != nil {
		return nil, err
	}
	if expMonth < 1 || expMonth > 12 {
		return nil, ErrValidation
	}
	if expYear < int32(time.Now().Year()%100) {
		return nil, ErrValidation
	}

	existing, err := s.cardRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		isDefault = true
	}

	card := &domain.Card{
		UserID:      userID,
		MaskedPAN:   masked,
		ExpiryMonth: expMonth,
		ExpiryYear:  expYear,
		IsDefault:   isDefault,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *userService) SetDefaultCard(ctx context.Context, userID, cardID int32) error {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	if card.UserID != userID {
		return repository.ErrNotFound
	}
	card.IsDefault = true
	return s.cardRepo.Update(ctx, card)
}

func (s *userService) DeleteCard(ctx context.Context, userID, cardID int32) error {
	return s.cardRepo.Delete(ctx, cardID, userID)
}

func (s *userService) ListFavorites(ctx context.Context, userID int32) ([]domain.Product, error) {
	return s.favoriteRepo.ListProducts(ctx, userID)
}

func (s *userService) AddFavorite(ctx context.Context, userID, productID int32) error {
	// Adding twice is a no-op, not an error.
	exists, err := s.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.favoriteRepo.Add(ctx, userID, productID)
}

func (s *userService) RemoveFavorite(ctx context.Context, userID, productID int32) error {
	return s.favoriteRepo.Remove(ctx, userID, productID)
}

// maskPAN keeps only the leading 4 and trailing 4 digits. The full number
// is never persisted.
func maskPAN(pan string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, pan)
	if len(digits) != 16 {
		return "", ErrValidation
	}
	return fmt.Sprintf("%s ** ** %s", digits[:4], digits[12:]), nil
}
