package postgres

import (
	"database/sql"

	"github.com/komolbek/raadarenda-sub001/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CategoryRepository
	repository.ProductRepository
	repository.OrderRepository
	repository.UserRepository
	repository.SessionRepository
	repository.OTPRepository
	repository.AddressRepository
	repository.CardRepository
	repository.FavoriteRepository
	repository.SettingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		CategoryRepository: NewCategoryRepository(db),
		ProductRepository:  NewProductRepository(db),
		OrderRepository:    NewOrderRepository(db),
		UserRepository:     NewUserRepository(db),
		SessionRepository:  NewSessionRepository(db),
		OTPRepository:      NewOTPRepository(db),
		AddressRepository:  NewAddressRepository(db),
		CardRepository:     NewCardRepository(db),
		FavoriteRepository: NewFavoriteRepository(db),
		SettingRepository:  NewSettingRepository(db),
	}
}
