package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/komolbek/raadarenda-sub001/internal/config"
	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

// stagingGateway approves every charge without contacting a provider.
// Used outside production so card checkout is testable end to end.
type stagingGateway struct {
	cardRepo repository.CardRepository
}

// productionGateway is a placeholder until a payment provider contract is
// signed. Every charge is declined so card orders cannot silently go
// uncollected in production.
type productionGateway struct {
	merchantID string
}

// NewPaymentGateway selects the gateway by configured mode.
func NewPaymentGateway(cfg *config.PaymentConfig, cardRepo repository.CardRepository) (PaymentGateway, error) {
	switch cfg.Mode {
	case "staging":
		return &stagingGateway{cardRepo: cardRepo}, nil
	case "production":
		return &productionGateway{merchantID: cfg.MerchantID}, nil
	default:
		return nil, fmt.Errorf("unknown payment mode: %s", cfg.Mode)
	}
}

func (g *stagingGateway) Charge(ctx context.Context, order *domain.Order, cardID int32) error {
	// The card must exist and belong to the order's customer even in
	// simulation, so staging exercises the same validation path.
	card, err := g.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPaymentFailed
		}
		return err
	}
	if card.UserID != order.UserID {
		return ErrPaymentFailed
	}
	logger.InfoContext(ctx, "Simulated card charge approved",
		"order_id", order.ID, "card_id", cardID, "amount", order.Total)
	return nil
}

func (g *productionGateway) Charge(ctx context.Context, order *domain.Order, cardID int32) error {
	logger.ErrorContext(ctx, "Production payment gateway is not integrated, declining charge",
		"order_id", order.ID, "merchant_id", g.merchantID)
	return ErrPaymentFailed
}
