// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	pitmock "github.com/KirkDiggler/cyber-pit/internal/orchestrators/pit/mock"
	shopmock "github.com/KirkDiggler/cyber-pit/internal/orchestrators/shop/mock"
)

// ExpectPurchase sets up the ledger calls of a successful purchase and
// captures the robot that gets persisted
func ExpectPurchase(ctx context.Context, mockLedger *shopmock.MockLedger, balance, cost int, saved **robot.Instance) {
	gomock.InOrder(
		mockLedger.EXPECT().CurrentBalance(ctx).Return(balance, nil),
		mockLedger.EXPECT().Debit(ctx, cost).Return(nil),
		mockLedger.EXPECT().PersistRobot(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r *robot.Instance) error {
				if saved != nil {
					*saved = r
				}
				return nil
			}),
	)
}

// ExpectSettle sets up the ledger calls of a settled fight. A payout of
// zero expects no credit.
func ExpectSettle(ctx context.Context, mockLedger *pitmock.MockLedger, player *robot.Instance, payout int) {
	if payout > 0 {
		mockLedger.EXPECT().Credit(ctx, payout).Return(nil)
	}
	mockLedger.EXPECT().PersistRobot(ctx, player).Return(nil)
}
