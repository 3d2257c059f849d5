package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"darf/internal/app"
	"darf/internal/cache/local"
	"darf/internal/config"
	"darf/internal/domain"
	"darf/internal/service"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{Driver: "memory"},
		JWT:   config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Hour, Issuer: "darf"},
		Redis: config.RedisConfig{CacheTTL: time.Minute},
		Email: config.EmailConfig{Provider: "noop"},
		Admin: config.AdminConfig{Email: "Root@Example.com", Password: "supersecret", FullName: "Root"},
	}
}

func TestNew_MemoryWiring(t *testing.T) {
	a, err := app.New(memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	assert.Nil(t, a.Redis)
	assert.Nil(t, a.Storage)
	assert.IsType(t, &local.Cache{}, a.Cache)
	assert.NotNil(t, a.Records)
	assert.NotNil(t, a.Reports)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	a, err := app.New(memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, a.EnsureAdmin(ctx))
	require.NoError(t, a.EnsureAdmin(ctx))

	user, err := a.Users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	token, err := a.Auth.Login(ctx, service.LoginInput{Email: "root@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
}

func TestEnsureAdmin_RequiresPassword(t *testing.T) {
	cfg := memoryConfig()
	cfg.Admin.Password = ""
	a, err := app.New(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Error(t, a.EnsureAdmin(context.Background()))
}

func TestRecordFlow_EndToEnd(t *testing.T) {
	a, err := app.New(memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	paid := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	rec, err := a.Records.Create(ctx, service.RecordInput{
		OrgUnit:        domain.OrgUnitPrimary,
		DocumentNumber: "123ab456789",
		PayerTaxID:     "12345678000195",
		InvoiceNumber:  1,
		InvoiceDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		PaymentDate:    &paid,
		IncomeNature:   "17040",
		GrossAmount:    decimalFromString(t, "1000.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, rec.Status)
	assert.Equal(t, "6190", rec.Withholding.FiscalCode)

	totals, err := a.Aggregates.TotalWithheld(ctx, 2024, 3, domain.OrgUnitPrimary)
	require.NoError(t, err)
	assert.Equal(t, "94.50", totals.TotalWithheld.StringFixed(2))

	report, err := a.Reports.Monthly(ctx, 2024, 3)
	require.NoError(t, err)
	assert.Len(t, report.Partitions, 2)
	assert.Empty(t, report.Archives)
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
