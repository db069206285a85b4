package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		// No docker daemon; every test skips itself.
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=papertrade_test",
		},
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	_ = resource.Expire(180)

	dsn := fmt.Sprintf(
		"host=localhost port=%s user=test password=test dbname=papertrade_test sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	pool.MaxWait = 60 * time.Second
	if err := pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return err
		}

		testDB = db

		return nil
	}); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err := InitTables(testDB); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	_ = pool.Purge(resource)
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()

	if testDB == nil {
		t.Skip("postgres not available")
	}
}

func mustInsertUser(t *testing.T, username, cash string) User {
	t.Helper()

	user, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Username: username,
		Password: "hash",
		Cash:     decimal.RequireFromString(cash),
	})
	require.NoError(t, err)

	return user
}

func TestUserDAO_Insert_DuplicateUsername(t *testing.T) {
	requireDB(t)

	mustInsertUser(t, "dup-user", "10000")

	_, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Username: "dup-user",
		Password: "hash",
		Cash:     decimal.RequireFromString("10000"),
	})
	require.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserDAO_Find(t *testing.T) {
	requireDB(t)

	inserted := mustInsertUser(t, "find-user", "10000")
	d := NewUserDAO(testDB)

	byID, err := d.FindByID(context.Background(), inserted.ID)
	require.NoError(t, err)
	require.Equal(t, "find-user", byID.Username)
	require.True(t, byID.Cash.Equal(decimal.RequireFromString("10000")), "cash %v", byID.Cash)

	byName, err := d.FindByUsername(context.Background(), "find-user")
	require.NoError(t, err)
	require.Equal(t, inserted.ID, byName.ID)

	_, err = d.FindByID(context.Background(), 999999)
	require.ErrorIs(t, err, ErrUserNotFound)

	taken, err := d.UsernameTaken(context.Background(), "find-user")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = d.UsernameTaken(context.Background(), "FIND-USER")
	require.NoError(t, err)
	require.False(t, taken, "the check is case sensitive")
}

func TestLedgerDAO_BuySellRoundTrip(t *testing.T) {
	requireDB(t)

	user := mustInsertUser(t, "trader", "10000")
	d := NewLedgerDAO(testDB)
	ctx := context.Background()

	updated, err := d.ExecuteBuy(ctx, user.ID, "Acme Corp", "ACME", 10, decimal.RequireFromString("50"))
	require.NoError(t, err)
	require.True(t, updated.Cash.Equal(decimal.RequireFromString("9500")), "cash %v", updated.Cash)

	holdings, err := d.HoldingSums(ctx, "trader")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	require.EqualValues(t, 10, holdings[0].Shares)
	require.True(t, holdings[0].BoughtTotal.Equal(decimal.RequireFromString("500")), "bought total %v", holdings[0].BoughtTotal)

	updated, err = d.ExecuteSell(ctx, user.ID, "Acme Corp", "ACME", 4, decimal.RequireFromString("60"))
	require.NoError(t, err)
	require.True(t, updated.Cash.Equal(decimal.RequireFromString("9740")), "cash %v", updated.Cash)

	positions, err := d.Positions(ctx, "trader")
	require.NoError(t, err)
	require.Equal(t, []PositionSum{{Symbol: "ACME", Shares: 6}}, positions)

	// Selling the remainder empties the position and deletes its lots.
	_, err = d.ExecuteSell(ctx, user.ID, "Acme Corp", "ACME", 6, decimal.RequireFromString("60"))
	require.NoError(t, err)

	positions, err = d.Positions(ctx, "trader")
	require.NoError(t, err)
	require.Empty(t, positions)

	var lots int64
	require.NoError(t, testDB.Model(&Lot{}).Where("username = ?", "trader").Count(&lots).Error)
	require.Zero(t, lots)

	archive, err := d.FindArchive(ctx, "trader")
	require.NoError(t, err)
	require.Len(t, archive, 3)
	require.EqualValues(t, 10, archive[0].Shares)
	require.EqualValues(t, -4, archive[1].Shares)
	require.EqualValues(t, -6, archive[2].Shares)
}

func TestLedgerDAO_ExecuteBuy_InsufficientFunds(t *testing.T) {
	requireDB(t)

	user := mustInsertUser(t, "broke-trader", "100")
	d := NewLedgerDAO(testDB)
	ctx := context.Background()

	_, err := d.ExecuteBuy(ctx, user.ID, "Acme Corp", "ACME", 3, decimal.RequireFromString("50"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// The transaction rolled back in full.
	found, err := NewUserDAO(testDB).FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, found.Cash.Equal(decimal.RequireFromString("100")), "cash %v", found.Cash)

	archive, err := d.FindArchive(ctx, "broke-trader")
	require.NoError(t, err)
	require.Empty(t, archive)
}

func TestLedgerDAO_ExecuteSell_InsufficientShares(t *testing.T) {
	requireDB(t)

	user := mustInsertUser(t, "short-trader", "10000")
	d := NewLedgerDAO(testDB)
	ctx := context.Background()

	_, err := d.ExecuteBuy(ctx, user.ID, "Acme Corp", "ACME", 5, decimal.RequireFromString("50"))
	require.NoError(t, err)

	_, err = d.ExecuteSell(ctx, user.ID, "Acme Corp", "ACME", 6, decimal.RequireFromString("50"))
	require.ErrorIs(t, err, ErrInsufficientShares)

	positions, err := d.Positions(ctx, "short-trader")
	require.NoError(t, err)
	require.Equal(t, []PositionSum{{Symbol: "ACME", Shares: 5}}, positions)
}

func TestLedgerDAO_ExecuteBuy_UserNotFound(t *testing.T) {
	requireDB(t)

	_, err := NewLedgerDAO(testDB).ExecuteBuy(context.Background(), 999999, "Acme Corp", "ACME", 1, decimal.RequireFromString("50"))
	require.ErrorIs(t, err, ErrUserNotFound)
}
