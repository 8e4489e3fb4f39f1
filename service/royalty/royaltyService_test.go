package royaltysvc

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmmuthu31/EzhuthAI/model"
	"github.com/vmmuthu31/EzhuthAI/util/addr"
)

const admin = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

type roleMock struct {
	hasFn func(ctx context.Context, role model.Role, address string) (bool, error)
}

func (m *roleMock) Grant(ctx context.Context, tx *sql.Tx, role model.Role, address, grantedBy string) error {
	return nil
}
func (m *roleMock) Revoke(ctx context.Context, tx *sql.Tx, role model.Role, address string) error {
	return nil
}
func (m *roleMock) Has(ctx context.Context, role model.Role, address string) (bool, error) {
	if m.hasFn == nil {
		return false, nil
	}
	return m.hasFn(ctx, role, address)
}
func (m *roleMock) Members(ctx context.Context, role model.Role) ([]string, error) { return nil, nil }

type tokenMock struct {
	getFn func(ctx context.Context, tokenID int64) (*model.Token, error)
}

func (m *tokenMock) Insert(ctx context.Context, tx *sql.Tx, id int64, owner, creator, uri string) error {
	return nil
}
func (m *tokenMock) AppendOwnerToken(ctx context.Context, tx *sql.Tx, owner string, tokenID int64) error {
	return nil
}
func (m *tokenMock) RemoveOwnerToken(ctx context.Context, tx *sql.Tx, tokenID int64) error {
	return nil
}
func (m *tokenMock) UpdateOwner(ctx context.Context, tx *sql.Tx, tokenID int64, newOwner string) error {
	return nil
}
func (m *tokenMock) UpdateURI(ctx context.Context, tx *sql.Tx, tokenID int64, uri string) error {
	return nil
}
func (m *tokenMock) Get(ctx context.Context, tokenID int64) (*model.Token, error) {
	return m.getFn(ctx, tokenID)
}
func (m *tokenMock) GetForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (*model.Token, error) {
	return nil, sql.ErrNoRows
}
func (m *tokenMock) TokensOfOwner(ctx context.Context, owner string) ([]int64, error) {
	return nil, nil
}
func (m *tokenMock) BalanceOf(ctx context.Context, owner string) (int64, error) { return 0, nil }

type royaltyMock struct {
	getRateFn    func(ctx context.Context, tokenID int64) (int, bool, error)
	getBalanceFn func(ctx context.Context, address string) (int64, error)
}

func (m *royaltyMock) GetRate(ctx context.Context, tokenID int64) (int, bool, error) {
	return m.getRateFn(ctx, tokenID)
}
func (m *royaltyMock) GetRateForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (int, bool, error) {
	return 0, false, nil
}
func (m *royaltyMock) SetRate(ctx context.Context, tx *sql.Tx, tokenID int64, bps int) error {
	return nil
}
func (m *royaltyMock) GetBalance(ctx context.Context, address string) (int64, error) {
	return m.getBalanceFn(ctx, address)
}
func (m *royaltyMock) GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, address string) (int64, error) {
	return 0, nil
}
func (m *royaltyMock) CreditBalance(ctx context.Context, tx *sql.Tx, address string, amountWei int64) error {
	return nil
}
func (m *royaltyMock) ZeroBalance(ctx context.Context, tx *sql.Tx, address string) error {
	return nil
}

func tokenExists(creator string) *tokenMock {
	return &tokenMock{
		getFn: func(ctx context.Context, tokenID int64) (*model.Token, error) {
			return &model.Token{ID: tokenID, Owner: creator, Creator: creator}, nil
		},
	}
}

func TestSetRate_OutOfRange(t *testing.T) {
	s := New(nil, nil, nil, nil, nil, nil)

	err := s.SetRate(context.Background(), admin, 1, -1)
	require.Equal(t, ErrRateOutOfRange, Code(err))

	err = s.SetRate(context.Background(), admin, 1, model.MaxRoyaltyBps+1)
	require.Equal(t, ErrRateOutOfRange, Code(err))
}

func TestSetRate_RequiresAdmin(t *testing.T) {
	roles := &roleMock{
		hasFn: func(ctx context.Context, role model.Role, address string) (bool, error) {
			require.Equal(t, model.RoleAdmin, role)
			return false, nil
		},
	}
	s := New(nil, nil, nil, roles, nil, nil)
	err := s.SetRate(context.Background(), admin, 1, 500)
	require.Equal(t, ErrNotAdmin, Code(err))
}

func TestGetRate_DefaultWhenNoOverride(t *testing.T) {
	rm := &royaltyMock{
		getRateFn: func(ctx context.Context, tokenID int64) (int, bool, error) {
			return 0, false, nil
		},
	}
	s := New(nil, rm, tokenExists(admin), nil, nil, nil)

	rate, err := s.GetRate(context.Background(), 7)
	require.NoError(t, err)
	require.False(t, rate.HasOverride)
	require.Equal(t, model.DefaultRoyaltyBps, rate.EffectiveBps)
}

func TestGetRate_ZeroOverrideSticks(t *testing.T) {
	rm := &royaltyMock{
		getRateFn: func(ctx context.Context, tokenID int64) (int, bool, error) {
			return 0, true, nil
		},
	}
	s := New(nil, rm, tokenExists(admin), nil, nil, nil)

	rate, err := s.GetRate(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, rate.HasOverride)
	require.Equal(t, 0, rate.EffectiveBps)
}

func TestGetRate_TokenNotFound(t *testing.T) {
	tm := &tokenMock{
		getFn: func(ctx context.Context, tokenID int64) (*model.Token, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := New(nil, nil, tm, nil, nil, nil)
	_, err := s.GetRate(context.Background(), 404)
	require.Equal(t, ErrTokenNotFound, Code(err))
}

func TestQuote(t *testing.T) {
	rm := &royaltyMock{
		getRateFn: func(ctx context.Context, tokenID int64) (int, bool, error) {
			return 1000, true, nil
		},
	}
	s := New(nil, rm, tokenExists(admin), nil, nil, nil)

	amt, err := s.Quote(context.Background(), 1, 1_000_000)
	require.NoError(t, err)
	require.Equal(t, int64(100_000), amt)

	// truncating division, never rounds up
	amt, err = s.Quote(context.Background(), 1, 9)
	require.NoError(t, err)
	require.Equal(t, int64(0), amt)

	_, err = s.Quote(context.Background(), 1, -1)
	require.Equal(t, ErrBadSalePrice, Code(err))
}

func TestRecordSale_Validation(t *testing.T) {
	s := New(nil, nil, nil, &roleMock{}, nil, nil)

	_, err := s.RecordSale(context.Background(), admin, 1, 0)
	require.Equal(t, ErrBadSalePrice, Code(err))

	_, err = s.RecordSale(context.Background(), admin, 1, 100)
	require.Equal(t, ErrNotAdmin, Code(err))
}

func TestBalance_NormalizesAddress(t *testing.T) {
	want, err := addr.Normalize(admin)
	require.NoError(t, err)

	// balances are keyed by the checksummed address RecordSale credited
	rm := &royaltyMock{
		getBalanceFn: func(ctx context.Context, address string) (int64, error) {
			if address == want {
				return 42, nil
			}
			return 0, nil
		},
	}
	s := New(nil, rm, nil, nil, nil, nil)

	bal, err := s.Balance(context.Background(), strings.ToLower(admin))
	require.NoError(t, err)
	require.Equal(t, int64(42), bal)

	bal, err = s.Balance(context.Background(), strings.ToUpper(admin[2:]))
	require.NoError(t, err)
	require.Equal(t, int64(42), bal)

	_, err = s.Balance(context.Background(), "not-an-address")
	require.Equal(t, ErrBadAddress, Code(err))
}
