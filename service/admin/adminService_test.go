package adminsvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmmuthu31/EzhuthAI/model"
)

const caller = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

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

type stateMock struct {
	getFn func(ctx context.Context) (*model.LedgerState, error)
}

func (m *stateMock) Ensure(ctx context.Context, mintPriceWei int64) error { return nil }
func (m *stateMock) Get(ctx context.Context) (*model.LedgerState, error) { return m.getFn(ctx) }
func (m *stateMock) GetForUpdate(ctx context.Context, tx *sql.Tx) (*model.LedgerState, error) {
	return nil, sql.ErrNoRows
}
func (m *stateMock) UpdateCounter(ctx context.Context, tx *sql.Tx, counter int64) error { return nil }
func (m *stateMock) SetPaused(ctx context.Context, tx *sql.Tx, paused bool) error       { return nil }
func (m *stateMock) CreditPool(ctx context.Context, tx *sql.Tx, amountWei int64) error  { return nil }
func (m *stateMock) ZeroPool(ctx context.Context, tx *sql.Tx) error                     { return nil }

func TestPauseMinting_RequiresAdmin(t *testing.T) {
	roles := &roleMock{
		hasFn: func(ctx context.Context, role model.Role, address string) (bool, error) {
			require.Equal(t, model.RoleAdmin, role)
			require.Equal(t, caller, address)
			return false, nil
		},
	}
	s := New(nil, nil, roles, nil, nil)

	err := s.PauseMinting(context.Background(), caller)
	require.Equal(t, ErrNotAdmin, Code(err))

	err = s.UnpauseMinting(context.Background(), caller)
	require.Equal(t, ErrNotAdmin, Code(err))
}

func TestEmergencyWithdraw_RequiresAdmin(t *testing.T) {
	s := New(nil, nil, &roleMock{}, nil, nil)
	_, err := s.EmergencyWithdraw(context.Background(), caller)
	require.Equal(t, ErrNotAdmin, Code(err))
}

func TestStatus_PassThrough(t *testing.T) {
	st := &stateMock{
		getFn: func(ctx context.Context) (*model.LedgerState, error) {
			return &model.LedgerState{TokenCounter: 3, MintingPaused: true, MintPriceWei: 10, PlatformPoolWei: 30}, nil
		},
	}
	s := New(nil, st, nil, nil, nil)

	got, err := s.Status(context.Background())
	require.NoError(t, err)
	require.True(t, got.MintingPaused)
	require.Equal(t, int64(3), got.TokenCounter)
}
