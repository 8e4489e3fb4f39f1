package accesssvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmmuthu31/EzhuthAI/model"
	"github.com/vmmuthu31/EzhuthAI/util/addr"
)

const someone = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

type roleMock struct {
	hasFn     func(ctx context.Context, role model.Role, address string) (bool, error)
	membersFn func(ctx context.Context, role model.Role) ([]string, error)
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
func (m *roleMock) Members(ctx context.Context, role model.Role) ([]string, error) {
	return m.membersFn(ctx, role)
}

type blacklistMock struct {
	isFn func(ctx context.Context, address string) (bool, error)
}

func (m *blacklistMock) Set(ctx context.Context, tx *sql.Tx, address string, blacklisted bool) error {
	return nil
}
func (m *blacklistMock) IsBlacklisted(ctx context.Context, address string) (bool, error) {
	return m.isFn(ctx, address)
}

func TestGrantRole_BadInputs(t *testing.T) {
	s := New(nil, nil, nil, nil)

	err := s.GrantRole(context.Background(), someone, model.Role("SUPERUSER"), someone)
	require.Equal(t, ErrBadRole, Code(err))

	err = s.GrantRole(context.Background(), someone, model.RoleMinter, "not-an-address")
	require.Equal(t, ErrBadAddress, Code(err))
}

func TestGrantRole_RequiresAdmin(t *testing.T) {
	roles := &roleMock{
		hasFn: func(ctx context.Context, role model.Role, address string) (bool, error) {
			require.Equal(t, model.RoleAdmin, role)
			require.Equal(t, someone, address)
			return false, nil
		},
	}
	s := New(nil, roles, nil, nil)
	err := s.GrantRole(context.Background(), someone, model.RoleCurator, someone)
	require.Equal(t, ErrNotAdmin, Code(err))
}

func TestRevokeRole_RequiresAdmin(t *testing.T) {
	s := New(nil, &roleMock{}, nil, nil)
	err := s.RevokeRole(context.Background(), someone, model.RoleCurator, someone)
	require.Equal(t, ErrNotAdmin, Code(err))
}

func TestHasRole(t *testing.T) {
	roles := &roleMock{
		hasFn: func(ctx context.Context, role model.Role, address string) (bool, error) {
			return role == model.RoleMinter, nil
		},
	}
	s := New(nil, roles, nil, nil)

	ok, err := s.HasRole(context.Background(), model.RoleMinter, someone)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.HasRole(context.Background(), model.Role("nope"), someone)
	require.Equal(t, ErrBadRole, Code(err))
}

func TestMembers_BadRole(t *testing.T) {
	s := New(nil, nil, nil, nil)
	_, err := s.Members(context.Background(), model.Role(""))
	require.Equal(t, ErrBadRole, Code(err))
}

func TestSetBlacklistStatus_RequiresModerator(t *testing.T) {
	roles := &roleMock{
		hasFn: func(ctx context.Context, role model.Role, address string) (bool, error) {
			require.Equal(t, model.RoleModerator, role)
			return false, nil
		},
	}
	s := New(nil, roles, nil, nil)
	err := s.SetBlacklistStatus(context.Background(), someone, someone, true)
	require.Equal(t, ErrNotModerator, Code(err))
}

func TestIsBlacklisted(t *testing.T) {
	want, err := addr.Normalize(someone)
	require.NoError(t, err)

	bl := &blacklistMock{
		isFn: func(ctx context.Context, address string) (bool, error) {
			require.Equal(t, want, address)
			return true, nil
		},
	}
	s := New(nil, nil, bl, nil)

	ok, err := s.IsBlacklisted(context.Background(), someone)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.IsBlacklisted(context.Background(), "0xzz")
	require.Equal(t, ErrBadAddress, Code(err))
}
