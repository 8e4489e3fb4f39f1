package mintsvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmmuthu31/EzhuthAI/model"
)

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

const minter = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

func params(n int) []MintParams {
	out := make([]MintParams, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, MintParams{
			Recipient: minter,
			URI:       "ipfs://test",
			Title:     "Title " + string(rune('A'+i)),
			Author:    "Author",
			Year:      2024,
			Category:  "Poetry",
			WorkType:  "Poem",
		})
	}
	return out
}

func TestMint_BadAddress(t *testing.T) {
	s := New(nil, nil, nil, nil, nil, nil, nil, nil)
	_, err := s.Mint(context.Background(), minter, MintParams{Recipient: "not-an-address", Title: "x", Year: 2024}, 0)
	require.Error(t, err)
	require.Equal(t, ErrBadAddress, Code(err))
}

func TestBatchMint_EmptyBatch(t *testing.T) {
	s := New(nil, nil, nil, nil, nil, nil, nil, nil)
	_, err := s.BatchMint(context.Background(), minter, nil)
	require.Error(t, err)
	require.Equal(t, ErrEmptyBatch, Code(err))
}

func TestBatchMint_TooLarge(t *testing.T) {
	s := New(nil, nil, nil, nil, nil, nil, nil, nil)
	_, err := s.BatchMint(context.Background(), minter, params(model.MaxBatchSize+1))
	require.Error(t, err)
	require.Equal(t, ErrBatchTooLarge, Code(err))
}

func TestBatchMint_RequiresMinterRole(t *testing.T) {
	roles := &roleMock{
		hasFn: func(ctx context.Context, role model.Role, address string) (bool, error) {
			require.Equal(t, model.RoleMinter, role)
			require.Equal(t, minter, address)
			return false, nil
		},
	}
	s := New(nil, nil, nil, nil, roles, nil, nil, nil)
	_, err := s.BatchMint(context.Background(), minter, params(2))
	require.Error(t, err)
	require.Equal(t, ErrNotMinter, Code(err))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrTitleExists, Code(makeErr(ErrTitleExists)))
	require.Equal(t, ErrCode(""), Code(context.Canceled))
	require.Equal(t, ErrCode(""), Code(nil))
}
