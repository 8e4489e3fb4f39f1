package litsvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmmuthu31/EzhuthAI/model"
)

const (
	curator = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	holder  = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
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

type litMock struct {
	getLiteratureFn func(ctx context.Context, tokenID int64) (*model.Literature, error)
	byCategoryFn    func(ctx context.Context, category string) ([]int64, error)
	byAuthorFn      func(ctx context.Context, author string) ([]int64, error)
}

func (m *litMock) Insert(ctx context.Context, tx *sql.Tx, tokenID int64, title, author string, year int, category, workType string) error {
	return nil
}
func (m *litMock) TitleExists(ctx context.Context, tx *sql.Tx, title string) (bool, error) {
	return false, nil
}
func (m *litMock) UpdateMetadata(ctx context.Context, tx *sql.Tx, tokenID int64, title, author string, year int, category, workType string) error {
	return nil
}
func (m *litMock) SetVerified(ctx context.Context, tx *sql.Tx, tokenID int64) error { return nil }
func (m *litMock) Get(ctx context.Context, tokenID int64) (*model.LiteratureRecord, error) {
	return nil, sql.ErrNoRows
}
func (m *litMock) GetForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (*model.LiteratureRecord, error) {
	return nil, sql.ErrNoRows
}
func (m *litMock) GetLiterature(ctx context.Context, tokenID int64) (*model.Literature, error) {
	return m.getLiteratureFn(ctx, tokenID)
}
func (m *litMock) TokensByCategory(ctx context.Context, category string) ([]int64, error) {
	return m.byCategoryFn(ctx, category)
}
func (m *litMock) TokensByAuthor(ctx context.Context, author string) ([]int64, error) {
	return m.byAuthorFn(ctx, author)
}

type tokenMock struct {
	tokensOfOwnerFn func(ctx context.Context, owner string) ([]int64, error)
	balanceOfFn     func(ctx context.Context, owner string) (int64, error)
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
	return nil, sql.ErrNoRows
}
func (m *tokenMock) GetForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (*model.Token, error) {
	return nil, sql.ErrNoRows
}
func (m *tokenMock) TokensOfOwner(ctx context.Context, owner string) ([]int64, error) {
	return m.tokensOfOwnerFn(ctx, owner)
}
func (m *tokenMock) BalanceOf(ctx context.Context, owner string) (int64, error) {
	return m.balanceOfFn(ctx, owner)
}

func TestVerify_RequiresCuratorRole(t *testing.T) {
	roles := &roleMock{
		hasFn: func(ctx context.Context, role model.Role, address string) (bool, error) {
			require.Equal(t, model.RoleCurator, role)
			return false, nil
		},
	}
	s := New(nil, nil, nil, roles, nil)
	err := s.Verify(context.Background(), holder, 1)
	require.Error(t, err)
	require.Equal(t, ErrNotCurator, Code(err))
}

func TestUpdateMetadata_Validation(t *testing.T) {
	s := New(nil, nil, nil, nil, nil)

	err := s.UpdateMetadata(context.Background(), curator, 1, UpdateParams{Title: "", Year: 2024})
	require.Equal(t, ErrEmptyTitle, Code(err))

	err = s.UpdateMetadata(context.Background(), curator, 1, UpdateParams{Title: "x", Year: 9999})
	require.Equal(t, ErrFutureYear, Code(err))
}

func TestUpdateTokenURI_RequiresUpdaterRole(t *testing.T) {
	roles := &roleMock{}
	s := New(nil, nil, nil, roles, nil)
	err := s.UpdateTokenURI(context.Background(), holder, 1, "ipfs://new")
	require.Equal(t, ErrNotUpdater, Code(err))

	err = s.UpdateTokenURI(context.Background(), holder, 1, "")
	require.Equal(t, ErrEmptyURI, Code(err))
}

func TestTransfer_BadDestination(t *testing.T) {
	s := New(nil, nil, nil, nil, nil)
	err := s.Transfer(context.Background(), holder, 1, "nope")
	require.Equal(t, ErrBadAddress, Code(err))
}

func TestGet_NotFound(t *testing.T) {
	lm := &litMock{
		getLiteratureFn: func(ctx context.Context, tokenID int64) (*model.Literature, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := New(nil, lm, nil, nil, nil)
	_, err := s.Get(context.Background(), 404)
	require.Error(t, err)
	require.Equal(t, ErrTokenNotFound, Code(err))
}

func TestQueries_PassThrough(t *testing.T) {
	lm := &litMock{
		byCategoryFn: func(ctx context.Context, category string) ([]int64, error) {
			require.Equal(t, "Poetry", category)
			return []int64{1, 3}, nil
		},
		byAuthorFn: func(ctx context.Context, author string) ([]int64, error) { return nil, nil },
	}
	tm := &tokenMock{
		tokensOfOwnerFn: func(ctx context.Context, owner string) ([]int64, error) {
			require.Equal(t, holder, owner)
			return []int64{2}, nil
		},
		balanceOfFn: func(ctx context.Context, owner string) (int64, error) { return 1, nil },
	}
	s := New(nil, lm, tm, nil, nil)

	ids, err := s.TokensByCategory(context.Background(), "Poetry")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3}, ids)

	// unmatched author query is empty, not an error
	ids, err = s.TokensByAuthor(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, ids)

	ids, err = s.TokensOfOwner(context.Background(), holder)
	require.NoError(t, err)
	require.Equal(t, []int64{2}, ids)

	n, err := s.BalanceOf(context.Background(), holder)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestBalanceOf_BadAddress(t *testing.T) {
	s := New(nil, nil, nil, nil, nil)
	_, err := s.BalanceOf(context.Background(), "0x123")
	require.Equal(t, ErrBadAddress, Code(err))
}
