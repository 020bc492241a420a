package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-service/internal/apperr"
)

func TestMembershipCreateAndExists(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "alice", "alice@example.com", 30)
	d := mustCreateDepartment(t, s, "Engineering")

	exists, err := s.MembershipExists(u.ID, d.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.CreateMembership(u.ID, d.ID))

	exists, err = s.MembershipExists(u.ID, d.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMembershipPairIsUnique(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "alice", "alice@example.com", 30)
	d := mustCreateDepartment(t, s, "Engineering")

	require.NoError(t, s.CreateMembership(u.ID, d.ID))
	err := s.CreateMembership(u.ID, d.ID)
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)
}

func TestDeleteMembership(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "alice", "alice@example.com", 30)
	d := mustCreateDepartment(t, s, "Engineering")
	require.NoError(t, s.CreateMembership(u.ID, d.ID))

	n, err := s.DeleteMembership(u.ID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Second delete is a no-op.
	n, err = s.DeleteMembership(u.ID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestMembershipBothSidesDerived(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice", "alice@example.com", 30)
	bob := mustCreateUser(t, s, "bob", "bob@example.com", 25)
	eng := mustCreateDepartment(t, s, "Engineering")
	sales := mustCreateDepartment(t, s, "Sales")

	require.NoError(t, s.CreateMembership(alice.ID, eng.ID))
	require.NoError(t, s.CreateMembership(alice.ID, sales.ID))
	require.NoError(t, s.CreateMembership(bob.ID, eng.ID))

	departments, err := s.DepartmentsOfUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, departments, 2)

	users, err := s.UsersOfDepartment(eng.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	count, err := s.CountUsersOfDepartment(sales.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteMembershipsByUserAndDepartment(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice", "alice@example.com", 30)
	bob := mustCreateUser(t, s, "bob", "bob@example.com", 25)
	eng := mustCreateDepartment(t, s, "Engineering")
	sales := mustCreateDepartment(t, s, "Sales")
	require.NoError(t, s.CreateMembership(alice.ID, eng.ID))
	require.NoError(t, s.CreateMembership(alice.ID, sales.ID))
	require.NoError(t, s.CreateMembership(bob.ID, eng.ID))

	require.NoError(t, s.DeleteMembershipsByUser(alice.ID))
	departments, err := s.DepartmentsOfUser(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, departments)

	require.NoError(t, s.DeleteMembershipsByDepartment(eng.ID))
	count, err := s.CountUsersOfDepartment(eng.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
