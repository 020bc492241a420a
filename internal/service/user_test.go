package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-service/internal/apperr"
)

func TestCreateUser(t *testing.T) {
	ts := newTestServices(t)

	u, err := ts.users.Create(UserInput{Username: "alice", Email: "alice@example.com", Age: intPtr(30)})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)
}

func TestCreateUserMissingFields(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.users.Create(UserInput{Email: "alice@example.com"})
	assert.ErrorIs(t, err, apperr.ErrMissingField)

	_, err = ts.users.Create(UserInput{Username: "alice"})
	assert.ErrorIs(t, err, apperr.ErrMissingField)
}

func TestCreateUserAgeBounds(t *testing.T) {
	ts := newTestServices(t)

	tests := []struct {
		name    string
		age     int
		wantErr bool
	}{
		{"below minimum", -1, true},
		{"at minimum", 0, false},
		{"at maximum", 150, false},
		{"above maximum", 151, true},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := UserInput{
				Username: "user" + string(rune('a'+i)),
				Email:    "user" + string(rune('a'+i)) + "@example.com",
				Age:      intPtr(tt.age),
			}
			_, err := ts.users.Create(in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrInvalidRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateUserNilAgeIsAllowed(t *testing.T) {
	ts := newTestServices(t)

	u, err := ts.users.Create(UserInput{Username: "noage", Email: "noage@example.com"})
	require.NoError(t, err)
	assert.Nil(t, u.Age)
}

func TestCreateUserDuplicates(t *testing.T) {
	ts := newTestServices(t)
	_, err := ts.users.Create(UserInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = ts.users.Create(UserInput{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)

	_, err = ts.users.Create(UserInput{Username: "other", Email: "alice@example.com"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)
}

func TestUpdateUser(t *testing.T) {
	ts := newTestServices(t)
	u, err := ts.users.Create(UserInput{Username: "alice", Email: "alice@example.com", Age: intPtr(30)})
	require.NoError(t, err)

	// Keeping your own username on update is not a duplicate.
	updated, err := ts.users.Update(u.ID, UserInput{Username: "alice", Email: "new@example.com", Age: intPtr(31)})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)

	_, err = ts.users.Create(UserInput{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = ts.users.Update(u.ID, UserInput{Username: "bob", Email: "new@example.com"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)
}

func TestUpdateUserNotFound(t *testing.T) {
	ts := newTestServices(t)
	_, err := ts.users.Update(9999, UserInput{Username: "ghost", Email: "g@example.com"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateAge(t *testing.T) {
	ts := newTestServices(t)
	u, err := ts.users.Create(UserInput{Username: "alice", Email: "alice@example.com", Age: intPtr(30)})
	require.NoError(t, err)

	updated, err := ts.users.UpdateAge(u.ID, 31)
	require.NoError(t, err)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 31, *updated.Age)

	_, err = ts.users.UpdateAge(u.ID, 200)
	assert.ErrorIs(t, err, apperr.ErrInvalidRange)
}

func TestDeleteUserCascades(t *testing.T) {
	ts := newTestServices(t)
	u, err := ts.users.Create(UserInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	d, err := ts.departments.Create(DepartmentInput{Name: "Engineering"})
	require.NoError(t, err)
	require.NoError(t, ts.membership.Attach(u.ID, d.ID))

	order, err := ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "Laptop", Quantity: 1, Price: dec("5999.00")},
	}})
	require.NoError(t, err)

	require.NoError(t, ts.users.Delete(u.ID))

	_, err = ts.users.Get(u.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = ts.orders.Get(order.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	users, err := ts.membership.UsersOf(d.ID)
	require.NoError(t, err)
	assert.Empty(t, users, "memberships go with the user")
}

func TestDeleteUserNotFound(t *testing.T) {
	ts := newTestServices(t)
	err := ts.users.Delete(9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateBatchAllOrNothing(t *testing.T) {
	ts := newTestServices(t)

	users, err := ts.users.CreateBatch([]UserInput{
		{Username: "alice", Email: "alice@example.com"},
		{Username: "bob", Email: "bob@example.com"},
	})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	// The third candidate collides; the first two valid ones must not stick.
	_, err = ts.users.CreateBatch([]UserInput{
		{Username: "carol", Email: "carol@example.com"},
		{Username: "dave", Email: "dave@example.com"},
		{Username: "alice", Email: "dup@example.com"},
	})
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)

	all, err := ts.users.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
