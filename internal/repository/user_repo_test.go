package repository

import (
	"Ripple/internal/model"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepoMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepoMemory()

	alice := &model.User{Username: "alice", Password: "hash"}
	require.NoError(t, repo.CreateUser(ctx, alice))
	assert.Equal(t, uint64(1), alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	assert.ErrorIs(t, repo.CreateUser(ctx, &model.User{Username: "alice"}), ErrUserDuplicate)

	bob := &model.User{Username: "bob"}
	require.NoError(t, repo.CreateUser(ctx, bob))
	assert.Equal(t, uint64(2), bob.ID)

	got, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash", got.Password)

	got.Password = "tampered"
	again, err := repo.GetUserById(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hash", again.Password)

	missing, err := repo.GetUserById(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.GetUserByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err := repo.GetUserByIds(ctx, []uint64{2, 99, 1})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
}

func TestUserRepoMemory_ConcurrentRegister(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepoMemory()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.CreateUser(ctx, &model.User{Username: fmt.Sprintf("user%d", i%10)})
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrUserDuplicate)
			dup++
		}
	}
	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, dup)
}

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, isDuplicateEntry(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.True(t, isDuplicateEntry(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, isDuplicateEntry(&mysql.MySQLError{Number: 1045}))
	assert.False(t, isDuplicateEntry(nil))
}
