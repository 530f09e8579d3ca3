package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse/internal/cache"
	"warehouse/internal/database/dbtest"
	"warehouse/internal/logger"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/internal/service"
	"warehouse/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type accountFixture struct {
	ctx      context.Context
	roleRepo repository.RoleRepository
	roles    service.RoleService
	users    service.UserService
	admin    service.Actor
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	db := dbtest.Open(t)
	ctx := context.Background()
	roleRepo := repository.NewRoleRepository(db)
	audit := service.NewAuditService(repository.NewAuditRepository(db), logger.Discard())

	roles := service.NewRoleService(roleRepo, repository.NewTransactionManager(db), cache.NewMemoryPermissionCache(time.Minute))
	require.NoError(t, roles.SeedDefaultRolesAndPermissions(ctx))

	return &accountFixture{
		ctx:      ctx,
		roleRepo: roleRepo,
		roles:    roles,
		users:    service.NewUserService(repository.NewUserRepository(db), roleRepo, audit, testSecret, time.Hour),
		admin:    service.Actor{UserID: uuid.New(), Role: model.RoleAdmin},
	}
}

func TestSeedRolesIsRepeatable(t *testing.T) {
	f := newAccountFixture(t)
	require.NoError(t, f.roles.SeedDefaultRolesAndPermissions(f.ctx))

	roles, err := f.roles.ListRoles(f.ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 6)

	admin, err := f.roleRepo.GetPermissionsByRoleName(f.ctx, model.RoleAdmin)
	require.NoError(t, err)
	inspector, err := f.roleRepo.GetPermissionsByRoleName(f.ctx, model.RoleQCInspector)
	require.NoError(t, err)

	assert.Contains(t, admin, model.PermWAApprove)
	assert.Greater(t, len(admin), len(inspector))
	assert.Contains(t, inspector, model.PermQCUpdate)
	assert.NotContains(t, inspector, model.PermQCApprove)
}

func TestCreateUserAndLogin(t *testing.T) {
	f := newAccountFixture(t)

	created, err := f.users.CreateUser(f.ctx, f.admin, service.CreateUserRequest{
		Username: "lan.nguyen",
		Email:    "lan@example.com",
		FullName: "Lan Nguyen",
		Password: "secret123",
		Role:     model.RoleQCInspector,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = f.users.CreateUser(f.ctx, f.admin, service.CreateUserRequest{
		Username: "lan.nguyen", Email: "other@example.com", Password: "secret123", Role: model.RoleViewer,
	})
	assert.True(t, errors.Is(err, apperror.ErrDuplicateRecord))

	_, err = f.users.CreateUser(f.ctx, f.admin, service.CreateUserRequest{
		Username: "ghost", Email: "ghost@example.com", Password: "secret123", Role: "janitor",
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	tok, err := f.users.Login(f.ctx, service.LoginUserRequest{Email: "lan@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, tok.User.ID)

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, created.ID.String(), claims["sub"])
	assert.Equal(t, model.RoleQCInspector, claims["role"])

	_, err = f.users.Login(f.ctx, service.LoginUserRequest{Email: "lan@example.com", Password: "wrong-pass"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthenticated))
	_, err = f.users.Login(f.ctx, service.LoginUserRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthenticated))

	me, err := f.users.Me(f.ctx, service.Actor{UserID: created.ID, Role: model.RoleQCInspector})
	require.NoError(t, err)
	assert.Equal(t, "lan.nguyen", me.Username)
	assert.NotNil(t, me.Permissions)

	list, total, err := f.users.ListUsers(f.ctx, 0, 0, model.RoleQCInspector)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}
