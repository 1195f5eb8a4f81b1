package testutils

import (
	"context"
	"errors"
	"testing"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/mock"
	"github.com/guanggu/icollege/internal/store"
	"github.com/guanggu/icollege/internal/utils"
	"github.com/guanggu/icollege/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

type testRepos struct {
	users      *mock.MockUserRepository
	roles      *mock.MockRoleRepository
	settings   *mock.MockSettingsRepository
	versioning *mock.MockVersioningService
}

func newTestFixtures(t *testing.T) (*Fixtures, testRepos) {
	t.Helper()

	ctrl := gomock.NewController(t)
	r := testRepos{
		users:      mock.NewMockUserRepository(ctrl),
		roles:      mock.NewMockRoleRepository(ctrl),
		settings:   mock.NewMockSettingsRepository(ctrl),
		versioning: mock.NewMockVersioningService(ctrl),
	}

	f := NewFixtures(&store.Repositories{
		UserRepository:     r.users,
		RoleRepository:     r.roles,
		SettingsRepository: r.settings,
	}, r.versioning, "icollege-admin", logger.Nop())

	return f, r
}

func (r testRepos) expectClear() *gomock.Call {
	r.users.EXPECT().DeleteAll(gomock.Any()).Return(nil)
	r.roles.EXPECT().DeleteAll(gomock.Any()).Return(nil)
	return r.settings.EXPECT().DeleteAll(gomock.Any()).Return(nil)
}

func opNames(ops []Op) []string {
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
	}
	return names
}

// ── GetFixtureOps ───────────────────────────────────────────────────────────

func TestGetFixtureOps_Order(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "nothing", input: nil, want: nil},
		{name: "init comes first", input: []string{"settings", "init"}, want: []string{"init", "settings"}},
		{name: "default replaces init", input: []string{"init", "roles", "default"}, want: []string{"default", "roles"}},
		{name: "repeated names run once", input: []string{"users", "default", "roles", "users"}, want: []string{"default", "users", "roles"}},
		{name: "no database init", input: []string{"owner:post", "users:invited"}, want: []string{"owner:post", "users:invited"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFixtures(t)

			ops, err := f.GetFixtureOps(tt.input...)

			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, ops)
				return
			}
			assert.Equal(t, tt.want, opNames(ops))
		})
	}
}

func TestGetFixtureOps_Unknown(t *testing.T) {
	f, _ := newTestFixtures(t)

	_, err := f.GetFixtureOps("roles", "perms:post")

	require.ErrorIs(t, err, ErrUnknownFixture)
	assert.Contains(t, err.Error(), "perms:post")
}

// ── InitFixtures ────────────────────────────────────────────────────────────

func TestInitFixtures_AlwaysInitialises(t *testing.T) {
	f, r := newTestFixtures(t)

	gomock.InOrder(
		r.expectClear(),
		r.versioning.EXPECT().SetDatabaseVersion(gomock.Any()).Return(nil),
		r.roles.EXPECT().Insert(gomock.Any(), Roles()[0], Roles()[1], Roles()[2]).Return(nil),
	)

	require.NoError(t, f.InitFixtures(context.Background(), "roles"))
}

func TestInitFixtures_Default(t *testing.T) {
	f, r := newTestFixtures(t)

	gomock.InOrder(
		r.expectClear(),
		r.roles.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		r.users.EXPECT().Insert(gomock.Any(), placeholderOwner()).Return(nil),
		r.versioning.EXPECT().SetDatabaseVersion(gomock.Any()).Return(nil),
	)

	var keys []string
	r.settings.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, setting models.Setting) error {
			keys = append(keys, setting.Key)
			return nil
		}).Times(len(defaultSettings()))

	require.NoError(t, f.InitFixtures(context.Background(), "default"))
	assert.Equal(t, []string{"title", "description", "postsPerPage", "permalinks", "activeTheme"}, keys)
}

func TestInitFixtures_StopsAtFirstFailure(t *testing.T) {
	f, r := newTestFixtures(t)
	boom := errors.New("not primary")

	r.expectClear()
	r.versioning.EXPECT().SetDatabaseVersion(gomock.Any()).Return(nil)
	r.roles.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(boom)
	// "owner" must not run

	err := f.InitFixtures(context.Background(), "roles", "owner")

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fixture roles")
}

func TestInitFixtures_ClearFailure(t *testing.T) {
	f, r := newTestFixtures(t)
	boom := errors.New("unauthorized")

	r.users.EXPECT().DeleteAll(gomock.Any()).Return(boom)
	r.roles.EXPECT().DeleteAll(gomock.Any()).Return(nil)
	r.settings.EXPECT().DeleteAll(gomock.Any()).Return(nil)

	err := f.InitFixtures(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fixture init")
}

func TestSetupAndTeardown(t *testing.T) {
	f, r := newTestFixtures(t)

	gomock.InOrder(
		r.expectClear(),
		r.versioning.EXPECT().SetDatabaseVersion(gomock.Any()).Return(nil),
		r.expectClear(),
	)

	f.Setup()(t)
	f.Teardown(t)
}

// ── individual fixtures ─────────────────────────────────────────────────────

func TestRolesFixture_AlreadyThere(t *testing.T) {
	f, r := newTestFixtures(t)
	r.roles.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(store.ErrRoleAlreadyExists)

	require.NoError(t, f.insertRoles(context.Background()))
}

func TestOwnerPreFixture(t *testing.T) {
	f, r := newTestFixtures(t)

	gomock.InOrder(
		r.roles.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		r.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, users ...models.User) error {
				require.Len(t, users, 1)
				assert.Equal(t, OwnerID, users[0].ID)
				assert.Equal(t, models.UserStatusOnline, users[0].Status)
				return nil
			}),
	)

	ops, err := f.GetFixtureOps("owner:pre")
	require.NoError(t, err)
	require.NoError(t, f.sequence(context.Background(), ops))
}

func TestOwnerPostFixture_SetsCredentials(t *testing.T) {
	f, r := newTestFixtures(t)

	r.users.EXPECT().UpdateByID(gomock.Any(), OwnerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ primitive.ObjectID, user models.User) error {
			assert.Equal(t, Owner().Email, user.Email)
			assert.Equal(t, models.UserStatusActive, user.Status)
			assert.Equal(t, []primitive.ObjectID{RoleSuperAdministratorID}, user.Roles)
			assert.NoError(t, utils.CheckPassword(user.Password, Owner().Password))
			return nil
		})

	require.NoError(t, f.overrideOwnerUser(context.Background()))
}

func TestOwnerPostFixture_NoOwner(t *testing.T) {
	f, r := newTestFixtures(t)
	r.users.EXPECT().UpdateByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(store.ErrNoUserWasFound)

	require.ErrorIs(t, f.overrideOwnerUser(context.Background()), store.ErrNoUserWasFound)
}

func TestUsersRolesFixture_OnePerRole(t *testing.T) {
	f, r := newTestFixtures(t)

	r.roles.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	r.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, users ...models.User) error {
			require.Len(t, users, 3)

			byRole := map[primitive.ObjectID]primitive.ObjectID{}
			for _, u := range users {
				require.Len(t, u.Roles, 1)
				byRole[u.Roles[0]] = u.ID
			}
			assert.Equal(t, map[primitive.ObjectID]primitive.ObjectID{
				RoleSuperAdministratorID: OwnerID,
				RoleAdministratorID:      AdminID,
				RoleICollegerID:          AuthorID,
			}, byRole)
			return nil
		})

	require.NoError(t, f.createUsersWithRoles(context.Background()))
}

func TestExtraUsersFixtures(t *testing.T) {
	tests := []struct {
		fixture    string
		wantEmail  string
		wantSlug   string
		wantStatus string
	}{
		{"users", "awangfang@example.com", "awang-fang", models.UserStatusActive},
		{"users:invited", "invwangfang@example.com", "invwang-fang", models.UserStatusInvitedPending},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			f, r := newTestFixtures(t)

			r.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, users ...models.User) error {
					require.Len(t, users, 3)
					assert.Equal(t, tt.wantEmail, users[0].Email)
					assert.Equal(t, tt.wantSlug, users[0].Slug)
					for _, u := range users {
						assert.Equal(t, tt.wantStatus, u.Status)
						assert.False(t, u.ID.IsZero())
					}
					return nil
				})

			ops, err := f.GetFixtureOps(tt.fixture)
			require.NoError(t, err)
			require.NoError(t, f.sequence(context.Background(), ops))
		})
	}

	// the content users themselves are left untouched
	assert.Equal(t, "wangfang@example.com", ContentUsers[2].Email)
}
