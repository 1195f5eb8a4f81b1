package testutils

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/service"
	"github.com/guanggu/icollege/internal/store"
	"github.com/guanggu/icollege/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fixture names with a special meaning to [Fixtures.GetFixtureOps].
const (
	// FixtureInit empties the database and records the schema version.
	FixtureInit = "init"
	// FixtureDefault is FixtureInit followed by the data of a freshly
	// installed blog: roles, a placeholder owner and the default settings.
	FixtureDefault = "default"
)

// Op is one named fixture operation.
type Op struct {
	Name string
	Run  func(ctx context.Context) error
}

// Fixtures seeds the repositories of one database.
type Fixtures struct {
	users      store.UserRepository
	roles      store.RoleRepository
	settings   store.SettingsRepository
	versioning service.VersioningService

	// clientID is sent with token requests.
	clientID string

	ops map[string]func(ctx context.Context) error

	logger *logger.Logger
}

// NewFixtures returns the fixture registry for repos. clientID is the
// client_id the server accepts on its token endpoint.
func NewFixtures(repos *store.Repositories, versioning service.VersioningService, clientID string, logger *logger.Logger) *Fixtures {
	f := &Fixtures{
		users:      repos.UserRepository,
		roles:      repos.RoleRepository,
		settings:   repos.SettingsRepository,
		versioning: versioning,
		clientID:   clientID,
		logger:     logger,
	}

	f.ops = map[string]func(ctx context.Context) error{
		"roles":         f.insertRoles,
		"settings":      f.populateSettings,
		"owner":         f.insertOwnerUser,
		"owner:pre":     f.initOwnerUser,
		"owner:post":    f.overrideOwnerUser,
		"users:roles":   f.createUsersWithRoles,
		"users":         f.createExtraUsers,
		"users:invited": f.createInvitedUsers,
	}

	return f
}

// GetFixtureOps turns fixture names into the operations to run.
//
// "init" or "default" yield a single database initialisation that always
// comes first; the remaining names follow in the given order. Repeated
// names run once. An unregistered name yields [ErrUnknownFixture].
func (f *Fixtures) GetFixtureOps(names ...string) ([]Op, error) {
	var ordered []string
	for _, name := range names {
		if !slices.Contains(ordered, name) {
			ordered = append(ordered, name)
		}
	}

	var ops []Op

	withDefaults := slices.Contains(ordered, FixtureDefault)
	if withDefaults || slices.Contains(ordered, FixtureInit) {
		name := FixtureInit
		if withDefaults {
			name = FixtureDefault
		}
		ops = append(ops, Op{Name: name, Run: func(ctx context.Context) error {
			return f.initDB(ctx, !withDefaults)
		}})
	}

	for _, name := range ordered {
		if name == FixtureInit || name == FixtureDefault {
			continue
		}

		run, ok := f.ops[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFixture, name)
		}
		ops = append(ops, Op{Name: name, Run: run})
	}

	return ops, nil
}

// InitFixtures initialises the database and runs the named fixtures.
func (f *Fixtures) InitFixtures(ctx context.Context, names ...string) error {
	ops, err := f.GetFixtureOps(append([]string{FixtureInit}, names...)...)
	if err != nil {
		return err
	}

	return f.sequence(ctx, ops)
}

// Setup returns a test hook running [Fixtures.InitFixtures] with names.
func (f *Fixtures) Setup(names ...string) func(t testing.TB) {
	return func(t testing.TB) {
		t.Helper()
		require.NoError(t, f.InitFixtures(t.Context(), names...), "fixtures setup")
	}
}

// Teardown empties the database.
func (f *Fixtures) Teardown(t testing.TB) {
	t.Helper()
	require.NoError(t, f.ClearData(context.WithoutCancel(t.Context())), "fixtures teardown")
}

// ClearData deletes every document the fixtures can create.
func (f *Fixtures) ClearData(ctx context.Context) error {
	return errors.Join(
		f.users.DeleteAll(ctx),
		f.roles.DeleteAll(ctx),
		f.settings.DeleteAll(ctx),
	)
}

// sequence runs ops one after the other and stops at the first failure.
func (f *Fixtures) sequence(ctx context.Context, ops []Op) error {
	for _, op := range ops {
		f.logger.Debug().Str("fixture", op.Name).Msg("running fixture")
		if err := op.Run(ctx); err != nil {
			return fmt.Errorf("fixture %s: %w", op.Name, err)
		}
	}
	return nil
}

func (f *Fixtures) initDB(ctx context.Context, tablesOnly bool) error {
	if err := f.ClearData(ctx); err != nil {
		return err
	}
	if tablesOnly {
		return f.versioning.SetDatabaseVersion(ctx)
	}

	if err := f.insertRoles(ctx); err != nil {
		return err
	}
	if err := f.users.Insert(ctx, placeholderOwner()); err != nil {
		return err
	}
	return f.populateSettings(ctx)
}

// insertRoles stores the fixture roles unless they are already there.
func (f *Fixtures) insertRoles(ctx context.Context) error {
	if err := f.roles.Insert(ctx, Roles()...); err != nil && !errors.Is(err, store.ErrRoleAlreadyExists) {
		return err
	}
	return nil
}

func (f *Fixtures) populateSettings(ctx context.Context) error {
	if err := f.versioning.SetDatabaseVersion(ctx); err != nil {
		return err
	}

	for _, setting := range defaultSettings() {
		if err := f.settings.Upsert(ctx, setting); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fixtures) insertOwnerUser(ctx context.Context) error {
	owner, err := createUser(Owner(), OwnerID, RoleSuperAdministratorID)
	if err != nil {
		return err
	}

	return f.users.Insert(ctx, owner)
}

// initOwnerUser stores the roles and an owner that has signed in.
func (f *Fixtures) initOwnerUser(ctx context.Context) error {
	if err := f.insertRoles(ctx); err != nil {
		return err
	}

	owner, err := createUser(Owner(), OwnerID, RoleSuperAdministratorID)
	if err != nil {
		return err
	}
	owner.Status = models.UserStatusOnline

	return f.users.Insert(ctx, owner)
}

// overrideOwnerUser gives the existing owner the fixture credentials.
func (f *Fixtures) overrideOwnerUser(ctx context.Context) error {
	owner, err := createUser(Owner(), OwnerID, RoleSuperAdministratorID)
	if err != nil {
		return err
	}

	return f.users.UpdateByID(ctx, OwnerID, owner)
}

// createUsersWithRoles stores the roles and one user per role.
func (f *Fixtures) createUsersWithRoles(ctx context.Context) error {
	if err := f.insertRoles(ctx); err != nil {
		return err
	}

	perRole := []struct {
		content ContentUser
		id      primitive.ObjectID
		role    primitive.ObjectID
	}{
		{ContentUsers[0], OwnerID, RoleSuperAdministratorID},
		{ContentUsers[1], AdminID, RoleAdministratorID},
		{ContentUsers[2], AuthorID, RoleICollegerID},
	}

	users := make([]models.User, 0, len(perRole))
	for _, u := range perRole {
		user, err := createUser(u.content, u.id, u.role)
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	return f.users.Insert(ctx, users...)
}

// createExtraUsers stores three more writers.
func (f *Fixtures) createExtraUsers(ctx context.Context) error {
	return f.insertPrefixedUsers(ctx, "a", models.UserStatusActive)
}

// createInvitedUsers stores three writers that have not accepted their
// invitation yet.
func (f *Fixtures) createInvitedUsers(ctx context.Context) error {
	return f.insertPrefixedUsers(ctx, "inv", models.UserStatusInvitedPending)
}

// insertPrefixedUsers stores ContentUsers[2:5] with prefix in front of
// their email and slug so they do not collide with users:roles.
func (f *Fixtures) insertPrefixedUsers(ctx context.Context, prefix, status string) error {
	extra := ContentUsers[2:5]

	users := make([]models.User, 0, len(extra))
	for _, content := range extra {
		content.Email = prefix + content.Email
		content.Slug = prefix + content.Slug

		user, err := createUser(content, primitive.NewObjectID(), RoleICollegerID)
		if err != nil {
			return err
		}
		user.Status = status
		users = append(users, user)
	}

	return f.users.Insert(ctx, users...)
}
