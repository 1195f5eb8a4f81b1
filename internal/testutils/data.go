package testutils

import (
	"fmt"

	"github.com/guanggu/icollege/internal/utils"
	"github.com/guanggu/icollege/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Well-known document ids.
var (
	RoleSuperAdministratorID = mustObjectID("111111111111111111111111")
	RoleAdministratorID      = mustObjectID("222222222222222222222222")
	RoleICollegerID          = mustObjectID("333333333333333333333333")

	OwnerID  = mustObjectID("ffffffffffffffffffffffff")
	AdminID  = mustObjectID("eeeeeeeeeeeeeeeeeeeeeeee")
	AuthorID = mustObjectID("dddddddddddddddddddddddd")
)

// ContentUser is a fixture user before its password is hashed.
type ContentUser struct {
	Name     string
	Slug     string
	Email    string
	Password string
}

// ContentUsers are the fixture users. The first one is the owner; its
// credentials are the ones [Fixtures.Login] uses.
var ContentUsers = []ContentUser{
	{Name: "Joe Bloggs", Slug: "joe-bloggs", Email: "jbloggs@example.com", Password: "Sl1m3rson99"},
	{Name: "Li He", Slug: "li-he", Email: "lihe@example.com", Password: "Sl1m3rson99"},
	{Name: "Wang Fang", Slug: "wang-fang", Email: "wangfang@example.com", Password: "Sl1m3rson99"},
	{Name: "Zhang Wei", Slug: "zhang-wei", Email: "zhangwei@example.com", Password: "Sl1m3rson99"},
	{Name: "Chen Jing", Slug: "chen-jing", Email: "chenjing@example.com", Password: "Sl1m3rson99"},
}

// Owner is the content of the owner account.
func Owner() ContentUser {
	return ContentUsers[0]
}

// Roles are the fixture roles.
func Roles() []models.Role {
	return []models.Role{
		{ID: RoleSuperAdministratorID, Name: "SuperAdministrator", Description: "Blog owner"},
		{ID: RoleAdministratorID, Name: "Administrator", Description: "Administrators"},
		{ID: RoleICollegerID, Name: "iColleger", Description: "Writers"},
	}
}

// placeholderOwner is the owner created before the blog is set up. Its
// password is unusable until owner:post overrides it.
func placeholderOwner() models.User {
	return models.User{
		ID:     OwnerID,
		Name:   "iCollege Owner",
		Slug:   "icollege-owner",
		Email:  "owner@icollege.invalid",
		Status: models.UserStatusInactive,
		Roles:  []primitive.ObjectID{RoleSuperAdministratorID},
	}
}

// createUser turns content into a storable user with a hashed password.
func createUser(content ContentUser, id primitive.ObjectID, roles ...primitive.ObjectID) (models.User, error) {
	hash, err := utils.HashPassword(content.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password of %s: %w", content.Email, err)
	}

	return models.User{
		ID:       id,
		Name:     content.Name,
		Slug:     content.Slug,
		Email:    content.Email,
		Password: hash,
		Status:   models.UserStatusActive,
		Roles:    roles,
	}, nil
}

// defaultSettings are stored by the settings fixture next to the database
// version.
func defaultSettings() []models.Setting {
	return []models.Setting{
		{Key: "title", Value: "iCollege", Type: "blog"},
		{Key: "description", Value: "Just a blogging platform.", Type: "blog"},
		{Key: "postsPerPage", Value: "5", Type: "blog"},
		{Key: "permalinks", Value: "/:slug/", Type: "blog"},
		{Key: "activeTheme", Value: "casper", Type: "theme"},
	}
}

func mustObjectID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return id
}
