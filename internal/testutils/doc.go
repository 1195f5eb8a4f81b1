// Package testutils seeds a database with well-known data for integration
// tests and obtains access tokens for the seeded owner.
//
// Fixtures are named operations ("default", "roles", "owner:post", ...)
// composed by [Fixtures.GetFixtureOps] and run in order by
// [Fixtures.InitFixtures]. A typical route test looks like:
//
//	fixtures := testutils.NewFixtures(repos, versioning, "icollege-admin", log)
//	fixtures.Setup("default")(t)
//	t.Cleanup(func() { fixtures.Teardown(t) })
//	token, err := fixtures.DoAuth(ctx, client)
package testutils
