// Package resolver decides which configuration file applies and loads it.
//
// The file is picked in this order:
//   - an explicit path given by the caller
//   - in test mode, the test fixture (config.Environment.TestFixture or the packaged one)
//   - config.yml in the configuration directory of the registry's current project
//
// The registry itself is located by config/registry: a .gmprocess/projects.conf in
// the working directory overrides the global one in the home directory.
//
// Layered adds the packaged defaults underneath, merging with config.MergeDicts.
package resolver
