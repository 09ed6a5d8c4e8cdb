// Package gmconf loads the layered configuration of a multi-project tool.
//
// A project registry (projects.conf) names the current project and its
// configuration directory; the config.yml found there is decoded and can be
// merged over packaged defaults. NewApp wires these pieces with Fx:
//
//	env, err := config.LoadEnvironment(nil, "")
//	app := gmconf.NewApp(gmconf.WithEnvironment(env))
//	value, err := app.Resolver().GetConfig("", "processing")
//
// The building blocks live in the config packages and can be used without Fx.
package gmconf
