package resolver

import (
	"github.com/gmprocess/gmconf/config"
	yamlparser "github.com/gmprocess/gmconf/config/parser/yaml"
	"github.com/gmprocess/gmconf/config/registry"

	"go.uber.org/fx"
)

// NewModule creates an Fx module providing the project registry, the YAML decoder
// and the Resolver. It expects config.Environment and *slog.Logger in the container.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule() fx.Option {
	return fx.Module("resolver",
		fx.Provide(
			registry.FromEnvironment,
			func(file *registry.File) config.Registry { return file },
			yamlparser.NewParser,
			func(parser *yamlparser.Parser) config.Decoder { return parser },
			New,
		),
	)
}
