// Package yaml provides the YAML decoder for the config package.
//
// This package uses github.com/goccy/go-yaml with ordered maps, so the keys of
// every decoded mapping keep their document order, and Encode writes them back in
// the same order.
//
// Usage:
//
//	parser := yaml.NewParser()
//	value, err := parser.Decode(data)
//	out, err := parser.Encode(value)
//
// Decoding errors carry the line and column reported by go-yaml.
package yaml
