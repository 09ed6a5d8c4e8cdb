// Package config holds the configuration value model, the merge engine and the
// interfaces implemented by the fetcher, parser and registry subpackages.
//
// A configuration document decodes into a Value, a tagged variant that is either
// a mapping, a sequence, a scalar or null. Mappings keep the order of their keys
// so documents round-trip in a stable order.
//
// # Merging
//
// MergeDicts combines mappings with later mappings taking precedence:
//
//	defaults:  {processing: {window: 10, taper: true}, pickers: [ar]}
//	overrides: {processing: {window: 30}, pickers: [baer, kalkan]}
//	result:    {processing: {window: 30, taper: true}, pickers: [baer, kalkan]}
//
// Nested mappings merge key by key. Everything else, sequences included, is
// replaced by the later value, and a mapping meeting a non-mapping is replaced
// too rather than reported as a conflict.
//
// # Loading
//
// Load glues a DataFetcher and a Decoder together and can narrow the result to a
// top-level section. Picking the file to load is the job of config/resolver.
package config
