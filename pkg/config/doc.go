// Package config loads the pipeline configuration.
//
// Layers are applied in order, later ones overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project file: assetwatch.toml, assetwatch.yaml or assetwatch.yml
//     in the project directory, or an explicit file
//  3. ASSETWATCH_* entries of a .env file in the project directory
//  4. ASSETWATCH_* environment variables
//  5. overrides supplied by the caller, usually command-line flags
//
// Environment keys drop the prefix, are lower-cased and use a double
// underscore for nesting: ASSETWATCH_MINIFY__SCRIPT=false sets
// minify.script. List values are comma separated.
//
// The resulting Config is validated and its relative paths are resolved
// against the project directory. It is not modified afterwards.
package config
