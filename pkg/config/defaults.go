package config

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
//
// nix.path deliberately has no default: guessing /etc/nixos would silently
// edit a system file, so an unset path forces the bootstrap prompt instead.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Rebuild: RebuildConfig{
			Auto:        false,
			HomeManager: false,
			Flake:       false,
		},
	}
}
