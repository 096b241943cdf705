package config

// Config is the effective drip configuration
type Config struct {
	Recipe Recipe `koanf:"recipe" toml:"recipe"`
	Tools  Tools  `koanf:"tools" toml:"tools"`
	Output Output `koanf:"output" toml:"output"`
}

// Recipe locates the recipe file
type Recipe struct {
	Dir  string `koanf:"dir" toml:"dir"`
	File string `koanf:"file" toml:"file"`
}

// Tools names the external binaries drip drives
type Tools struct {
	Brew  string `koanf:"brew" toml:"brew"`
	Fetch string `koanf:"fetch" toml:"fetch"`
	Shell string `koanf:"shell" toml:"shell"`
}

// Output controls rendering
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Default returns the configuration described by the embedded defaults.
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserConfig: true, SkipEnv: true})
	if err != nil {
		// The embedded file is part of the binary; failing to parse it is a build defect.
		panic(err)
	}
	return cfg
}
