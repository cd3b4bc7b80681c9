package config

// Presets are named starting configurations. Values not set here keep
// their defaults when fetched through Get.
var presets = map[string]Config{
	"classic": {
		// the reference ideal-gas demo: 400 bodies in a 300x300 box
		Width: 300, Height: 300, Radius: 5, ColRadiusFactor: 5,
		Bodies: 400, MaxSpeed: 0.03, TickMS: 20,
	},
	"sparse": {
		Width: 600, Height: 600, Radius: 5, ColRadiusFactor: 5,
		Bodies: 100, MaxSpeed: 0.03, TickMS: 20,
	},
	"dense": {
		Width: 300, Height: 300, Radius: 4, ColRadiusFactor: 6,
		Bodies: 800, MaxSpeed: 0.02, TickMS: 20,
	},
	"fast": {
		Width: 400, Height: 400, Radius: 5, ColRadiusFactor: 5,
		Bodies: 200, MaxSpeed: 0.12, TickMS: 10,
	},
}

// Get returns a copy of the named preset with run defaults filled in,
// or nil if the name is unknown.
func Get(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := p
	if cfg.DurationMS == 0 {
		cfg.DurationMS = DefaultDurationMS
	}
	if cfg.SampleEvery == 0 {
		cfg.SampleEvery = DefaultSampleEvery
	}
	return &cfg
}

func List() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
