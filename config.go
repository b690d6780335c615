package qreg

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Qubits  int
	Epsilon float64

	KeySize      int
	MaxAttempts  int
	PhotonFactor int
	Strategy     string
	PhotonStep   int

	LogLevel string
}

func NewConfig() *Config {
	return &Config{
		Qubits:       MaxQubits,
		Epsilon:      defaultEpsilon,
		KeySize:      128,
		MaxAttempts:  16,
		PhotonFactor: 2,
		Strategy:     "exponential",
		PhotonStep:   64,
		LogLevel:     "info",
	}
}

// NewViper returns a viper instance preloaded with the NewConfig defaults and
// QREG_ environment overrides, e.g. QREG_REGISTER_QUBITS.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("qreg")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func SetDefaults(v *viper.Viper) {
	cfg := NewConfig()

	v.SetDefault("register.qubits", cfg.Qubits)
	v.SetDefault("register.epsilon", cfg.Epsilon)
	v.SetDefault("bb84.key_size", cfg.KeySize)
	v.SetDefault("bb84.max_attempts", cfg.MaxAttempts)
	v.SetDefault("bb84.photon_factor", cfg.PhotonFactor)
	v.SetDefault("bb84.strategy", cfg.Strategy)
	v.SetDefault("bb84.photon_step", cfg.PhotonStep)
	v.SetDefault("log.level", cfg.LogLevel)
}

// LoadConfig resolves a Config from v. Keys v does not know keep the
// NewConfig defaults.
func LoadConfig(v *viper.Viper) *Config {
	cfg := NewConfig()

	if v.IsSet("register.qubits") {
		cfg.Qubits = v.GetInt("register.qubits")
	}
	if v.IsSet("register.epsilon") {
		cfg.Epsilon = v.GetFloat64("register.epsilon")
	}
	if v.IsSet("bb84.key_size") {
		cfg.KeySize = v.GetInt("bb84.key_size")
	}
	if v.IsSet("bb84.max_attempts") {
		cfg.MaxAttempts = v.GetInt("bb84.max_attempts")
	}
	if v.IsSet("bb84.photon_factor") {
		cfg.PhotonFactor = v.GetInt("bb84.photon_factor")
	}
	if v.IsSet("bb84.strategy") {
		cfg.Strategy = v.GetString("bb84.strategy")
	}
	if v.IsSet("bb84.photon_step") {
		cfg.PhotonStep = v.GetInt("bb84.photon_step")
	}
	if v.IsSet("log.level") {
		cfg.LogLevel = v.GetString("log.level")
	}

	return cfg
}

// RegisterOptions maps the register section of the config onto options.
func (cfg *Config) RegisterOptions() []RegisterOption {
	return []RegisterOption{
		WithEpsilon(cfg.Epsilon),
	}
}
