package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	commons "github.com/krazyTry/commons-abc-go/commons_abc"
	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
	"github.com/krazyTry/commons-abc-go/logger"
)

const EnvPrefix = "ABC"

type Config struct {
	RPC    RPCConfig   `mapstructure:"rpc"`
	Log    LogConfig   `mapstructure:"log"`
	Curve  CurveConfig `mapstructure:"curve"`
	Trades []Trade     `mapstructure:"trades"`
}

type RPCConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	Commitment     string        `mapstructure:"commitment"`
	MaxRetries     uint          `mapstructure:"max_retries"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxElapsed     time.Duration `mapstructure:"max_elapsed"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
	MaxSize     int    `mapstructure:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	Compress    bool   `mapstructure:"compress"`
}

// CurveConfig holds the parameters of a simulated curve.
type CurveConfig struct {
	Kappa          uint64 `mapstructure:"kappa"`
	Exponent       uint64 `mapstructure:"exponent"`
	InitialPrice   uint64 `mapstructure:"initial_price"`
	Friction       uint64 `mapstructure:"friction"`
	InitialReserve uint64 `mapstructure:"initial_reserve"`
	InitialSupply  uint64 `mapstructure:"initial_supply"`
	Decimals       uint8  `mapstructure:"decimals"`
}

type Trade struct {
	Side   string `mapstructure:"side"`
	Amount uint64 `mapstructure:"amount"`
}

var defaults = map[string]any{
	"rpc.endpoint":        "https://api.devnet.solana.com",
	"rpc.commitment":      "finalized",
	"rpc.max_retries":     5,
	"rpc.initial_backoff": "500ms",
	"rpc.max_elapsed":     "15s",

	"log.level":       "info",
	"log.development": false,
	"log.file":        "abcsim.log",
	"log.max_size":    100,
	"log.max_backups": 3,
	"log.max_age":     7,
	"log.compress":    true,

	"curve.kappa":           2,
	"curve.exponent":        1,
	"curve.initial_price":   1,
	"curve.friction":        50_000,
	"curve.initial_reserve": 1_000_000,
	"curve.initial_supply":  1_000_000,
	"curve.decimals":        6,
}

// Load reads defaults, then the optional file at path, then ABC_*
// environment variables (ABC_RPC_ENDPOINT overrides rpc.endpoint).
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	parsed, err := url.Parse(c.RPC.Endpoint)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("invalid rpc.endpoint %q", c.RPC.Endpoint)
	}
	switch c.RPC.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid rpc.commitment %q", c.RPC.Commitment)
	}
	if c.RPC.MaxRetries == 0 {
		return errors.New("rpc.max_retries must be positive")
	}

	if c.Curve.Kappa < abc.MinKappa {
		return fmt.Errorf("curve.kappa: %w", abc.ErrInvalidKappa)
	}
	if c.Curve.Friction > abc.MaxFriction {
		return fmt.Errorf("curve.friction: %w", abc.ErrInvalidFriction)
	}
	if c.Curve.InitialReserve == 0 {
		return errors.New("curve.initial_reserve must be positive")
	}

	for i, trade := range c.Trades {
		if _, err := trade.Direction(); err != nil {
			return fmt.Errorf("trades[%d]: %w", i, err)
		}
		if trade.Amount == 0 {
			return fmt.Errorf("trades[%d]: amount must be positive", i)
		}
	}
	return nil
}

func (c LogConfig) Logger() *logger.Config {
	return &logger.Config{
		Level:       c.Level,
		LogFile:     c.File,
		MaxSize:     c.MaxSize,
		MaxAge:      c.MaxAge,
		MaxBackups:  c.MaxBackups,
		Compress:    c.Compress,
		Development: c.Development,
	}
}

func (c CurveConfig) Params() commons.InitializeCurveParams {
	return commons.InitializeCurveParams{
		Kappa:          c.Kappa,
		Exponent:       c.Exponent,
		InitialPrice:   c.InitialPrice,
		Friction:       c.Friction,
		InitialReserve: c.InitialReserve,
		InitialSupply:  c.InitialSupply,
	}
}

func (t Trade) Direction() (abc.TradeDirection, error) {
	switch strings.ToLower(t.Side) {
	case "buy":
		return abc.TradeDirectionBuy, nil
	case "sell":
		return abc.TradeDirectionSell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", t.Side)
	}
}
