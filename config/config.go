package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database     DatabaseConfigs     `toml:"database"`
	ApiServer    APIServerConfigs    `toml:"api_server"`
	Auth         AuthConfigs         `toml:"auth"`
	Session      SessionConfigs      `toml:"session"`
	Storage      StorageConfigs      `toml:"storage"`
	Redis        RedisConfigs        `toml:"redis"`
	Kafka        KafkaConfigs        `toml:"kafka"`
	AdDecision   AdDecisionConfigs   `toml:"ad_decision"`
	CustomerCare CustomerCareConfigs `toml:"customer_care"`
	Reward       RewardConfigs       `toml:"reward"`
}

type DatabaseConfigs struct {
	// Driver is either sqlite or mysql.
	Driver string `toml:"driver"`

	// DSN is used as is for sqlite. For mysql it is built from the other
	// fields when empty.
	DSN      string `toml:"dsn"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DatabaseConfigs) ConnectionString() string {
	if d.DSN != "" || d.Driver != "mysql" {
		return d.DSN
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type APIServerConfigs struct {
	ServerConfigs
	AllowedOrigins []string `toml:"allowed_origins"`
}

type AuthConfigs struct {
	TokenSecret string        `toml:"token_secret"`
	AccessToken TokenConfigs  `toml:"access_token"`
	Google      OAuth2Configs `toml:"google"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type OAuth2Configs struct {
	Name         string `toml:"name"`
	Issuer       string `toml:"issuer"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	IDField      string `toml:"id_field"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type StorageConfigs struct {
	// Backend of the key-value persistence: sql, redis or memory.
	Backend   string `toml:"backend"`
	KeyPrefix string `toml:"key_prefix"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr     string `toml:"addr"`
	ClientID string `toml:"client_id"`
}

func (c KafkaConfigs) Brokers() []string {
	if c.Addr == "" {
		return nil
	}

	return strings.Split(c.Addr, ",")
}

type AdDecisionConfigs struct {
	// ServerConfigs is the listen address of the addecision command.
	ServerConfigs

	// Endpoint of the JSON-RPC ad decision service. The local rule-based
	// decider is used when it is empty.
	Endpoint string        `toml:"endpoint"`
	RPCName  string        `toml:"rpc_name"`
	Timeout  time.Duration `toml:"timeout"`
}

type CustomerCareConfigs struct {
	// Endpoint of the JSON-RPC customer care service, served next to the ad
	// decision service. The local agent answers when it is empty.
	Endpoint string        `toml:"endpoint"`
	RPCName  string        `toml:"rpc_name"`
	Timeout  time.Duration `toml:"timeout"`

	// MaxHistory is the number of previous messages accepted with a query.
	MaxHistory int `toml:"max_history"`
}

type RewardConfigs struct {
	DiamondsPerUnit         uint64        `toml:"diamonds_per_unit"`
	MinimumPayout           uint64        `toml:"minimum_payout"`
	CommissionRateBps       uint64        `toml:"commission_rate_bps"`
	BasicDelay              time.Duration `toml:"basic_delay"`
	AdDelay                 time.Duration `toml:"ad_delay"`
	SettlementDelay         time.Duration `toml:"settlement_delay"`
	BonusDelay              time.Duration `toml:"bonus_delay"`
	MaxGameRewardPerSession uint64        `toml:"max_game_reward_per_session"`
	ReferralBaseURL         string        `toml:"referral_base_url"`
	NodeID                  int64         `toml:"node_id"`

	// An in-memory session untouched for SessionIdleTimeout is closed by the
	// sweep running every SessionSweepInterval. A zero timeout keeps every
	// session.
	SessionIdleTimeout   time.Duration `toml:"session_idle_timeout"`
	SessionSweepInterval time.Duration `toml:"session_sweep_interval"`
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver: "sqlite",
			DSN:    "goldenhours.db",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs:  ServerConfigs{Port: "8080"},
			AllowedOrigins: []string{"*"},
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{Name: "access_token", Expiration: 24 * time.Hour},
			Google: OAuth2Configs{
				Name:    "google",
				Issuer:  "https://accounts.google.com",
				IDField: "sub",
			},
		},
		Session: SessionConfigs{Name: "goldenhours_session"},
		Storage: StorageConfigs{Backend: "sql", KeyPrefix: "goldenhours"},
		Kafka:   KafkaConfigs{ClientID: "goldenhours"},
		AdDecision: AdDecisionConfigs{
			ServerConfigs: ServerConfigs{Port: "8081"},
			RPCName:       "adserving",
			Timeout:       5 * time.Second,
		},
		CustomerCare: CustomerCareConfigs{
			RPCName:    "customercare",
			Timeout:    10 * time.Second,
			MaxHistory: 20,
		},
		Reward: RewardConfigs{
			DiamondsPerUnit:   100,
			MinimumPayout:     500,
			CommissionRateBps: 2000,
			BasicDelay:        300 * time.Millisecond,
			AdDelay:           2 * time.Second,
			SettlementDelay:   2 * time.Second,
			BonusDelay:        3 * time.Second,
			ReferralBaseURL:   "https://golden-hours-app.apphosting.dev",

			SessionIdleTimeout:   30 * time.Minute,
			SessionSweepInterval: time.Minute,
		},
	}
}

// Load reads the configurations from a toml file on top of the defaults, then
// applies the environment overrides. An empty path skips the file.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Configs{}, err
	}

	if cfg.Reward.DiamondsPerUnit == 0 {
		return Configs{}, fmt.Errorf("reward.diamonds_per_unit must be positive")
	}

	if cfg.Reward.CommissionRateBps > 10000 {
		return Configs{}, fmt.Errorf("reward.commission_rate_bps must not exceed 10000")
	}

	return cfg, nil
}

func applyEnv(cfg *Configs) error {
	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Database, "DB_NAME")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.ApiServer.Host, "API_HOST")
	setString(&cfg.ApiServer.Port, "API_PORT")
	setString(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	setString(&cfg.Auth.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&cfg.Auth.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&cfg.Session.Secret, "SESSION_SECRET")
	setString(&cfg.Storage.Backend, "STORAGE_BACKEND")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Kafka.Addr, "KAFKA_ADDR")
	setString(&cfg.AdDecision.Endpoint, "AD_DECISION_ENDPOINT")
	setString(&cfg.CustomerCare.Endpoint, "CUSTOMER_CARE_ENDPOINT")
	setString(&cfg.Reward.ReferralBaseURL, "REFERRAL_BASE_URL")

	if err := setUint(&cfg.Reward.DiamondsPerUnit, "DIAMONDS_PER_UNIT"); err != nil {
		return err
	}

	if err := setUint(&cfg.Reward.MinimumPayout, "MINIMUM_PAYOUT"); err != nil {
		return err
	}

	if err := setUint(&cfg.Reward.MaxGameRewardPerSession, "MAX_GAME_REWARD_PER_SESSION"); err != nil {
		return err
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setUint(dst *uint64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}

	*dst = n
	return nil
}
