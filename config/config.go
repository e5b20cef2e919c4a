// config.go

package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/spf13/viper"
)

var (
	// ErrInvalidConfig 配置校验失败
	ErrInvalidConfig = errors.New("配置无效")
	// ErrInvalidPlayfield 场地放不下玩家
	ErrInvalidPlayfield = fmt.Errorf("%w: 场地尺寸小于玩家尺寸", ErrInvalidConfig)
)

// Config 服务器配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig 服务器基本配置
type ServerConfig struct {
	GamePort      int           `mapstructure:"game_port"`
	Debug         bool          `mapstructure:"debug"`
	LogLevel      string        `mapstructure:"log_level"`
	MaxRoomCount  int           `mapstructure:"max_room_count"`
	TickInterval  time.Duration `mapstructure:"tick_interval"`
	FrameEncoding string        `mapstructure:"frame_encoding"` // json 或 protobuf
	RateLimit     int           `mapstructure:"rate_limit"`     // 每个IP每分钟最多建立的连接数，0 为不限制
	// 可信反向代理（IP 或 CIDR），只有来自这些地址的请求才读取 X-Forwarded-For / X-Real-IP
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// GameConfig 游戏配置
type GameConfig struct {
	Playfield PlayfieldConfig `mapstructure:"playfield"`
	Enemies   []EnemyConfig   `mapstructure:"enemies"`
}

// PlayfieldConfig 场地尺寸（像素）
type PlayfieldConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// EnemyConfig 敌人布局
type EnemyConfig struct {
	X        float64                `mapstructure:"x"`
	Y        float64                `mapstructure:"y"`
	Width    float64                `mapstructure:"width"`
	Height   float64                `mapstructure:"height"`
	Health   uint32                 `mapstructure:"health"`
	Rotation []BulletTemplateConfig `mapstructure:"rotation"`
}

// BulletTemplateConfig 弹幕模板，偏移相对敌人位置
type BulletTemplateConfig struct {
	Kind    string  `mapstructure:"kind"`
	OffsetX float64 `mapstructure:"offset_x"`
	OffsetY float64 `mapstructure:"offset_y"`
}

// AuthConfig 认证配置，secret 为空时不校验令牌
type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	PoolSize     int `mapstructure:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig Config
)

// setDefaults 默认值，未提供配置文件时也能启动
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.game_port", 8081)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.max_room_count", 100)
	v.SetDefault("server.tick_interval", 16*time.Millisecond)
	v.SetDefault("server.frame_encoding", "json")
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("server.trusted_proxies", []string{})

	v.SetDefault("game.playfield.width", 600.0)
	v.SetDefault("game.playfield.height", 800.0)
	v.SetDefault("game.enemies", []map[string]any{
		defaultEnemy(100, 80),
		defaultEnemy(280, 60),
		defaultEnemy(460, 80),
	})

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "pixelstorm_arcade")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
}

func defaultEnemy(x, y float64) map[string]any {
	return map[string]any{
		"x":      x,
		"y":      y,
		"width":  40.0,
		"height": 30.0,
		"health": 100,
		"rotation": []map[string]any{
			{"kind": "basic", "offset_x": 10.0, "offset_y": 30.0},
			{"kind": "basic", "offset_x": 0.0, "offset_y": 30.0},
			{"kind": "basic", "offset_x": 20.0, "offset_y": 30.0},
		},
	}
}

// Load 从文件加载配置，configPath 为空时只使用默认值和环境变量
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PIXELSTORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("无法读取配置文件: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法解析配置文件: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfig 加载配置到 GlobalConfig
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	GlobalConfig = *cfg
	return nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Game.Playfield.Width < float64(models.PlayerWidth) || c.Game.Playfield.Height < float64(models.PlayerHeight) {
		return fmt.Errorf("%w (%vx%v，至少 %vx%v)", ErrInvalidPlayfield,
			c.Game.Playfield.Width, c.Game.Playfield.Height, models.PlayerWidth, models.PlayerHeight)
	}
	if c.Server.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval 必须为正数", ErrInvalidConfig)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: rate_limit 不能为负数", ErrInvalidConfig)
	}
	if _, err := c.Server.TrustedProxyPrefixes(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Server.FrameEncoding {
	case "json", "protobuf":
	default:
		return fmt.Errorf("%w: 未知的帧编码 %q", ErrInvalidConfig, c.Server.FrameEncoding)
	}

	for i, e := range c.Game.Enemies {
		if len(e.Rotation) == 0 {
			return fmt.Errorf("%w: 第 %d 个敌人的弹幕序列为空", ErrInvalidConfig, i)
		}
		if e.Width <= 0 || e.Height <= 0 {
			return fmt.Errorf("%w: 第 %d 个敌人的尺寸必须为正数", ErrInvalidConfig, i)
		}
		if e.Health == 0 {
			return fmt.Errorf("%w: 第 %d 个敌人的生命值必须大于 0", ErrInvalidConfig, i)
		}
	}

	return nil
}

// TrustedProxyPrefixes 解析可信代理列表，单个 IP 视为只含该地址的网段
func (c *ServerConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, entry := range c.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("无效的可信代理 %q: %w", entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("无效的可信代理 %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// GetDSN 获取PostgreSQL连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetRedisAddr 获取Redis连接地址
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
