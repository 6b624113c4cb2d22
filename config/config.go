package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"3000"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"dakabot"`

	// LINE Messaging API 配置
	LineChannelSecret string `env:"LINE_CHANNEL_SECRET"`
	LineChannelToken  string `env:"LINE_CHANNEL_ACCESS_TOKEN"`
	LineProvider      string `env:"LINE_PROVIDER" envDefault:"line"` // line, mock

	// PostgreSQL 配置
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"dakabot"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"daka"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// 公司打卡地点配置（最多 5 个槽位，名称留空则跳过该槽位）
	Site1Name   string  `env:"SITE1_NAME" envDefault:"民權總店"`
	Site1Lat    float64 `env:"SITE1_LAT" envDefault:"25.06334"`
	Site1Lng    float64 `env:"SITE1_LNG" envDefault:"121.52144"`
	Site1Radius float64 `env:"SITE1_RADIUS" envDefault:"200"`

	Site2Name   string  `env:"SITE2_NAME" envDefault:"松山分店"`
	Site2Lat    float64 `env:"SITE2_LAT" envDefault:"25.04913"`
	Site2Lng    float64 `env:"SITE2_LNG" envDefault:"121.57901"`
	Site2Radius float64 `env:"SITE2_RADIUS" envDefault:"300"`

	Site3Name   string  `env:"SITE3_NAME" envDefault:"宏匯百貨"`
	Site3Lat    float64 `env:"SITE3_LAT" envDefault:"25.05965"`
	Site3Lng    float64 `env:"SITE3_LNG" envDefault:"121.44954"`
	Site3Radius float64 `env:"SITE3_RADIUS" envDefault:"200"`

	Site4Name   string  `env:"SITE4_NAME" envDefault:"三創"`
	Site4Lat    float64 `env:"SITE4_LAT" envDefault:"25.04552"`
	Site4Lng    float64 `env:"SITE4_LNG" envDefault:"121.53132"`
	Site4Radius float64 `env:"SITE4_RADIUS" envDefault:"200"`

	Site5Name   string  `env:"SITE5_NAME" envDefault:"統一"`
	Site5Lat    float64 `env:"SITE5_LAT" envDefault:"25.04087"`
	Site5Lng    float64 `env:"SITE5_LNG" envDefault:"121.56540"`
	Site5Radius float64 `env:"SITE5_RADIUS" envDefault:"200"`

	// 下班提醒调度配置（台湾时间 HH:MM）
	ClockOutRemindAt      string `env:"CLOCK_OUT_REMIND_AT" envDefault:"18:30"`
	ClockOutReminderBatch int    `env:"CLOCK_OUT_REMINDER_BATCH" envDefault:"100"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// OpenTelemetry 配置
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingSampler float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 速率限制配置, 配置在中间件内
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"`
}

// SiteSlot 单个打卡地点槽位，startup 时转换为 geo.Site
type SiteSlot struct {
	Name   string
	Lat    float64
	Lng    float64
	Radius float64
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.LineProvider == "line" {
		if Cfg.LineChannelSecret == "" {
			log.Printf("WARN: LINE_CHANNEL_SECRET is not set, webhook signature verification will fail")
		}
		if Cfg.LineChannelToken == "" {
			log.Printf("WARN: LINE_CHANNEL_ACCESS_TOKEN is not set, replies will not be delivered")
		}
	}

	// 地点配置错误必须在启动期暴露，不能留到请求处理时
	if len(Cfg.SiteSlots()) == 0 {
		log.Fatal("At least one punch site must be configured (SITE1_NAME..SITE5_NAME)")
	}
}

// SiteSlots 返回已配置的打卡地点（名称非空的槽位）
func (c *Config) SiteSlots() []SiteSlot {
	all := []SiteSlot{
		{c.Site1Name, c.Site1Lat, c.Site1Lng, c.Site1Radius},
		{c.Site2Name, c.Site2Lat, c.Site2Lng, c.Site2Radius},
		{c.Site3Name, c.Site3Lat, c.Site3Lng, c.Site3Radius},
		{c.Site4Name, c.Site4Lat, c.Site4Lng, c.Site4Radius},
		{c.Site5Name, c.Site5Lat, c.Site5Lng, c.Site5Radius},
	}

	slots := make([]SiteSlot, 0, len(all))
	for _, s := range all {
		if s.Name == "" {
			continue
		}
		slots = append(slots, s)
	}

	return slots
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
