package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBType     string `env:"DB_TYPE" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DB_USER" envDefault:""`
	DBPassword string `env:"DB_PASSWORD" envDefault:""`
	DBAddr     string `env:"DB_ADDR" envDefault:""`
	DBName     string `env:"DB_NAME" envDefault:"account"`
	DBPath     string `env:"DB_PATH" envDefault:"account.db"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	// 凭据摘要与默认管理员
	HashAlgorithm  string `env:"HASH_ALGORITHM" envDefault:"sha256"`
	AdminKeyLength int    `env:"ADMIN_KEY_LENGTH" envDefault:"15"`

	// 明文密钥只在本地诊断日志中输出一次，生产环境应关闭
	LogPlaintextSecrets bool `env:"LOG_PLAINTEXT_SECRETS" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	JWTSecret            string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"account-store"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"1440"`
}

// LoadDotEnv 加载 .env 文件到环境变量，文件不存在时忽略。已设置的环境变量不会被覆盖
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.WithFields(logrus.Fields{
		"db_type":        Conf.DBType,
		"db_path":        Conf.DBPath,
		"hash_algorithm": Conf.HashAlgorithm,
	}).Debug("config parsed")
	return Conf, nil
}

// NewLogger 根据配置构建 logrus 日志器
func NewLogger(cfg Config) *logrus.Logger {
	logger := logrus.New()
	switch cfg.LogFormat {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
