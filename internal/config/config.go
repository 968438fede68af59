package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int
	TaxRate      float64 // IVA applied on top of net catalog prices
	DefaultTopN  int     // matches per item when the request does not say
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8083"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "128"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	tax := getfloat("TAX_RATE", 0.19)
	topN, _ := strconv.Atoi(getenv("DEFAULT_TOP_N", "5"))
	if topN <= 0 {
		topN = 5
	}
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", "logs/match-service.log"),
		MaxUploadMB:  mb,
		TaxRate:      tax,
		DefaultTopN:  topN,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return def
	}
	return f
}
