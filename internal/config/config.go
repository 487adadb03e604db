package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port      string
	DBDSN     string
	JWTSecret string
	TokenTTL  time.Duration
	MediaDir  string
	LogFile   string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "stockroom.db"
	} // sqlite file in project root
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Printf("[config] JWT_SECRET not set, using insecure dev default")
	}
	ttl := 24 * time.Hour
	if s := os.Getenv("TOKEN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			ttl = d
		} else {
			log.Printf("[config] bad TOKEN_TTL %q, keeping %s", s, ttl)
		}
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./stockroom.log" // default log sink in project root
	}

	cfg := Config{Port: port, DBDSN: dsn, JWTSecret: secret, TokenTTL: ttl, MediaDir: media, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s TOKEN_TTL=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.TokenTTL, cfg.MediaDir, cfg.LogFile)
	return cfg
}
