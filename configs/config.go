package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBSource string

	JWTSecret string
	JWTTTL    time.Duration

	// Driver accounts are identified by their email suffix.
	DriverEmailSuffix string

	// Starting grant given to a wallet created by the repair flow.
	RepairGrant float64

	// Payment gateway handling hosted-checkout top-ups.
	GatewayBaseURL string

	RedisAddr string
	RedisPass string
	RedisDB   int

	// How long guarded routes wait for bootstrap before answering 503.
	ReadyTimeout time.Duration

	DocsPort string
	DocsDir  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	grant, err := strconv.ParseFloat(getEnv("REPAIR_GRANT", "100"), 64)
	if err != nil {
		grant = 100
	}

	return &Config{
		Port:              getEnv("PORT", "8000"),
		DBSource:          getEnv("DB_SOURCE", "food.db"),
		JWTSecret:         getEnv("JWT_SECRET", "changeme"),
		JWTTTL:            time.Duration(24) * time.Hour,
		DriverEmailSuffix: getEnv("DRIVER_EMAIL_SUFFIX", "@driver.fooddelivery.com"),
		RepairGrant:       grant,
		GatewayBaseURL:    getEnv("GATEWAY_BASE_URL", "http://localhost:3000"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPass:         os.Getenv("REDIS_PASS"),
		RedisDB:           redisDB,
		ReadyTimeout:      time.Duration(5) * time.Second,
		DocsPort:          getEnv("DOCS_PORT", "6008"),
		DocsDir:           getEnv("DOCS_DIR", "swaggerDocs"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
