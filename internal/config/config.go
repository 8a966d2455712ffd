package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultTopN = 5

type Config struct {
	Host             string
	Port             int
	AllowOrigins     []string
	LogLevel         string
	MaxUploadMB      int
	LogFile          string
	CatalogPath      string        // таблица болезнь -> симптомы (.csv/.xlsx/.xls)
	CatalogHeaderRow int           // строка заголовков (1-based)
	TreatmentPath    string        // JSON справочник лечения
	TopN             int           // сколько результатов отдаём по умолчанию
	CacheTTL         time.Duration // 0 = кэш ответов выключен
}

func Load() Config {
	// .env необязателен
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	hdr, err := strconv.Atoi(getenv("CATALOG_HEADER_ROW", "1"))
	if err != nil || hdr < 1 {
		hdr = 1
	}
	topN, err := strconv.Atoi(getenv("TOP_N", strconv.Itoa(DefaultTopN)))
	if err != nil || topN < 1 {
		topN = DefaultTopN
	}
	ttl, err := time.ParseDuration(getenv("CACHE_TTL", "5m"))
	if err != nil || ttl < 0 {
		ttl = 5 * time.Minute
	}
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:             getenv("HOST", "127.0.0.1"),
		Port:             port,
		AllowOrigins:     origins,
		LogLevel:         getenv("LOG_LEVEL", "info"),
		MaxUploadMB:      mb,
		LogFile:          getenv("LOG_FILE", "logs/symptom-service.log"),
		CatalogPath:      getenv("CATALOG_PATH", "data/disease_symptoms.csv"),
		CatalogHeaderRow: hdr,
		TreatmentPath:    getenv("TREATMENT_PATH", "data/drug_reference.json"),
		TopN:             topN,
		CacheTTL:         ttl,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
