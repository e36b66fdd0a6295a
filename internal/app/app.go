package app

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr            string
	DBDriver        string
	DatabaseURL     string
	SessionLifetime time.Duration
	RequestTimeout  time.Duration
	AdminUsernames  []string
}

func LoadConfig() Config {
	addr := getenv("ADDR", ":8080")
	driver := getenv("DB_DRIVER", "sqlite3")
	dbURL := getenv("DATABASE_URL", "./blog.db")

	lifeHours := getenv("SESSION_LIFETIME_HOURS", "24")
	dur, err := time.ParseDuration(lifeHours + "h")
	if err != nil {
		log.Printf("config: bad SESSION_LIFETIME_HOURS=%q, using 24h", lifeHours)
		dur = 24 * time.Hour
	}

	timeout := 5 * time.Second
	if secs, err := strconv.Atoi(getenv("REQUEST_TIMEOUT_SECONDS", "5")); err == nil && secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	var admins []string
	for _, name := range strings.Split(getenv("ADMIN_USERNAMES", ""), ",") {
		if name = strings.TrimSpace(name); name != "" {
			admins = append(admins, name)
		}
	}

	return Config{
		Addr:            addr,
		DBDriver:        driver,
		DatabaseURL:     dbURL,
		SessionLifetime: dur,
		RequestTimeout:  timeout,
		AdminUsernames:  admins,
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func Must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
