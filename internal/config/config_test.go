package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Second},
		Session: SessionConfig{UserCount: 12, UserPrefix: "Пользователь", AuditSize: 10},
		Import:  ImportConfig{MaxFileSize: 1, MaxConcurrent: 1, MaxWait: time.Second},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100, ImportLimit: 10},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Enabled: true, Namespace: "orderdesk"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Session.UserCount != 12 {
		t.Errorf("Session.UserCount = %d, want %d", cfg.Session.UserCount, 12)
	}
	if cfg.Session.UserPrefix != "Пользователь" {
		t.Errorf("Session.UserPrefix = %q, want %q", cfg.Session.UserPrefix, "Пользователь")
	}
	if !cfg.Session.SeedCatalog {
		t.Error("Session.SeedCatalog = false, want true")
	}
	if cfg.Session.AuditSize != 500 {
		t.Errorf("Session.AuditSize = %d, want %d", cfg.Session.AuditSize, 500)
	}
	if cfg.Import.MaxFileSize != 10<<20 {
		t.Errorf("Import.MaxFileSize = %d, want %d", cfg.Import.MaxFileSize, 10<<20)
	}
	if cfg.Import.MaxConcurrent != 2 {
		t.Errorf("Import.MaxConcurrent = %d, want %d", cfg.Import.MaxConcurrent, 2)
	}
	if cfg.Rate.ImportLimit != 10 {
		t.Errorf("Rate.ImportLimit = %d, want %d", cfg.Rate.ImportLimit, 10)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "orderdesk" {
		t.Errorf("Metrics = %+v, want enabled with namespace orderdesk", cfg.Metrics)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("IMPORT_MAX_CONCURRENT", "4")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_SEED_CATALOG", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Import.MaxConcurrent != 4 {
		t.Errorf("Import.MaxConcurrent = %d, want %d", cfg.Import.MaxConcurrent, 4)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Session.SeedCatalog {
		t.Error("Session.SeedCatalog = true, want false")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}
}

func TestLoad_ReportsEveryMalformedValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")
	t.Setenv("IMPORT_MAX_WAIT", "soon")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for malformed values")
	}
	for _, name := range []string{"SERVER_PORT", "RATE_LIMIT_ENABLED", "IMPORT_MAX_WAIT"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should mention %s: %v", name, err)
		}
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("IMPORT_MAX_WAIT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Import.MaxWait != 90*time.Second {
		t.Errorf("Import.MaxWait = %v, want %v", cfg.Import.MaxWait, 90*time.Second)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , ,192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"zero users", func(c *Config) { c.Session.UserCount = 0 }, "SESSION_USER_COUNT"},
		{"explicit names skip count check", func(c *Config) {
			c.Session.UserCount = 0
			c.Session.UserNames = []string{"Анна"}
		}, ""},
		{"blank prefix", func(c *Config) { c.Session.UserPrefix = " " }, "SESSION_USER_PREFIX"},
		{"zero audit size", func(c *Config) { c.Session.AuditSize = 0 }, "SESSION_AUDIT_SIZE"},
		{"zero file size", func(c *Config) { c.Import.MaxFileSize = 0 }, "IMPORT_MAX_FILE_SIZE"},
		{"zero import limit", func(c *Config) { c.Rate.ImportLimit = 0 }, "RATE_LIMIT_IMPORT"},
		{"import limit ignored when disabled", func(c *Config) {
			c.Rate.Enabled = false
			c.Rate.ImportLimit = 0
		}, ""},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"invalid namespace", func(c *Config) { c.Metrics.Namespace = "order-desk" }, "METRICS_NAMESPACE"},
		{"namespace ignored when disabled", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Namespace = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"::1", 443, "[::1]:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestSessionInitialUsers(t *testing.T) {
	numbered := &SessionConfig{UserCount: 2, UserPrefix: "Повар"}
	got := numbered.InitialUsers()
	if len(got) != 2 || got[0] != "Повар 1" || got[1] != "Повар 2" {
		t.Errorf("InitialUsers() = %v, want [Повар 1 Повар 2]", got)
	}

	explicit := &SessionConfig{UserCount: 5, UserNames: []string{"Анна", "Борис"}}
	got = explicit.InitialUsers()
	if len(got) != 2 || got[0] != "Анна" {
		t.Errorf("InitialUsers() = %v, want [Анна Борис]", got)
	}
}

func TestConfigString(t *testing.T) {
	cfg := validConfig()
	cfg.Security.TrustedProxies = []string{"10.0.0.0/8"}

	str := cfg.String()
	for _, want := range []string{"Users: 12", "TrustedProxies: 1", `Namespace: "orderdesk"`} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %s, want it to contain %s", str, want)
		}
	}
	if strings.Contains(str, "10.0.0.0/8") {
		t.Error("String() should not list proxy CIDRs")
	}
}
