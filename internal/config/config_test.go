package config

import "testing"

func TestDSNDevelopmentDisablesSSL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "url without query",
			in:   "postgres://app:pw@localhost:5432/app",
			want: "postgres://app:pw@localhost:5432/app?sslmode=disable",
		},
		{
			name: "url with query",
			in:   "postgres://app:pw@localhost:5432/app?search_path=public",
			want: "postgres://app:pw@localhost:5432/app?search_path=public&sslmode=disable",
		},
		{
			name: "keyword form",
			in:   "host=localhost user=app dbname=app",
			want: "host=localhost user=app dbname=app sslmode=disable",
		},
		{
			name: "sslmode already set",
			in:   "postgres://app:pw@localhost:5432/app?sslmode=require",
			want: "postgres://app:pw@localhost:5432/app?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: "development", DBConnectionString: tt.in}
			if got := cfg.DSN(); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDSNProductionUsesSimpleProtocol(t *testing.T) {
	cfg := &Config{
		Environment:        "production",
		DBConnectionString: "postgres://app:pw@pooler:6543/app",
	}
	want := "postgres://app:pw@pooler:6543/app?prefer_simple_protocol=true"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
