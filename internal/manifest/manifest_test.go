package manifest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tianmenglucky/lbe-installer/internal/gateway"
	"github.com/tianmenglucky/lbe-installer/internal/version"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantLatest string
	}{
		{
			name: "full document",
			body: `{"BepInExVersion":"5.4.23.2","LiarsBarEnhanceVersion":"1.1.0","BepInExName":"BepInEx_win_{arch}_{version}.zip","LiarsBarEnhanceName":"LiarsBarEnhance.dll","LatestInstallVersion":"1.0.2"}`,
			wantLatest: "1.0.2",
		},
		{
			name: "latest installer omitted",
			body: `{"BepInExVersion":"5.4.23.2","LiarsBarEnhanceVersion":"1.1.0","BepInExName":"a.zip","LiarsBarEnhanceName":"b.dll"}`,
		},
		{
			name: "latest installer null",
			body: `{"BepInExVersion":"5.4.23.2","LiarsBarEnhanceVersion":"1.1.0","BepInExName":"a.zip","LiarsBarEnhanceName":"b.dll","LatestInstallVersion":null}`,
		},
		{
			name: "unknown fields tolerated",
			body: `{"BepInExVersion":"5.4.23.2","LiarsBarEnhanceVersion":"1.1.0","BepInExName":"a.zip","LiarsBarEnhanceName":"b.dll","Notice":"hello"}`,
		},
		{
			name:    "not json",
			body:    `<html>blocked</html>`,
			wantErr: true,
		},
		{
			name:    "missing required field",
			body:    `{"BepInExVersion":"5.4.23.2","LiarsBarEnhanceVersion":"1.1.0","BepInExName":"a.zip"}`,
			wantErr: true,
		},
		{
			name:    "non numeric version",
			body:    `{"BepInExVersion":"latest","LiarsBarEnhanceVersion":"1.1.0","BepInExName":"a.zip","LiarsBarEnhanceName":"b.dll"}`,
			wantErr: true,
		},
		{
			name:    "wrong type",
			body:    `{"BepInExVersion":5,"LiarsBarEnhanceVersion":"1.1.0","BepInExName":"a.zip","LiarsBarEnhanceName":"b.dll"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := Parse([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("Parse error = %v, want ErrParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if tt.wantLatest == "" {
				if m.LatestInstallerVersion != nil {
					t.Fatalf("LatestInstallerVersion = %v, want nil", m.LatestInstallerVersion)
				}
				return
			}
			if m.LatestInstallerVersion == nil || m.LatestInstallerVersion.String() != tt.wantLatest {
				t.Fatalf("LatestInstallerVersion = %v, want %s", m.LatestInstallerVersion, tt.wantLatest)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"BepInExVersion":"5.4.23.2","LiarsBarEnhanceVersion":"1.2.0","BepInExName":"BepInEx_win_{arch}_{version}.zip","LiarsBarEnhanceName":"LiarsBarEnhance.dll"}`))
	}))
	defer server.Close()

	m, err := Fetch(context.Background(), gateway.New(gateway.Options{}), server.URL+"/DownloadInfo.json")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if m.ModVersion != "1.2.0" || m.RuntimeVersion != "5.4.23.2" || m.ModArtifact != "LiarsBarEnhance.dll" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), gateway.New(gateway.Options{}), server.URL)
	if !errors.Is(err, gateway.ErrNetwork) {
		t.Fatalf("Fetch error = %v, want ErrNetwork", err)
	}
	if errors.Is(err, ErrParse) {
		t.Fatalf("network failure must not be reported as parse failure")
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	m := Default()
	if m.LatestInstallerVersion != nil {
		t.Fatalf("default manifest must not advertise an installer version")
	}
	if _, err := version.Parse(m.RuntimeVersion); err != nil {
		t.Fatalf("default runtime version invalid: %v", err)
	}
	if _, err := version.Parse(m.ModVersion); err != nil {
		t.Fatalf("default mod version invalid: %v", err)
	}
	if Default() == m {
		t.Fatalf("Default must return a fresh value")
	}
}
