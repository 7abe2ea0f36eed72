package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// El test se re-ejecuta a sí mismo con BODYCOMP_RUN_MAIN=1 para correr main()
// en un proceso aparte y poder ver el exit code.
func TestMain_ExitsBeforeListeningWithoutAPIKey(t *testing.T) {
	if os.Getenv("BODYCOMP_RUN_MAIN") == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMain_ExitsBeforeListeningWithoutAPIKey$")
	cmd.Env = append(bootEnv(),
		"BODYCOMP_RUN_MAIN=1",
		"BODYCOMP_ENV_FILE="+filepath.Join(t.TempDir(), "missing.env"),
		"PORT=0",
		"LOG_FORMAT=json",
	)

	done := make(chan struct{})
	var out []byte
	var err error
	go func() {
		out, err = cmd.CombinedOutput()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatalf("process kept running without NOTION_API_KEY")
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got err=%v output=%s", err, out)
	}
	if !strings.Contains(string(out), "NOTION_API_KEY") {
		t.Fatalf("expected missing key error in output, got %s", out)
	}
	if strings.Contains(string(out), "Server listening") {
		t.Fatalf("expected exit before listening, got %s", out)
	}
}

// bootEnv copia el env actual sin nada que configure el servicio.
func bootEnv() []string {
	prefixes := []string{"NOTION_", "BODYCOMP_", "MQTT_", "DB_DSN=", "REDIS_URL=", "PORT=", "INGEST_TOKEN="}

	out := make([]string, 0, len(os.Environ()))
	for _, kv := range os.Environ() {
		skip := false
		for _, p := range prefixes {
			if strings.HasPrefix(kv, p) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, kv)
		}
	}
	return out
}
