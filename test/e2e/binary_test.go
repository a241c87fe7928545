package e2e

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	startupTimeout = 10 * time.Second
	pollInterval   = 100 * time.Millisecond
)

// lockedBuffer is a thread-safe wrapper around bytes.Buffer.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (lb *lockedBuffer) Write(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.Write(p)
}

func (lb *lockedBuffer) String() string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.String()
}

// serverProc holds the running server subprocess and its output.
type serverProc struct {
	cmd    *exec.Cmd
	stdout *lockedBuffer
	url    string
}

var (
	builtBinary string
	buildOnce   sync.Once
	buildErr    error
)

func getBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "fooddelivery-e2e-*")
		if err != nil {
			buildErr = err
			return
		}
		binary := filepath.Join(dir, "fooddelivery")
		cmd := exec.Command("go", "build", "-o", binary, "./cmd/fooddelivery")
		cmd.Dir = findRepoRoot(t)
		out, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("go build failed: %w\n%s", err, out)
			return
		}
		builtBinary = binary
	})
	if buildErr != nil {
		t.Fatal(buildErr)
	}
	return builtBinary
}

func findRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find repo root")
		}
		dir = parent
	}
}

// startServer runs the binary against the database at dbPath.
func startServer(t *testing.T, binary, dbPath string) *serverProc {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("find free port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	stdout := &lockedBuffer{}
	cmd := exec.Command(binary)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		"FOODDELIVERY_LISTEN_ADDR="+addr,
		"FOODDELIVERY_DB_PATH="+dbPath,
		"FOODDELIVERY_LOG_LEVEL=info",
		"FOODDELIVERY_BCRYPT_COST=4",
	)
	cmd.Stdout = stdout
	cmd.Stderr = stdout

	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}

	sp := &serverProc{
		cmd:    cmd,
		stdout: stdout,
		url:    "http://" + addr,
	}

	t.Cleanup(sp.stop)

	deadline := time.Now().Add(startupTimeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(sp.url + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == 200 {
				return sp
			}
		}
		time.Sleep(pollInterval)
	}
	t.Fatalf("server did not become ready within %v\nstdout:\n%s", startupTimeout, stdout.String())
	return nil
}

func (sp *serverProc) stop() {
	if sp.cmd.ProcessState != nil {
		return
	}
	sp.cmd.Process.Kill()
	sp.cmd.Wait()
}

func postJSON(t *testing.T, url, body string) map[string]any {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST %s: status = %d\nbody: %s", url, resp.StatusCode, b)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestBinaryStartsAndServesHealthz(t *testing.T) {
	sp := startServer(t, getBinary(t), filepath.Join(t.TempDir(), "food.db"))

	resp, err := http.Get(sp.url + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want %q", body["status"], "ok")
	}
}

func TestBinaryMetrics(t *testing.T) {
	sp := startServer(t, getBinary(t), filepath.Join(t.TempDir(), "food.db"))

	postJSON(t, sp.url+"/api/messages", `{"message":"hi","user_id":"u1","email":"a@example.com"}`)

	resp, err := http.Get(sp.url + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	body := string(bodyBytes)

	for _, name := range []string{
		"fooddelivery_http_requests_total",
		"fooddelivery_http_request_duration_seconds",
		`fooddelivery_seqid_assigned_total{kind="contact_message"} 1`,
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

// Sequential identifiers continue from the rows on disk after a restart.
func TestBinarySequenceSurvivesRestart(t *testing.T) {
	binary := getBinary(t)
	dbPath := filepath.Join(t.TempDir(), "food.db")

	sp := startServer(t, binary, dbPath)
	first := postJSON(t, sp.url+"/api/users",
		`{"name":"Nimal","email":"nimal@example.com","phone_number":"0771234567","password":"correct horse","address":"Colombo"}`)
	sp.stop()

	sp = startServer(t, binary, dbPath)
	second := postJSON(t, sp.url+"/api/users",
		`{"name":"Kamala","email":"kamala@example.com","phone_number":"0777654321","password":"correct horse","address":"Kandy"}`)

	uid1 := first["user"].(map[string]any)["uid"].(string)
	uid2 := second["user"].(map[string]any)["uid"].(string)
	if uid1[:8] == uid2[:8] && uid2 <= uid1 {
		t.Errorf("uid after restart = %q, want greater than %q", uid2, uid1)
	}

	login := postJSON(t, sp.url+"/api/users/login", `{"email":"nimal@example.com","password":"correct horse"}`)
	if login["user"].(map[string]any)["uid"] != uid1 {
		t.Errorf("login returned %v, want uid %q", login["user"], uid1)
	}
}

func TestBinaryStructuredJSONLogs(t *testing.T) {
	sp := startServer(t, getBinary(t), filepath.Join(t.TempDir(), "food.db"))

	resp, err := http.Get(sp.url + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(sp.stdout.String(), `"msg":"request"`) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	scanner := bufio.NewScanner(strings.NewReader(sp.stdout.String()))
	foundRequestLog := false
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if msg, ok := entry["msg"].(string); ok && msg == "request" {
			foundRequestLog = true
			for _, key := range []string{"method", "path", "status", "duration_ms", "request_id"} {
				if _, ok := entry[key]; !ok {
					t.Errorf("request log missing field %q", key)
				}
			}
		}
	}
	if !foundRequestLog {
		t.Errorf("no structured request log found in stdout\noutput:\n%s", sp.stdout.String())
	}
}
