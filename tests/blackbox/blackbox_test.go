package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil { t.Fatalf("listen: %v", err) }
	addr := ln.Addr().String()
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil { t.Fatalf("split: %v", err) }
	cleanup := func(){ _ = ln.Close() }
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	return port, cleanup
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok { t.Fatal("runtime.Caller failed") }
	// this file: <root>/tests/blackbox/blackbox_test.go
	bbDir := filepath.Dir(thisFile)
	root := filepath.Dir(filepath.Dir(bbDir))
	return root
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	outDir := t.TempDir()
	binPath := filepath.Join(outDir, "whisperd")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/whisperd")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

func createTempModelsDir(t *testing.T, ids ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, id := range ids {
		p := filepath.Join(dir, "ggml-"+id+".bin")
		if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
			t.Fatalf("write temp model %s: %v", p, err)
		}
	}
	return dir
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18080
}

func startServer(t *testing.T, bin string, modelsDir string, defaultModel string, port int) *serverProc {
	t.Helper()
	addr := fmt.Sprintf(":%d", port)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	args := []string{
		"--addr", addr,
		"--models-dir", modelsDir,
	}
	if defaultModel != "" {
		args = append(args, "--default-model", defaultModel)
	}
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	// Wait for healthz
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK { break }
		}
		if time.Now().After(deadline) {
			_ = cmd.Process.Kill()
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	sp := &serverProc{cmd: cmd, base: base}
	t.Cleanup(func(){ _ = cmd.Process.Kill() })
	return sp
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil { t.Fatalf("new req: %v", err) }
	resp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("do: %v", err) }
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postAudio(t *testing.T, url string, filename string, content []byte, model string) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil { t.Fatalf("create form file: %v", err) }
		if _, err := fw.Write(content); err != nil { t.Fatalf("write part: %v", err) }
	}
	if model != "" {
		_ = mw.WriteField("model", model)
	}
	_ = mw.Close()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, &buf)
	if err != nil { t.Fatalf("new req: %v", err) }
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("do: %v", err) }
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func TestBlackbox_Flow(t *testing.T) {
	// Build server binary without cgo; the engine stub answers 503 for
	// actual inference, which is enough to exercise the HTTP surface.
	bin := buildBinary(t)
	modelsDir := createTempModelsDir(t, "base", "large-v3")
	// Reserve a free port, then release listener before starting the server
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, modelsDir, "base", port)

	// /healthz
	resp, body := get(t, sp.base+"/healthz")
	if resp.StatusCode != http.StatusOK { t.Fatalf("/healthz %d %s", resp.StatusCode, string(body)) }

	// /v1/models
	resp, body = get(t, sp.base+"/v1/models")
	if resp.StatusCode != http.StatusOK { t.Fatalf("/v1/models %d %s", resp.StatusCode, string(body)) }
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") { t.Fatalf("/v1/models content-type=%s", ct) }
	var modelsResp struct{ Models []struct{ ID string `json:"id"` } `json:"models"` }
	if err := json.Unmarshal(body, &modelsResp); err != nil { t.Fatalf("/v1/models json: %v body=%s", err, string(body)) }
	if len(modelsResp.Models) != 2 { t.Fatalf("expected 2 models, got %d", len(modelsResp.Models)) }

	// /readyz is 200 from startup; readiness never forces a model load.
	resp, body = get(t, sp.base+"/readyz")
	if resp.StatusCode != http.StatusOK { t.Fatalf("/readyz %d %s", resp.StatusCode, string(body)) }

	// Transcription against the cgo-free binary surfaces the engine stub.
	resp, body = postAudio(t, sp.base+"/v1/audio/transcriptions", "a.mp3", []byte("fake"), "")
	if resp.StatusCode != http.StatusServiceUnavailable { t.Fatalf("transcription %d %s", resp.StatusCode, string(body)) }
	if !bytes.Contains(body, []byte("whisper support not built")) {
		t.Fatalf("expected engine stub message, got: %s", string(body))
	}

	// /status
	resp, body = get(t, sp.base+"/status")
	if resp.StatusCode != http.StatusOK { t.Fatalf("/status %d %s", resp.StatusCode, string(body)) }
	var statusResp struct{ DefaultModel string `json:"default_model"` }
	if err := json.Unmarshal(body, &statusResp); err != nil { t.Fatalf("/status json: %v body=%s", err, string(body)) }
	if statusResp.DefaultModel != "base" { t.Fatalf("default_model=%q", statusResp.DefaultModel) }
}

func TestBlackbox_Transcription_ModelNotLocal_503(t *testing.T) {
	bin := buildBinary(t)
	modelsDir := createTempModelsDir(t, "base")
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, modelsDir, "base", port)

	resp, body := postAudio(t, sp.base+"/v1/audio/transcriptions", "a.mp3", []byte("fake"), "nonexistent-model-xyz")
	if resp.StatusCode != http.StatusServiceUnavailable { t.Fatalf("expected 503, got %d, body=%s", resp.StatusCode, string(body)) }
	if !bytes.Contains(body, []byte("download")) {
		t.Fatalf("expected download guidance, got: %s", string(body))
	}
}

func TestBlackbox_Transcription_EmptyUpload_400(t *testing.T) {
	bin := buildBinary(t)
	modelsDir := createTempModelsDir(t, "base")
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, modelsDir, "base", port)

	resp, body := postAudio(t, sp.base+"/v1/audio/transcriptions", "a.mp3", nil, "")
	if resp.StatusCode != http.StatusBadRequest { t.Fatalf("expected 400, got %d, body=%s", resp.StatusCode, string(body)) }
}
