// Package notifier delivers desktop notifications through the timecompass
// tray companion. The tray advertises itself with a lockfile holding
// "port|pid|secret" and accepts JSON webhooks on 127.0.0.1.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning means no live tray companion could be found.
var ErrTrayNotRunning = errors.New(constants.NotifierExecutable + " is not running")

// Endpoint is a validated tray webhook target.
type Endpoint struct {
	Port   int
	Secret string
}

func (e Endpoint) url() string {
	return "http://127.0.0.1:" + strconv.Itoa(e.Port)
}

type WebhookPayload struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

type Notifier struct {
	client     *http.Client
	retries    int
	retryDelay time.Duration
}

func New() *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: constants.NotifyTimeout},
		retries:    constants.NotifyMaxRetries,
		retryDelay: constants.NotifyRetryDelay,
	}
}

// Available reports whether a tray companion is running and reachable by
// lockfile. It does not send anything.
func (n *Notifier) Available() bool {
	_, err := Discover()
	if err != nil {
		logger.Debug("Tray companion unavailable", "error", err)
		return false
	}
	return true
}

// Send delivers a notification, retrying transient failures.
func (n *Notifier) Send(title, body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(n.retries+1)*constants.NotifyTimeout)
	defer cancel()
	return n.SendContext(ctx, title, body)
}

func (n *Notifier) SendContext(ctx context.Context, title, body string) error {
	endpoint, err := Discover()
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:      title,
		Text:       body,
		DurationMs: constants.NotificationDurationMs,
	}

	var lastErr error
	for attempt := 0; attempt <= n.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.retryDelay):
			}
		}
		lastErr = n.post(ctx, endpoint, payload)
		if lastErr == nil {
			return nil
		}
		var status *StatusError
		if errors.As(lastErr, &status) && status.Code < 500 {
			return lastErr
		}
		logger.Debug("Notification attempt failed", "attempt", attempt+1, "error", lastErr)
	}
	return lastErr
}

// StatusError is a non-200 response from the tray.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("notification failed with status %d: %s", e.Code, e.Body)
}

func (n *Notifier) post(ctx context.Context, endpoint Endpoint, payload WebhookPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.url(), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.NotifierSecretHeader, endpoint.Secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(body))}
}

// GetTrayAppConfigDir returns the configuration directory used by the tray
// application, honouring a lockfile_dir override in its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayConfigDir, nil
}

// LockfilePath is where the tray advertises its endpoint.
func LockfilePath() (string, error) {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.NotifierLockfileName), nil
}

// Discover reads and validates the tray lockfile.
func Discover() (Endpoint, error) {
	path, err := LockfilePath()
	if err != nil {
		return Endpoint{}, err
	}
	return readLockfile(path)
}

func readLockfile(path string) (Endpoint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Endpoint{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return Endpoint{}, errors.New("lockfile is malformed")
	}

	portStr, pidStr, secret := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
	if portStr == "" {
		return Endpoint{}, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return Endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return Endpoint{}, errors.New("invalid process ID in lockfile")
	}
	if secret == "" {
		return Endpoint{}, errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return Endpoint{}, fmt.Errorf("%w (stale lockfile for PID %d)", ErrTrayNotRunning, pid)
	}
	if !strings.HasPrefix(process.Executable(), constants.NotifierExecutable) {
		return Endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.NotifierExecutable, process.Executable())
	}

	return Endpoint{Port: port, Secret: secret}, nil
}
