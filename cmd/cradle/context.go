package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"cradle/internal/config"
)

type commandContext struct {
	configFlag *string
	apiFlag    *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	httpOnce sync.Once
	http     *http.Client
}

func newCommandContext(configFlag, apiFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		apiFlag:    apiFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// apiBaseURL resolves the daemon API address: the --api flag wins, then the
// configured bind address.
func (c *commandContext) apiBaseURL() (string, error) {
	if c.apiFlag != nil && strings.TrimSpace(*c.apiFlag) != "" {
		return normalizeAPIBase(*c.apiFlag), nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return normalizeAPIBase(cfg.Paths.APIBind), nil
}

func normalizeAPIBase(addr string) string {
	addr = strings.TrimRight(strings.TrimSpace(addr), "/")
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return addr
}

func (c *commandContext) httpClient() *http.Client {
	c.httpOnce.Do(func() {
		c.http = &http.Client{Timeout: 10 * time.Second}
	})
	return c.http
}

// getJSON fetches an API path and decodes the JSON response into target.
// Error responses carry {"error": "..."} payloads.
func (c *commandContext) getJSON(path string, target any) error {
	base, err := c.apiBaseURL()
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Get(base + path)
	if err != nil {
		return fmt.Errorf("contact cradled at %s: %w (is the daemon running?)", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("cradled: %s", apiErr.Error)
		}
		return fmt.Errorf("cradled answered %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
