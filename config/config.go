// Package config loads the settings shared by the API and UI suites.
//
// Settings are flat dotted keys such as "explicit.wait", read from a key-value file
// (".properties" or ".env") or from a YAML file whose nesting spells the same keys. Any key can be
// overridden from the environment: "explicit.wait" is read from E2E_EXPLICIT_WAIT.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	KeyBaseURL             = "base.url"
	KeyBrowser             = "browser"
	KeyHeadless            = "headless"
	KeyImplicitWait        = "implicit.wait"
	KeyExplicitWait        = "explicit.wait"
	KeyScreenshotOnFailure = "screenshot.on.failure"
	KeyScreenshotPath      = "screenshot.path"
	KeyWebDriverURL        = "webdriver.url"
	KeyAPIBaseURL          = "api.base.url"
	KeyAPIKey              = "api.key"
	KeyAPIRequestTimeout   = "api.request.timeout"
	KeyAPIRetries          = "api.retries"
	KeyPollTimeout         = "poll.timeout"
	KeyPollInterval        = "poll.interval"
	KeyLogLevel            = "log.level"
	KeyLogFile             = "log.file"
)

// EnvPrefix is prepended to the environment variable name of every key.
const EnvPrefix = "E2E_"

// ErrUnsupportedFormat is returned by Load for a file extension it cannot read.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// Defaults are the values used for keys that are not set anywhere else.
var Defaults = map[string]string{
	KeyBaseURL:             "https://useinsider.com/",
	KeyBrowser:             "chrome",
	KeyHeadless:            "false",
	KeyImplicitWait:        "10",
	KeyExplicitWait:        "20",
	KeyScreenshotOnFailure: "true",
	KeyScreenshotPath:      "test-output/screenshots/",
	KeyWebDriverURL:        "http://localhost:4444/wd/hub",
	KeyAPIBaseURL:          "https://petstore.swagger.io/v2",
	KeyAPIKey:              "special-key",
	KeyAPIRequestTimeout:   "30s",
	KeyAPIRetries:          "2",
	KeyPollTimeout:         "120s",
	KeyPollInterval:        "3s",
	KeyLogLevel:            "info",
	KeyLogFile:             "",
}

// Config holds the harness settings.
type Config struct {
	BaseURL             string        `validate:"required,url"`
	Browser             string        `validate:"required"`
	Headless            bool
	ImplicitWait        time.Duration `validate:"gte=0"`
	ExplicitWait        time.Duration `validate:"gt=0"`
	ScreenshotOnFailure bool
	ScreenshotPath      string `validate:"required"`
	WebDriverURL        string `validate:"required,url"`

	API struct {
		BaseURL        string        `validate:"required,url"`
		Key            string
		RequestTimeout time.Duration `validate:"gt=0"`
		Retries        int           `validate:"gte=0"`
	}
	Poll struct {
		Timeout  time.Duration `validate:"gt=0"`
		Interval time.Duration `validate:"gt=0"`
	}
	Log struct {
		Level string `validate:"required,oneof=debug info warn error"`
		File  string
	}
}

var validate = validator.New()

// Load reads the configuration file at path, which may be empty to use only defaults and
// environment variables.
func Load(path string) (Config, error) {
	values := make(map[string]string, len(Defaults))
	for k, v := range Defaults {
		values[k] = v
	}
	if path != "" {
		fileValues, err := ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	for k := range values {
		if v, ok := os.LookupEnv(EnvName(k)); ok {
			values[k] = v
		}
	}
	return Parse(values)
}

// ReadFile returns the flat key-value pairs of a configuration file.
func ReadFile(path string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties", ".env":
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return values, nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var tree map[string]interface{}
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		values := make(map[string]string)
		flatten("", tree, values)
		return values, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

func flatten(prefix string, tree map[string]interface{}, into map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch value := v.(type) {
		case map[string]interface{}:
			flatten(key, value, into)
		case nil:
			into[key] = ""
		default:
			into[key] = fmt.Sprint(value)
		}
	}
}

// EnvName returns the environment variable that overrides a key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// Parse builds and validates a Config from flat key-value pairs. Keys that are missing keep
// their zero value, so callers normally start from Defaults.
func Parse(values map[string]string) (Config, error) {
	var c Config
	p := parser{values: values}

	c.BaseURL = values[KeyBaseURL]
	c.Browser = strings.ToLower(strings.TrimSpace(values[KeyBrowser]))
	c.Headless = p.bool(KeyHeadless)
	c.ImplicitWait = p.duration(KeyImplicitWait)
	c.ExplicitWait = p.duration(KeyExplicitWait)
	c.ScreenshotOnFailure = p.bool(KeyScreenshotOnFailure)
	c.ScreenshotPath = values[KeyScreenshotPath]
	c.WebDriverURL = values[KeyWebDriverURL]
	c.API.BaseURL = strings.TrimRight(values[KeyAPIBaseURL], "/")
	c.API.Key = values[KeyAPIKey]
	c.API.RequestTimeout = p.duration(KeyAPIRequestTimeout)
	c.API.Retries = p.int(KeyAPIRetries)
	c.Poll.Timeout = p.duration(KeyPollTimeout)
	c.Poll.Interval = p.duration(KeyPollInterval)
	c.Log.Level = strings.ToLower(values[KeyLogLevel])
	c.Log.File = values[KeyLogFile]

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	if err := validate.Struct(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

type parser struct {
	values map[string]string
	errs   []error
}

func (p *parser) bool(key string) bool {
	s, ok := p.values[key]
	if !ok || s == "" {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
	}
	return b
}

func (p *parser) int(key string) int {
	s, ok := p.values[key]
	if !ok || s == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
	}
	return n
}

// duration accepts either a Go duration ("1m30s") or a plain number of seconds ("20").
func (p *parser) duration(key string) time.Duration {
	s := strings.TrimSpace(p.values[key])
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
	}
	return d
}
