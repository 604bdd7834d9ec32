package appeals

import (
	"os"
	"time"

	"github.com/jrsteele09/appeals-client/internal/config"
	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Options configures a Client. Fields left empty fall back to the environment
// through DefaultOptions.
type Options struct {
	BaseURL        string        `yaml:"baseUrl" json:"baseUrl" long:"url" short:"u" description:"API base URL"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout" long:"timeout" description:"per request timeout"`
	RefreshPath    string        `yaml:"refreshPath" json:"refreshPath" long:"refresh-path" description:"token refresh path relative to the base URL"`
	LoginURL       string        `yaml:"loginUrl" json:"loginUrl" long:"login-url" description:"where to send the user when the session ends"`
	UseMockData    bool          `yaml:"useMockData" json:"useMockData" no-flag:"true"`
	SessionBackend string        `yaml:"sessionBackend" json:"sessionBackend" long:"session" choice:"memory" choice:"file" choice:"redis" description:"where the session is kept"`
	SessionFile    string        `yaml:"sessionFile" json:"sessionFile" long:"session-file" description:"session file for the file backend"`
	RedisAddr      string        `yaml:"redisAddr" json:"redisAddr" long:"redis-addr" description:"redis address for the redis backend"`
	RedisPassword  string        `yaml:"redisPassword" json:"-" long:"redis-password" description:"redis password"`
	RedisKey       string        `yaml:"redisKey" json:"redisKey" long:"redis-key" description:"redis hash holding the session"`
	SessionTTL     time.Duration `yaml:"sessionTtl" json:"sessionTtl" long:"session-ttl" description:"redis session expiry, zero keeps it until logout"`
}

func DefaultOptions(cfg config.Config) Options {
	return Options{
		BaseURL:        cfg.GetAPIBaseURL(),
		Timeout:        cfg.GetRequestTimeout(),
		RefreshPath:    cfg.GetRefreshPath(),
		LoginURL:       cfg.GetLoginURL(),
		UseMockData:    cfg.GetUseMockData(),
		SessionBackend: string(cfg.GetSessionBackend()),
		SessionFile:    cfg.GetSessionFile(),
		RedisAddr:      cfg.GetRedisAddr(),
		RedisPassword:  cfg.GetRedisPassword(),
		RedisKey:       cfg.GetRedisKey(),
	}
}

// LoadOptions overlays the YAML file at path onto base. A missing file leaves base unchanged.
func LoadOptions(fs afero.Fs, path string, base Options) (Options, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, errors.Wrapf(err, "[appeals LoadOptions] read %s", path)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, errors.Wrapf(err, "[appeals LoadOptions] parse %s", path)
	}
	return base, nil
}

func (o Options) validate() error {
	if o.BaseURL == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "base URL is required")
	}
	switch config.SessionBackend(o.SessionBackend) {
	case "", config.SessionBackendMemory:
	case config.SessionBackendFile:
		if o.SessionFile == "" {
			return errors.Wrapf(errors.ErrInvalidRequest, "file session backend needs a session file")
		}
	case config.SessionBackendRedis:
		if o.RedisAddr == "" {
			return errors.Wrapf(errors.ErrInvalidRequest, "redis session backend needs an address")
		}
	default:
		return errors.Wrapf(errors.ErrInvalidRequest, "unknown session backend %q", o.SessionBackend)
	}
	return nil
}
