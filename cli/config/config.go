package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"datashare/cli/utils"
	"datashare/shared"
	"datashare/shared/constants"
)

type Paths struct {
	dir       string
	config    string
	gitignore string
	env       string
	token     string
	user      string
}

type Config struct {
	Server      string `yaml:"server,omitempty"`
	DownloadDir string `yaml:"download_dir,omitempty"`
	ProxyAddr   string `yaml:"proxy_addr,omitempty"`
	PerPage     int    `yaml:"per_page,omitempty"`
}

var baseConfigPath = filepath.Join(".config", "datashare")

const configFileName = "config.yml"
const gitignoreName = ".gitignore"
const envFileName = ".env"
const tokenName = "token"
const userName = "user"

//go:embed config.yml
var defaultConfig string

// SetupConfigDir ensures that the directory for datashare's config has been
// created. This path defaults to $HOME/.config/datashare.
func SetupConfigDir() (Paths, error) {
	dirname, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, err
	}

	return NewPaths(dirname)
}

// NewPaths creates the config directory under baseDir (instead of the user's
// home directory) and returns the paths of the files stored within it.
func NewPaths(baseDir string) (Paths, error) {
	localConfig := filepath.Join(baseDir, baseConfigPath)
	err := os.MkdirAll(localConfig, 0700)
	if err != nil {
		return Paths{}, err
	}

	return Paths{
		dir:       localConfig,
		config:    filepath.Join(localConfig, configFileName),
		gitignore: filepath.Join(localConfig, gitignoreName),
		env:       filepath.Join(localConfig, envFileName),
		token:     filepath.Join(localConfig, tokenName),
		user:      filepath.Join(localConfig, userName),
	}, nil
}

func (paths Paths) Dir() string {
	return paths.dir
}

// ReadConfig reads the config file (config.yml) for current configuration,
// writing the default config first if none exists. Variables from a .env file
// in the config dir or the working directory are loaded before
// DATASHARE_SERVER is checked, which overrides the configured server.
func ReadConfig(paths Paths) (Config, error) {
	if _, err := os.Stat(paths.config); err != nil {
		if err = setupDefaultConfig(paths); err != nil {
			return Config{}, err
		}
	}

	config := Config{}
	data, err := os.ReadFile(paths.config)
	if err != nil {
		return config, err
	}

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return config, fmt.Errorf("invalid %s: %w", configFileName, err)
	}

	loadEnv(paths.env, envFileName)
	if server := os.Getenv(constants.ServerEnvVar); len(server) > 0 {
		config.Server = server
	}

	if len(config.Server) == 0 {
		config.Server = constants.DefaultServer
	}

	if len(config.ProxyAddr) == 0 {
		config.ProxyAddr = constants.DefaultProxyAddr
	}

	if config.PerPage < 1 {
		config.PerPage = constants.DefaultPerPage
	}

	config.Server = strings.TrimSuffix(config.Server, "/")
	return config, nil
}

// loadEnv loads any of the given .env files that exist. Values already present
// in the environment are left alone.
func loadEnv(files ...string) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}

		if err := godotenv.Load(file); err != nil {
			log.Printf("Error loading %s: %v\n", file, err)
		}
	}
}

// setupDefaultConfig copies default config files from the repo to the user's
// config directory
func setupDefaultConfig(paths Paths) error {
	err := utils.CopyToFile(defaultConfig, paths.config)
	if err != nil {
		return err
	}

	defaultGitignore := fmt.Sprintf("%s\n%s\n%s\n", tokenName, userName, envFileName)
	return utils.CopyToFile(defaultGitignore, paths.gitignore)
}

// SetToken saves the access token returned by the server when logging in to a
// (gitignored) file in the config directory
func (paths Paths) SetToken(token string) error {
	return utils.CopyToFile(token, paths.token)
}

// ReadToken reads the value in $config_path/token, returning an empty string
// if there is no stored token.
func (paths Paths) ReadToken() string {
	token, err := os.ReadFile(paths.token)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(token))
}

// SetUser saves the logged in user as JSON in $config_path/user
func (paths Paths) SetUser(user shared.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return utils.CopyBytesToFile(data, paths.user)
}

// ReadUser returns the stored user. A missing or unreadable user file is
// treated as no stored user.
func (paths Paths) ReadUser() (shared.User, bool) {
	data, err := os.ReadFile(paths.user)
	if err != nil || len(data) == 0 {
		return shared.User{}, false
	}

	var user shared.User
	if err = json.Unmarshal(data, &user); err != nil {
		log.Printf("Ignoring malformed stored user: %v\n", err)
		return shared.User{}, false
	}

	return user, true
}

// Reset removes the stored token and user.
func (paths Paths) Reset() error {
	var errs []error
	for _, path := range []string{paths.token, paths.user} {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("error removing %s\n", path)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
