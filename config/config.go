// Package config resolves the credentials and endpoint used to reach the
// Monte Carlo API.
//
// Values come, in order of precedence, from explicit options, from the
// environment, from the profiles file and from defaults. The profiles file
// is an INI file with one section per profile:
//
//	[default]
//	mcd_id = 1234
//	mcd_token = secret
//
//	[staging]
//	mcd_id = 5678
//	mcd_token = other
//	mcd_api_endpoint = https://staging.example.com/graphql
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"
)

// Environment variable names.
const (
	EnvAPIID         = "MCD_DEFAULT_API_ID"
	EnvAPIToken      = "MCD_DEFAULT_API_TOKEN"
	EnvAPIEndpoint   = "MCD_API_ENDPOINT"
	EnvProfile       = "MCD_DEFAULT_PROFILE"
	EnvConfigPath    = "MCD_CONFIG_PATH"
	EnvVerboseErrors = "MCD_VERBOSE_ERRORS"
)

// Profiles file keys.
const (
	KeyID       = "mcd_id"
	KeyToken    = "mcd_token"
	KeyEndpoint = "mcd_api_endpoint"
)

const (
	DefaultEndpoint  = "https://api.getmontecarlo.com/graphql"
	DefaultProfile   = "default"
	DefaultConfigDir = ".mcd"
	ProfilesFileName = "profiles.ini"
)

// Sources of a resolved value.
const (
	SourceDefault  = "default"
	SourceFile     = "file"
	SourceEnv      = "env"
	SourceExplicit = "explicit"
)

// ErrProfileNotFound is returned when a profile that was asked for by name
// is not in the profiles file.
var ErrProfileNotFound = errors.New("profile not found")

// Profile holds the credentials of one API key and the endpoint to use
// them with.
type Profile struct {
	Name     string
	ID       string
	Token    string
	Endpoint string

	// Sources maps "id", "token" and "endpoint" to where each value came
	// from.
	Sources map[string]string
}

// HasCredentials reports whether both the key id and the token are set.
func (p Profile) HasCredentials() bool {
	return p.ID != "" && p.Token != ""
}

// Options are explicit settings. Empty fields are resolved from the
// environment and the profiles file.
type Options struct {
	Profile    string
	ConfigPath string
	ID         string
	Token      string
	Endpoint   string
}

// DefaultConfigPath returns the directory holding the profiles file:
// $MCD_CONFIG_PATH, or ~/.mcd.
func DefaultConfigPath() (string, error) {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir), nil
}

// LoadProfiles reads the profiles file in dir. A missing file yields no
// profiles and no error.
func LoadProfiles(dir string) (map[string]Profile, error) {
	path := filepath.Join(dir, ProfilesFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return map[string]Profile{}, nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	profiles := make(map[string]Profile)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		profiles[section.Name()] = Profile{
			Name:     section.Name(),
			ID:       section.Key(KeyID).String(),
			Token:    section.Key(KeyToken).String(),
			Endpoint: section.Key(KeyEndpoint).String(),
		}
	}
	return profiles, nil
}

// Resolve builds the profile to use from opts, the environment and the
// profiles file.
//
// The profile is opts.Profile, else $MCD_DEFAULT_PROFILE, else "default".
// A profile chosen by name must exist unless the credentials are complete
// without it.
func Resolve(opts Options) (Profile, error) {
	p := Profile{
		Name:     DefaultProfile,
		Endpoint: DefaultEndpoint,
		Sources: map[string]string{
			"endpoint": SourceDefault,
		},
	}
	named := false
	switch {
	case opts.Profile != "":
		p.Name, named = opts.Profile, true
	case os.Getenv(EnvProfile) != "":
		p.Name, named = os.Getenv(EnvProfile), true
	}

	dir := opts.ConfigPath
	if dir == "" {
		var err error
		if dir, err = DefaultConfigPath(); err != nil {
			return Profile{}, err
		}
	}
	profiles, err := LoadProfiles(dir)
	if err != nil {
		return Profile{}, err
	}

	fromFile, found := profiles[p.Name]
	if found {
		set(&p, fromFile.ID, fromFile.Token, fromFile.Endpoint, SourceFile)
	}
	set(&p, os.Getenv(EnvAPIID), os.Getenv(EnvAPIToken), os.Getenv(EnvAPIEndpoint), SourceEnv)
	set(&p, opts.ID, opts.Token, opts.Endpoint, SourceExplicit)

	if named && !found && !p.HasCredentials() {
		return Profile{}, fmt.Errorf("%w: %q in %s", ErrProfileNotFound, p.Name, filepath.Join(dir, ProfilesFileName))
	}
	return p, nil
}

func set(p *Profile, id, token, endpoint, source string) {
	if id != "" {
		p.ID = id
		p.Sources["id"] = source
	}
	if token != "" {
		p.Token = token
		p.Sources["token"] = source
	}
	if endpoint != "" {
		p.Endpoint = endpoint
		p.Sources["endpoint"] = source
	}
}

// VerboseErrors reports whether $MCD_VERBOSE_ERRORS asks for request and
// response bodies in errors.
func VerboseErrors() bool {
	v := os.Getenv(EnvVerboseErrors)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return v == "yes" || v == "on"
	}
	return b
}
