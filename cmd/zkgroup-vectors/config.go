package main

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	api "github.com/MixinNetwork/zkgroup-go"
)

const (
	defaultLogLevel          = "NOTICE"
	defaultRedemptionTime    = 19000
	defaultReceiptExpiration = 1700000000
	defaultReceiptLevel      = 1
)

// nolint: gochecknoglobals
var defaultLogging = Logging{
	Disable: false,
	File:    "",
	Level:   defaultLogLevel,
}

// Seeds holds the hex randomness fed to each step of the scenarios.
type Seeds struct {
	// Server seeds GenerateServerSecretParams.
	Server string

	// Group seeds GenerateGroupSecretParams.
	Group string

	// Request seeds every request context.
	Request string

	// Issue seeds every issuance.
	Issue string

	// Present seeds every presentation and the notary signature.
	Present string
}

// Subject describes the holder whose credentials are issued.
type Subject struct {
	// Aci is the hex encoded 16 byte account uid.
	Aci string

	// Pni is the hex encoded 16 byte phone number uid, defaults to the Aci.
	Pni string

	// ProfileKey is the hex encoded 32 byte profile key, derived from the request seed if omitted.
	ProfileKey string

	// RedemptionTime is the day index bound into the auth credential.
	RedemptionTime uint32
}

// Receipt describes the receipt credential to issue.
type Receipt struct {
	// Serial is the hex encoded 16 byte receipt serial, derived from the request seed if omitted.
	Serial string

	ExpirationTime uint64
	Level          uint64
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stdout will be used.
	File string

	// Level specifies the log level.
	Level string
}

// Config is the top level zkgroup-vectors configuration.
type Config struct {
	Seeds   *Seeds
	Subject *Subject
	Receipt *Receipt
	Logging *Logging
}

// Vectors holds the decoded inputs of the scenarios.
type Vectors struct {
	Server  api.RandomnessBytes
	Group   api.RandomnessBytes
	Request api.RandomnessBytes
	Issue   api.RandomnessBytes
	Present api.RandomnessBytes

	Aci            api.UidBytes
	Pni            api.UidBytes
	ProfileKey     api.ProfileKey
	RedemptionTime api.RedemptionTime

	Serial         api.ReceiptSerialBytes
	ExpirationTime api.ReceiptExpirationTime
	Level          api.ReceiptLevel
}

func decodeHex(dst []byte, s, name string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrapf(err, "config: invalid %s", name)
	}
	if len(b) != len(dst) {
		return errors.Errorf("config: %s must be %d bytes, got %d", name, len(dst), len(b))
	}
	copy(dst, b)
	return nil
}

// Vectors decodes the hex fields of an already validated config.
func (cfg *Config) Vectors() (*Vectors, error) {
	var v Vectors
	seeds := []struct {
		dst  []byte
		hex  string
		name string
	}{
		{v.Server[:], cfg.Seeds.Server, "Seeds.Server"},
		{v.Group[:], cfg.Seeds.Group, "Seeds.Group"},
		{v.Request[:], cfg.Seeds.Request, "Seeds.Request"},
		{v.Issue[:], cfg.Seeds.Issue, "Seeds.Issue"},
		{v.Present[:], cfg.Seeds.Present, "Seeds.Present"},
		{v.Aci[:], cfg.Subject.Aci, "Subject.Aci"},
		{v.Pni[:], cfg.Subject.Pni, "Subject.Pni"},
	}
	for _, s := range seeds {
		if err := decodeHex(s.dst, s.hex, s.name); err != nil {
			return nil, err
		}
	}

	if cfg.Subject.ProfileKey == "" {
		v.ProfileKey = api.GenerateProfileKey(v.Request)
	} else {
		var pk api.ProfileKeyBytes
		if err := decodeHex(pk[:], cfg.Subject.ProfileKey, "Subject.ProfileKey"); err != nil {
			return nil, err
		}
		v.ProfileKey = api.NewProfileKey(pk)
	}
	if cfg.Receipt.Serial == "" {
		copy(v.Serial[:], v.Request[:])
	} else if err := decodeHex(v.Serial[:], cfg.Receipt.Serial, "Receipt.Serial"); err != nil {
		return nil, err
	}

	v.RedemptionTime = cfg.Subject.RedemptionTime
	v.ExpirationTime = cfg.Receipt.ExpirationTime
	v.Level = cfg.Receipt.Level
	return &v, nil
}

func (cfg *Config) validateAndApplyDefaults() error {
	if cfg.Seeds == nil {
		return errors.New("config: No Seeds block was present")
	}
	if cfg.Seeds.Server == "" || cfg.Seeds.Group == "" || cfg.Seeds.Request == "" ||
		cfg.Seeds.Issue == "" || cfg.Seeds.Present == "" {
		return errors.New("config: Every seed must be set")
	}
	if cfg.Subject == nil || cfg.Subject.Aci == "" {
		return errors.New("config: No Subject.Aci was present")
	}
	if cfg.Subject.Pni == "" {
		cfg.Subject.Pni = cfg.Subject.Aci
	}
	if cfg.Subject.RedemptionTime == 0 {
		cfg.Subject.RedemptionTime = defaultRedemptionTime
	}

	if cfg.Receipt == nil {
		cfg.Receipt = &Receipt{}
	}
	if cfg.Receipt.ExpirationTime == 0 {
		cfg.Receipt.ExpirationTime = defaultReceiptExpiration
	}
	if cfg.Receipt.Level == 0 {
		cfg.Receipt.Level = defaultReceiptLevel
	}

	if cfg.Logging == nil {
		logging := defaultLogging
		cfg.Logging = &logging
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}

	_, err := cfg.Vectors()
	return err
}

// LoadBinary loads, parses and validates the provided buffer b (as a config)
// and returns the Config.
func LoadBinary(b []byte) (*Config, error) {
	cfg := new(Config)
	_, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "config: toml")
	}
	if err := cfg.validateAndApplyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(filepath.Clean(f))
	if err != nil {
		return nil, err
	}
	return LoadBinary(b)
}
