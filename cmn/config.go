package cmn

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

const VERSION = "0.1.0"
const LOG_NAME = "sigconfirm.log"
const CONFIG_NAME = "config.yaml"

const DEFAULT_HELP_URL = "https://consensys.net/blog/metamask/the-seal-of-approval-know-what-youre-consenting-to-with-permissions-and-approvals-in-metamask/"

var DataFolder = "data"
var AppName = "sigconfirm"
var LogPath = LOG_NAME
var ConfPath = CONFIG_NAME

var ConfigChanged = false

type NetworkConfig struct {
	Nickname string `yaml:"nickname"`
	Ticker   string `yaml:"ticker"`
	ChainID  int    `yaml:"chain_id"`
}

type AccountConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Signer  string `yaml:"signer"` // "ledger" for hardware accounts
}

type SubjectConfig struct {
	Origin  string `yaml:"origin"`
	Name    string `yaml:"name"`
	IconURL string `yaml:"icon_url"`
}

type SConfig struct {
	Verbosity         string          `yaml:"verbosity"`           // log verbosity
	Theme             string          `yaml:"theme"`               // UI theme
	Language          string          `yaml:"language"`            // BCP-47 tag for UI strings
	WSEnabled         bool            `yaml:"ws_enabled"`          // accept dApp requests over WebSocket
	WSPort            int             `yaml:"ws_port"`             // WebSocket listen port
	ClefEndpoint      string          `yaml:"clef_endpoint"`       // external signer endpoint (ipc path or url)
	RPCUrl            string          `yaml:"rpc_url"`             // node used for balances, empty disables polling
	BalancePollPeriod time.Duration   `yaml:"balance_poll_period"` // balance refresh period
	LedgerPollPeriod  time.Duration   `yaml:"ledger_poll_period"`  // usb enumeration period
	SoundOn           bool            `yaml:"sound_on"`            // play sound on new request
	SoundFile         string          `yaml:"sound_file"`          // mp3 file to play
	HelpURL           string          `yaml:"help_url"`            // "learn more" link for eth_sign
	Network           NetworkConfig   `yaml:"network"`
	ConversionRate    *float64        `yaml:"conversion_rate,omitempty"`
	NativeCurrency    string          `yaml:"native_currency"`
	Accounts          []AccountConfig `yaml:"accounts"`
	Subjects          []SubjectConfig `yaml:"subjects"`
}

var Config *SConfig = &SConfig{ //Default config
	Verbosity:         "debug",
	Theme:             "dark",
	Language:          "en",
	WSEnabled:         true,
	WSPort:            9323,
	BalancePollPeriod: 30 * time.Second,
	LedgerPollPeriod:  3 * time.Second,
	SoundOn:           false,
	HelpURL:           DEFAULT_HELP_URL,
	Network: NetworkConfig{
		Ticker:  "ETH",
		ChainID: 1,
	},
	NativeCurrency: "ETH",
}

func InitConfig() {
	var err error

	// Get the data folder
	DataFolder, err = GetDataFolder()
	if err != nil {
		fmt.Printf("error getting data folder: %v", err)
		os.Exit(1)
	}

	// Init logger
	LogPath = filepath.Join(DataFolder, LOG_NAME)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logFile, err := os.OpenFile(LogPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666) // truncate log file
	if err != nil {
		log.Fatal().Msgf("error opening log file: %v", err)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logFile})

	//Restore config from yaml file
	ConfPath = filepath.Join(DataFolder, CONFIG_NAME)
	err = RestoreConfig(ConfPath)
	if err != nil {
		log.Error().Msgf("error restoring config: %v", err)
	}

	zerolog.SetGlobalLevel(ParseVerbosity(Config.Verbosity))

	log.Info().Msgf("Log level: %s", Config.Verbosity)
	log.Trace().Msg("Started")
}

func ParseVerbosity(v string) zerolog.Level {
	switch v {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	}
	return zerolog.DebugLevel
}

func SaveConfig() error {
	if !ConfigChanged {
		return nil
	}

	data, err := yaml.Marshal(Config)
	if err != nil {
		return err
	}

	err = os.WriteFile(ConfPath, data, 0666)
	if err != nil {
		return err
	}

	ConfigChanged = false
	return nil
}

func RestoreConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// it is ok. Let's use default config and write it out for editing
			log.Warn().Msgf("no config file found: %v", err)
			ConfigChanged = true
			return nil
		}
		return err
	}

	return yaml.Unmarshal(data, Config)
}

func GetDataFolder() (string, error) {
	var dataDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			return "", fmt.Errorf("LOCALAPPDATA environment variable is not set")
		}
		dataDir = filepath.Join(localAppData, AppName)
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting home directory: %v", err)
		}
		dataDir = filepath.Join(homeDir, "Library", "Application Support", AppName)
	case "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting home directory: %v", err)
		}
		dataDir = filepath.Join(homeDir, "."+AppName)
	default:
		return "", fmt.Errorf("unsupported operating system")
	}

	// Create the directory if it doesn't exist
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		return "", fmt.Errorf("error creating data directory: %v", err)
	}

	return dataDir, nil
}
