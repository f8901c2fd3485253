// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrledger/block"
	"github.com/decred/dcrledger/ledger"
	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "dcrledger.log"
	defaultBlocks         = 5
	defaultMaxTransfers   = 4
	defaultWallets        = 3
	minWallets            = 2
	slowDifficultyWarning = 6
)

var (
	defaultHomeDir     = dcrutil.AppDataDir("dcrledger", false)
	defaultLogFile     = filepath.Join(defaultHomeDir, defaultLogDirname, defaultLogFilename)
	defaultRewardCoins = ledger.DefaultMiningReward.ToCoin()
)

// config defines the configuration options for dcrledger.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion   bool    `short:"V" long:"version" description:"Display version information and exit"`
	Difficulty    uint8   `long:"difficulty" description:"Number of leading zero hex digits required of each mined block hash"`
	Reward        float64 `long:"reward" description:"Mining reward paid for each block in coins"`
	Blocks        uint32  `short:"n" long:"blocks" description:"Number of blocks to mine after the funding block"`
	Transfers     uint32  `long:"transfers" description:"Maximum number of random transfers submitted before each block"`
	Wallets       uint32  `long:"wallets" description:"Number of in-memory wallets that take part in transfers"`
	LogFile       string  `long:"logfile" description:"Path to the log file"`
	NoFileLogging bool    `long:"nofilelogging" description:"Disable file logging"`
	DebugLevel    string  `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	CPUProfile    string  `long:"cpuprofile" description:"Write CPU profile to the specified file"`

	// params are the ledger parameters derived from the options above.
	params *ledger.Params
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	_, ok := slog.LevelFromString(logLevel)
	return ok
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		setLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsystems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// cleanAndExpandPath expands environment variables and leading ~ in the passed
// path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(defaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// loadConfig initializes and parses the config using command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Override with any specified command line options
//  3. Validate the resulting options and derive the ledger parameters
//
// The above results in dcrledger functioning properly without any config
// settings while still allowing the user to override settings with command
// line options.  Command line options always take precedence.
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		Difficulty: ledger.DefaultDifficulty,
		Reward:     defaultRewardCoins,
		Blocks:     defaultBlocks,
		Transfers:  defaultMaxTransfers,
		Wallets:    defaultWallets,
		LogFile:    defaultLogFile,
		DebugLevel: defaultLogLevel,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if !errors.As(err, &flagsErr) || flagsErr.Type != flags.ErrHelp {
			fmt.Fprintln(os.Stderr, "Use dcrledger -h to show usage")
		}
		return nil, nil, err
	}

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		return &cfg, remainingArgs, nil
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}

	funcName := "loadConfig"
	usageMessage := fmt.Sprintf("Use %s -h to show usage", filepath.Base(os.Args[0]))

	// The difficulty may not exceed the number of hex digits in a hash.
	if cfg.Difficulty > block.MaxDifficulty {
		str := "%s: the difficulty may not exceed %d -- parsed [%d]"
		err := fmt.Errorf(str, funcName, block.MaxDifficulty, cfg.Difficulty)
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, nil, err
	}

	// Convert the reward to atoms.
	reward, err := dcrutil.NewAmount(cfg.Reward)
	if err != nil {
		str := "%s: invalid reward [%v]: %w"
		err := fmt.Errorf(str, funcName, cfg.Reward, err)
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, nil, err
	}
	if reward < 0 {
		str := "%s: the reward may not be negative -- parsed [%v]"
		err := fmt.Errorf(str, funcName, reward)
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, nil, err
	}

	// Transfers need a distinct sender and recipient.
	if cfg.Wallets < minWallets {
		str := "%s: at least %d wallets are required -- parsed [%d]"
		err := fmt.Errorf(str, funcName, minWallets, cfg.Wallets)
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, nil, err
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("%s: %w", funcName, err)
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, nil, err
	}

	if cfg.NoFileLogging {
		cfg.LogFile = ""
	} else {
		cfg.LogFile = cleanAndExpandPath(cfg.LogFile)
	}

	params := ledger.DefaultParams()
	params.Difficulty = cfg.Difficulty
	params.MiningReward = reward
	cfg.params = params

	if cfg.Difficulty >= slowDifficultyWarning {
		mainLog.Warnf("Mining at difficulty %d may take a very long time",
			cfg.Difficulty)
	}

	return &cfg, remainingArgs, nil
}
