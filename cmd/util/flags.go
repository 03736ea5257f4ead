package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/SanjiKun-Santhosh/PCMN/config"
)

var (
	FlagCpu       = runtime.NumCPU()
	FlagConfig    = ""
	FlagThreshold = config.Default().Threshold
	FlagWindow    = 0
	FlagMode      = "any"
	FlagResidues  = ""
)

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"cpu": {
		set: func() {
			flag.IntVar(&FlagCpu, "cpu", FlagCpu,
				"The max number of CPUs to use for contact detection.")
		},
		init: func() {
			runtime.GOMAXPROCS(FlagCpu)
		},
	},
	"config": {
		set: func() {
			flag.StringVar(&FlagConfig, "config", FlagConfig,
				"A TOML configuration file. Flags set on the command line\n"+
					"override values from the file.")
		},
	},
	"threshold": {
		set: func() {
			flag.Float64Var(&FlagThreshold, "threshold", FlagThreshold,
				"The contact distance cutoff in nanometers.")
		},
	},
	"window": {
		set: func() {
			flag.IntVar(&FlagWindow, "window", FlagWindow,
				"Exclude residue pairs within this many sequence positions\n"+
					"of each other. 0 excludes nothing.")
		},
	},
	"mode": {
		set: func() {
			flag.StringVar(&FlagMode, "mode", FlagMode,
				"Residue filter mode: 'any' keeps contacts with at least one\n"+
					"residue of interest, 'both' requires both.")
		},
	},
	"residues": {
		set: func() {
			flag.StringVar(&FlagResidues, "residues", FlagResidues,
				"A comma separated list of residues of interest,\n"+
					"e.g. 'LYS171,HIS201' or 'A:171,203'.")
		},
	},
}

func FlagUse(names ...string) {
	for _, name := range names {
		commonFlags[name].use = true
	}
}

// Usage just calls `flag.Usage`. It's included here to avoid
// an extra import to `flag` just to call Usage.
func Usage() {
	flag.Usage()
}

// Arg just calls `flag.Arg`. It's included here to avoid
// an extra import to `flag` just to call Arg.
func Arg(i int) string {
	return flag.Arg(i)
}

// NArg just calls `flag.NArg`. It's included here to avoid
// an extra import to `flag` just to call NArg.
func NArg() int {
	return flag.NArg()
}

func AssertNArg(n int) {
	if flag.NArg() != n {
		flag.Usage()
	}
}

func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		flag.VisitAll(func(fl *flag.Flag) {
			var def string
			if len(fl.DefValue) > 0 {
				def = fmt.Sprintf(" (default: %s)", fl.DefValue)
			}

			usage := strings.Replace(fl.Usage, "\n", "\n    ", -1)
			log.Printf("-%s%s\n", fl.Name, def)
			log.Printf("    %s\n", usage)
		})
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}

// RunConfig resolves the effective configuration: defaults, then the TOML
// file named by -config (when given), then any flags explicitly set on the
// command line.
func RunConfig() config.Config {
	cfg := config.Default()
	if FlagConfig != "" {
		var err error
		cfg, err = config.Load(FlagConfig)
		Assert(err, "Could not load configuration")
	}

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "threshold":
			cfg.Threshold = FlagThreshold
		case "window":
			cfg.ExclusionWindow = FlagWindow
		case "mode":
			cfg.FilterMode = FlagMode
		case "residues":
			cfg.Residues = splitResidues(FlagResidues)
		case "cpu":
			cfg.Workers = FlagCpu
		}
	})
	return cfg
}

func splitResidues(s string) []string {
	var residues []string
	for _, piece := range strings.Split(s, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			residues = append(residues, piece)
		}
	}
	return residues
}
