// Command generate batch-produces puzzle description strings (spec §6.2)
// at a fixed difficulty, for seeding a puzzle archive offline instead of
// generating on first request.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/avdeenko/battleships-server/ships"
)

// maxGenerateWorkers bounds how many puzzles this batch CLI generates
// concurrently; each worker gets its own RNG stream seeded off the index
// so results are independent of scheduling order.
const maxGenerateWorkers = 8

type Config struct {
	Mode       string `json:"mode"`
	Height     int    `json:"height"`
	Width      int    `json:"width"`
	Difficulty int    `json:"difficulty"`
	Count      int    `json:"count"`
	OutPath    string `json:"out_path"`
	LogPath    string `json:"log_path"`
}

func (c Config) Development() bool { return c.Mode != "production" }

func ReadConfig(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, config)
}

var (
	log = logrus.New()

	configPath string
	config     Config
)

func init() {
	const (
		defaultConfigPath = "/run/config.json"
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
}

func setupLogging() {
	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if config.LogPath == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   config.LogPath,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create rotating log file hook: ", err)
	}
	log.AddHook(hook)
}

func main() {
	flag.Parse()

	config = Config{Mode: "development", Height: 10, Width: 10, Difficulty: 1, Count: 1}
	if err := ReadConfig(configPath, &config); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "unable to read config %s: %s\n", configPath, err)
		os.Exit(1)
	}

	setupLogging()

	params := ships.GameParams{
		Height:     config.Height,
		Width:      config.Width,
		Difficulty: ships.Difficulty(config.Difficulty),
	}
	if err := params.Validate(); err != nil {
		log.Fatal("invalid puzzle params: ", err)
	}

	out := os.Stdout
	if config.OutPath != "" {
		f, err := os.Create(config.OutPath)
		if err != nil {
			log.Fatal("unable to create output file: ", err)
		}
		defer f.Close()
		out = f
	}

	seed := uint64(time.Now().UnixNano())
	results := make([]*ships.GenerateResult, config.Count)

	g := new(errgroup.Group)
	g.SetLimit(maxGenerateWorkers)
	for i := 0; i < config.Count; i++ {
		i := i
		g.Go(func() error {
			rng := ships.NewRand(rand.New(rand.NewPCG(seed, uint64(i))))
			result, err := ships.Generate(params, rng)
			if err != nil {
				log.WithFields(logrus.Fields{"index": i}).Error("generation failed: ", err)
				return nil
			}
			results[i] = &result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("generation failed: ", err)
	}

	generated := 0
	for i, result := range results {
		if result == nil {
			continue
		}
		desc := ships.EncodeDescription(result.Clues)
		fmt.Fprintln(out, desc)
		log.WithFields(logrus.Fields{"index": i, "trace": result.Trace}).Debug("generated puzzle")
		generated++
	}

	log.Infof("generated %d/%d puzzles at difficulty %s", generated, config.Count, params.Difficulty)
}
