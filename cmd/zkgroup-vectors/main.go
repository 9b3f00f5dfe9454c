package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/MixinNetwork/zkgroup-go/logger"
)

func main() {
	cfgFile := flag.String("f", "vectors.toml", "Path to the vectors config file.")
	flag.Parse()

	cfg, err := LoadFile(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config file '%v': %v\n", *cfgFile, err)
		os.Exit(-1)
	}

	backend, err := logger.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(-1)
	}
	log := backend.GetLogger("vectors")

	v, err := cfg.Vectors()
	if err != nil {
		log.Errorf("vectors: %v", err)
		os.Exit(-1)
	}
	vectors, err := Run(v, log)
	if err != nil {
		log.Errorf("scenario: %v", err)
		os.Exit(-1)
	}
	for _, vec := range vectors {
		fmt.Printf("%s = %s\n", vec.Name, vec.Hex)
	}
}
