// Command trilat estimates GPS coordinates for samples recorded as
// distances to three referenced GPS points. It reads a delimited table
// (name, dist1..3 in meters, then long/lat pairs for the three references
// in decimal degrees), trilaterates each row, and writes a table of
// name, longitude, latitude, status.
//
// The only flags are the input and output paths. Optional run settings
// (earth radius, delimiters, non-intersection policy, workers) come from a
// YAML file named by the TRILAT_CONFIG environment variable.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/satoshi-pes/geoloc/batch"
	"github.com/satoshi-pes/geoloc/config"
	"github.com/satoshi-pes/geoloc/geodesy"
	"github.com/satoshi-pes/geoloc/trilat"
)

func main() {
	var input, output string
	flag.StringVar(&input, "i", "", "input table path (required)")
	flag.StringVar(&output, "o", "", "output table path (required)")
	flag.Parse()

	if input == "" || output == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(os.Getenv("TRILAT_CONFIG"))
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := run(cfg, input, output); err != nil {
		log.Fatalf("trilat: %v", err)
	}
}

// run processes one input file into one output file. Per-row failures are
// flagged in the output; only whole-file problems return an error.
func run(cfg config.Config, input, output string) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	samples, rowErrs, err := batch.ReadTable(f, cfg.InputComma())
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	sphere := geodesy.Sphere{R: cfg.EarthRadiusM}
	proc := batch.Processor{
		Sphere:  sphere,
		Solver:  trilat.Solver{Surface: sphere, Clamp: cfg.Clamp()},
		Workers: cfg.Workers,
	}

	sols, err := proc.ProcessAll(context.Background(), samples)
	if err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := batch.WriteTable(out, cfg.OutputComma(), sols); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	counts := make(map[batch.Status]int)
	for _, sol := range sols {
		counts[sol.Status]++
	}
	log.Printf("processed %d rows: ok=%d approx=%d degenerate=%d no-intersection=%d skipped=%d",
		len(sols),
		counts[batch.StatusOK], counts[batch.StatusApprox],
		counts[batch.StatusDegenerate], counts[batch.StatusNoIntersection],
		len(rowErrs))
	for _, re := range rowErrs {
		log.Printf("skipped %v", re)
	}

	return nil
}
