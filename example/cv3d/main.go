// Command cv3d drives a single track over a synthetic box moving at a fixed
// speed and writes the truth, the noisy detections and the filtered estimate
// as CSV.
//
// Usage:
//
//	go run ./example/cv3d --steps 50 --speed 0.8 --noise 0.3 --out out.csv
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nicktmv/AB3DMOT/kalman"
	"github.com/nicktmv/AB3DMOT/tracker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cv3d",
		Short: "Track a synthetic 3D box with a constant velocity Kalman filter",
		RunE:  run,
	}
	rootCmd.Flags().Int("steps", 50, "Number of frames to simulate")
	rootCmd.Flags().Float64("speed", 0.8, "Distance the box moves along x per frame")
	rootCmd.Flags().Float64("noise", 0.3, "Standard deviation of the detection noise")
	rootCmd.Flags().Float64("gate", 0, "Reject detections whose Mahalanobis distance exceeds this (0 disables)")
	rootCmd.Flags().String("model", "cv", "Motion model")
	rootCmd.Flags().String("config", "", "YAML filter configuration")
	rootCmd.Flags().String("out", "./out.csv", "CSV output path")
	rootCmd.Flags().Int64("seed", 1, "Random seed")
	rootCmd.Flags().Bool("debug", false, "Log per-track filter diagnostics")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	speed, _ := cmd.Flags().GetFloat64("speed")
	noise, _ := cmd.Flags().GetFloat64("noise")
	gate, _ := cmd.Flags().GetFloat64("gate")
	modelName, _ := cmd.Flags().GetString("model")
	configPath, _ := cmd.Flags().GetString("config")
	out, _ := cmd.Flags().GetString("out")
	seed, _ := cmd.Flags().GetInt64("seed")
	debug, _ := cmd.Flags().GetBool("debug")

	if debug {
		tracker.SetDebugLogger(os.Stderr)
	}

	cfg := tracker.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = tracker.LoadConfig(configPath); err != nil {
			return err
		}
	}

	kind, err := tracker.ParseModelKind(modelName)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	truth := []float64{0, 0, 0, 0.1, 4.2, 1.8, 1.5}

	track, err := tracker.NewMotionModel(kind, detect(rng, truth, noise), map[string]any{"score": 0.9, "class": "Car"}, 1, tracker.WithConfig(cfg))
	if err != nil {
		return err
	}

	result := []string{"frame,true_x,det_x,est_x,est_vx,distance,matched"}
	for i := 1; i < steps; i++ {
		truth[0] += speed * cfg.Dt
		z := detect(rng, truth, noise)

		track.Predict()
		meta := track.Meta()

		d, err := tracker.MahalanobisDistance(track, z)
		matched := err == nil && (gate <= 0 || d <= gate)
		if matched {
			if err = track.Update(z); err != nil {
				matched = false
			}
		}
		if err != nil && !errors.Is(err, kalman.ErrSingularInnovation) {
			return err
		}

		if matched {
			meta.Hits++
			meta.TimeSinceUpdate = 0
		} else {
			meta.TimeSinceUpdate++
		}

		x := track.State()
		v := track.Velocity()
		result = append(result, fmt.Sprintf("%d,%.5f,%.5f,%.5f,%.5f,%.5f,%t", i, truth[0], z[0], x[0], v[0], d, matched))
	}

	if err := os.WriteFile(out, []byte(strings.Join(result, "\r\n")), fs.ModePerm); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	meta := track.Meta()
	v := track.Velocity()
	log.Printf("track %d: hits=%d time_since_update=%d vx=%.3f (true %.3f), wrote %s",
		meta.ID, meta.Hits, meta.TimeSinceUpdate, v[0], speed, out)
	return nil
}

// detect returns truth with gaussian noise on the centre.
func detect(rng *rand.Rand, truth []float64, std float64) []float64 {
	z := append([]float64(nil), truth...)
	for i := 0; i < 3; i++ {
		z[i] += rng.NormFloat64() * std
	}
	return z
}
