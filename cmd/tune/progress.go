package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/treevolution/config"
)

// progress logs every evaluation to optimize_log.csv and keeps best_config.yaml
// in step with the best population found so far, so an interrupted search
// still leaves a usable config behind.
type progress struct {
	params   *ParamVector
	base     *config.Config
	dir      string
	maxEvals int

	log *csv.Writer
	out io.Writer

	evals     int
	bestMean  float64
	bestX     []float64
	start     time.Time
	sinceBest int
	now       func() time.Time
}

func newProgress(params *ParamVector, base *config.Config, dir string, maxEvals int, log, out io.Writer) (*progress, error) {
	p := &progress{
		params:   params,
		base:     base,
		dir:      dir,
		maxEvals: maxEvals,
		log:      csv.NewWriter(log),
		out:      out,
		bestMean: -1,
		now:      time.Now,
	}
	p.start = p.now()

	header := []string{"eval", "mean_plants", "min_seed_plants", "max_seed_plants"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := p.log.Write(header); err != nil {
		return nil, err
	}
	p.log.Flush()
	return p, p.log.Error()
}

// record logs one evaluation of the clamped parameters x with its per-seed
// plant means, and reports whether it is a new best.
func (p *progress) record(x, seedPlants []float64) (bool, error) {
	p.evals++

	var mean, lo, hi float64
	if len(seedPlants) > 0 {
		mean = floats.Sum(seedPlants) / float64(len(seedPlants))
		lo, hi = floats.Min(seedPlants), floats.Max(seedPlants)
	}

	row := []string{
		strconv.Itoa(p.evals),
		strconv.FormatFloat(mean, 'f', 3, 64),
		strconv.FormatFloat(lo, 'f', 3, 64),
		strconv.FormatFloat(hi, 'f', 3, 64),
	}
	for _, v := range x {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := p.log.Write(row); err != nil {
		return false, err
	}
	p.log.Flush()
	if err := p.log.Error(); err != nil {
		return false, err
	}

	improved := mean > p.bestMean
	if improved {
		p.bestMean = mean
		p.bestX = append(p.bestX[:0], x...)
		p.sinceBest = 0
		if err := p.saveBest(); err != nil {
			return true, err
		}
	} else {
		p.sinceBest++
	}

	p.printLine(mean, lo, hi, improved)
	return improved, nil
}

func (p *progress) printLine(mean, lo, hi float64, improved bool) {
	elapsed := p.now().Sub(p.start)
	eta := time.Duration(p.maxEvals-p.evals) * (elapsed / time.Duration(p.evals))
	mark := " "
	if improved {
		mark = "*"
	}
	fmt.Fprintf(p.out, "%s eval %d/%d  plants %.1f [%.1f-%.1f]  best %.1f (%d evals ago)  %s elapsed, ETA %s\n",
		mark, p.evals, p.maxEvals, mean, lo, hi, p.bestMean, p.sinceBest,
		formatDuration(elapsed), formatDuration(eta))
}

// saveBest writes the base config with the best parameters applied.
func (p *progress) saveBest() error {
	cfg := p.base.Clone()
	p.params.ApplyToConfig(cfg, p.bestX)
	return cfg.WriteYAML(filepath.Join(p.dir, "best_config.yaml"))
}

// summary prints the best population and the parameters that produced it,
// marking those that moved away from their defaults.
func (p *progress) summary() {
	fmt.Fprintf(p.out, "\n%d evaluations in %s, best mean plants %.1f\n",
		p.evals, formatDuration(p.now().Sub(p.start)), p.bestMean)
	if p.bestX == nil {
		return
	}
	for i, spec := range p.params.Specs {
		delta := ""
		if spec.Default != 0 {
			delta = fmt.Sprintf(" (%+.0f%% vs default)", (p.bestX[i]/spec.Default-1)*100)
		}
		fmt.Fprintf(p.out, "  %-22s %.6f%s\n", spec.Name, p.bestX[i], delta)
	}
	fmt.Fprintf(p.out, "best config: %s\n", filepath.Join(p.dir, "best_config.yaml"))
}

// formatDuration formats a duration as 1h02m03s, or 2m03s below an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
