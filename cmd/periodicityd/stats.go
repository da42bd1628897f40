// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xtaci/periodicityd/internal/engine"
)

// occupancy recomputes the per-slot device count C from a post-Avoid
// population, for diagnostics only; the Avoider's own occupancy table is
// private scratch state and never leaves the package.
func occupancy(records []*engine.Periodicity, n int) []int {
	c := make([]int, n)
	for _, r := range records {
		for slot := r.O; slot < n; slot += r.P {
			c[slot]++
		}
	}
	return c
}

// writeOccupancyStats appends one summary row (max/mean occupancy, and
// the configured reporting period) to a CSV file: a timestamped-filename
// convention (time.Now().Format applied to the logfile name) and a
// header-on-first-write, sized down to a single post-run snapshot since
// periodicityd is a batch tool, not a long-running server.
func writeOccupancyStats(path string, periodSeconds int, c []int) error {
	if path == "" {
		return nil
	}

	logdir, logfile := filepath.Split(path)
	f, err := os.OpenFile(logdir+time.Now().Format(logfile), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if stat, err := f.Stat(); err == nil && stat.Size() == 0 {
		if err := w.Write([]string{"Unix", "PeriodSeconds", "Slots", "MaxOccupancy", "MeanOccupancy"}); err != nil {
			return err
		}
	}

	var sum, max int
	for _, v := range c {
		sum += v
		if v > max {
			max = v
		}
	}
	mean := float64(sum) / float64(len(c))

	row := []string{
		fmt.Sprint(time.Now().Unix()),
		fmt.Sprint(periodSeconds),
		fmt.Sprint(len(c)),
		fmt.Sprint(max),
		fmt.Sprintf("%.4f", mean),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
