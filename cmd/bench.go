/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/interp/table"
	"github.com/notargets/interp/utils"
)

type BenchModel struct {
	NKnots    int
	NQuery    int
	Kind      string
	Irregular bool
	Parallel  int
	Profile   bool
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark coherent and random query streams",
	Long: `
Builds a table over sin(x) samples and times swept (spatially coherent)
versus randomly ordered query streams, on equally spaced or irregular
knots,

interp bench -n 10000 -q 1000000 --irregular`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bench called")
		bm := &BenchModel{}
		bm.NKnots, _ = cmd.Flags().GetInt("nKnots")
		bm.NQuery, _ = cmd.Flags().GetInt("nQuery")
		bm.Kind, _ = cmd.Flags().GetString("kind")
		bm.Irregular, _ = cmd.Flags().GetBool("irregular")
		bm.Parallel, _ = cmd.Flags().GetInt("parallel")
		bm.Profile, _ = cmd.Flags().GetBool("profile")
		RunBench(bm)
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntP("nKnots", "n", 10000, "number of knots in the table")
	BenchCmd.Flags().IntP("nQuery", "q", 1000000, "number of queries per stream")
	BenchCmd.Flags().StringP("kind", "k", "linear", "interpolant: nearest, floor, ceil, linear, spline")
	BenchCmd.Flags().Bool("irregular", false, "perturb the knot spacing to force the hinted search path")
	BenchCmd.Flags().IntP("parallel", "p", 1, "number of goroutines for the swept stream")
	BenchCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

func RunBench(bm *BenchModel) {
	if bm.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	it, err := table.NewInterpolant(bm.Kind)
	if err != nil {
		panic(err)
	}
	knots := utils.NewVector(bm.NKnots).Linspace(0, 2*math.Pi)
	if bm.Irregular {
		// Uneven but still strictly increasing spacing defeats the
		// equal-spaced fast path
		data := knots.RawData()
		for i := range data {
			data[i] += 0.25 * (2*math.Pi / float64(bm.NKnots-1)) *
				math.Sin(float64(7*i))
		}
	}
	vals := utils.NewVector(bm.NKnots, append([]float64{}, knots.RawData()...)).
		Apply(math.Sin)
	t, err := table.NewTableVec(knots, vals, it)
	if err != nil {
		panic(err)
	}

	sweep := utils.NewVector(bm.NQuery).Linspace(t.ArgMin(), t.ArgMax()).RawData()
	start := time.Now()
	if bm.Parallel > 1 {
		_ = t.InterpManyParallel(sweep, bm.Parallel)
	} else {
		_ = t.InterpMany(sweep)
	}
	coherent := time.Since(start)

	rng := rand.New(rand.NewSource(1))
	random := make([]float64, bm.NQuery)
	span := t.ArgMax() - t.ArgMin()
	for k := range random {
		random[k] = t.ArgMin() + span*rng.Float64()
	}
	start = time.Now()
	_ = t.InterpMany(random)
	scattered := time.Since(start)

	rate := func(d time.Duration) float64 {
		return float64(bm.NQuery) / d.Seconds() / 1.e6
	}
	fmt.Printf("%8d knots, %8d queries, [%s] interp, irregular = %v\n",
		bm.NKnots, bm.NQuery, t.Interpolant(), bm.Irregular)
	fmt.Printf("%12v\t= coherent sweep\t(%8.2f Mq/s)\n", coherent, rate(coherent))
	fmt.Printf("%12v\t= random order\t\t(%8.2f Mq/s)\n", scattered, rate(scattered))
}
