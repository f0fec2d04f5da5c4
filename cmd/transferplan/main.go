// Transfer planning tool - computes Hohmann transfer and gravity assist
// numbers for circular orbits around a central mass.
//
// Usage: go run ./cmd/transferplan -r1 250 -r2 600 -mass 50000
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/mechanics"
)

func main() {
	r1 := flag.Float64("r1", 250, "Departure circular orbit radius")
	r2 := flag.Float64("r2", 600, "Arrival circular orbit radius")
	mass := flag.Float64("mass", 50000, "Central body mass")
	g := flag.Float64("g", 100, "Gravitational constant")
	vInf := flag.Float64("vinf", 0, "Hyperbolic excess speed for an assist estimate (0 = skip)")
	periapsis := flag.Float64("periapsis", 0, "Assist flyby periapsis")
	flag.Parse()

	mu := *g * *mass

	transfer, ok := mechanics.HohmannTransfer(*r1, *r2, mu, r3.Vec{}, 64)
	if !ok {
		fmt.Fprintln(os.Stderr, "invalid transfer inputs: radii and mu must be positive")
		os.Exit(1)
	}

	fmt.Printf("Hohmann transfer %.1f -> %.1f (mu %.3g)\n", *r1, *r2, mu)
	fmt.Printf("  departure burn: %.4f\n", transfer.DeltaV1)
	fmt.Printf("  arrival burn:   %.4f\n", transfer.DeltaV2)
	fmt.Printf("  total delta-v:  %.4f\n", transfer.TotalDeltaV)
	fmt.Printf("  transfer time:  %.2f\n", transfer.TransferTime)

	if *vInf > 0 && *periapsis > 0 {
		assist, ok := mechanics.GravityAssist(*vInf, *periapsis, *mass, *g)
		if !ok {
			fmt.Fprintln(os.Stderr, "invalid assist inputs")
			os.Exit(1)
		}
		fmt.Printf("Gravity assist at periapsis %.1f, v-inf %.2f\n", *periapsis, *vInf)
		fmt.Printf("  deflection: %.2f deg\n", assist.Deflection*180/math.Pi)
		fmt.Printf("  delta-v gained: %.4f\n", assist.DeltaV)
	}
}
