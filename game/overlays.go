package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/mechanics"
	"github.com/saagar210/OrbitForge/sim"
	"github.com/saagar210/OrbitForge/telemetry"
	"github.com/saagar210/OrbitForge/ui"
)

// Field overlay sampling bounds.
const (
	fieldExtent = 600.0
	fieldCells  = 40
	tailLength  = 6.0 // multiples of body radius
)

// drawOverlays3D renders the enabled world-space overlays. Runs inside
// BeginMode3D.
func (e *Engine) drawOverlays3D() {
	if !e.haveFrame {
		return
	}
	e.perf.StartPhase(telemetry.PhaseOverlays)
	bodies := e.frame.Bodies

	for _, id := range e.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayVectors:
			e.overlayDraw.DrawVectors(bodies)
		case ui.OverlayBarycenter:
			if bc, ok := mechanics.Barycenter(bodies); ok {
				e.overlayDraw.DrawBarycenter(bc)
			}
		case ui.OverlayLagrange:
			if p, s, ok := mechanics.SelectPair(bodies); ok {
				lp := mechanics.ComputeLagrangePoints(
					bodies[p].Position, bodies[s].Position,
					bodies[p].Mass, bodies[s].Mass,
				)
				e.overlayDraw.DrawLagrange(lp)
			}
		case ui.OverlaySweptArea:
			e.drawSweptArea(bodies)
		case ui.OverlayGravityField:
			e.overlayDraw.DrawGravityField(bodies, e.opts.Gravity, fieldExtent, fieldCells)
		case ui.OverlayOrbitalPlanes:
			e.drawOrbitalPlanes(bodies)
		case ui.OverlayCometTails:
			e.drawCometTails(bodies)
		case ui.OverlayPrediction:
			if path := e.predictionPath(); path != nil {
				e.overlayDraw.DrawPrediction(path)
			}
		}
	}

	if e.transferPlan != nil {
		e.overlayDraw.DrawTransfer(*e.transferPlan)
	}
}

// planTransfer computes a Hohmann arc from the selected body's orbit to the
// next outer orbit around the same attractor.
func (e *Engine) planTransfer() {
	body := e.SelectedBody()
	if body == nil {
		return
	}
	idx := e.frame.IndexOf(body.ID)
	if idx < 0 {
		return
	}
	attractor, ok := mechanics.DominantBody(e.frame.Bodies, idx, e.opts.Gravity)
	if !ok {
		return
	}
	att := &e.frame.Bodies[attractor]
	r1 := r3.Norm(r3.Sub(body.Position, att.Position))

	// Next outer orbit around the same attractor.
	r2 := 0.0
	for i := range e.frame.Bodies {
		if i == idx || i == attractor {
			continue
		}
		r := r3.Norm(r3.Sub(e.frame.Bodies[i].Position, att.Position))
		if r > r1 && (r2 == 0 || r < r2) {
			r2 = r
		}
	}
	if r2 == 0 {
		r2 = r1 * 2 // nothing further out, show a doubling transfer
	}

	transfer, ok := mechanics.HohmannTransfer(r1, r2, e.opts.Gravity*att.Mass, att.Position, 96)
	if !ok {
		return
	}
	e.transferPlan = &transfer
	slog.Info("transfer planned",
		"from", r1, "to", r2,
		"delta_v", transfer.TotalDeltaV,
		"time", transfer.TransferTime,
	)
}

// drawOverlays2D renders the screen-space overlay passes (labels and
// marker names). Runs after EndMode3D.
func (e *Engine) drawOverlays2D(cam rl.Camera3D) {
	if !e.haveFrame {
		return
	}

	if e.overlays.IsEnabled(ui.OverlayLabels) {
		e.overlayDraw.DrawLabels(e.frame.Bodies, cam)
	}
	if e.overlays.IsEnabled(ui.OverlayLagrange) {
		if p, s, ok := mechanics.SelectPair(e.frame.Bodies); ok {
			lp := mechanics.ComputeLagrangePoints(
				e.frame.Bodies[p].Position, e.frame.Bodies[s].Position,
				e.frame.Bodies[p].Mass, e.frame.Bodies[s].Mass,
			)
			e.overlayDraw.DrawLagrangeLabels(lp, cam)
		}
	}
	if e.overlays.IsEnabled(ui.OverlayElements) {
		e.drawElementsReadout()
	}
}

// drawElementsReadout computes the selected body's elements around its
// dominant attractor and hands them to the HUD.
func (e *Engine) drawElementsReadout() {
	body := e.SelectedBody()
	if body == nil {
		return
	}
	idx := e.frame.IndexOf(body.ID)
	if idx < 0 {
		return
	}
	attractor, ok := mechanics.DominantBody(e.frame.Bodies, idx, e.opts.Gravity)
	if !ok {
		return
	}
	att := &e.frame.Bodies[attractor]
	el, ok := mechanics.OrbitalElements(
		r3.Sub(body.Position, att.Position),
		r3.Sub(body.Velocity, att.Velocity),
		att.Mass, e.opts.Gravity,
	)
	if !ok {
		return
	}
	e.hud.DrawElements(el, att.Name)
}

// drawSweptArea shades the radius-vector sweep of the selected body over its
// recent trail.
func (e *Engine) drawSweptArea(bodies []sim.Body) {
	body := e.SelectedBody()
	if body == nil || len(body.Trail) < 2 {
		return
	}
	idx := e.frame.IndexOf(body.ID)
	if idx < 0 {
		return
	}
	attractor, ok := mechanics.DominantBody(bodies, idx, e.opts.Gravity)
	if !ok {
		return
	}
	e.overlayDraw.DrawSweptArea(bodies[attractor].Position, body.Trail)
}

// drawOrbitalPlanes draws a disc in each orbiting body's plane around its
// dominant attractor.
func (e *Engine) drawOrbitalPlanes(bodies []sim.Body) {
	for i := range bodies {
		if bodies[i].Fixed || bodies[i].Kind == sim.KindStar {
			continue
		}
		attractor, ok := mechanics.DominantBody(bodies, i, e.opts.Gravity)
		if !ok {
			continue
		}
		rel := r3.Sub(bodies[i].Position, bodies[attractor].Position)
		vel := r3.Sub(bodies[i].Velocity, bodies[attractor].Velocity)
		h := r3.Cross(rel, vel)
		n := r3.Norm(h)
		if n < 1e-9 {
			continue
		}
		e.overlayDraw.DrawOrbitalPlane(bodies[attractor].Position, r3.Scale(1/n, h), r3.Norm(rel))
	}
}

// drawCometTails draws each body's tail pointing away from its dominant
// attractor, the same influence proxy the elements readout selects with.
func (e *Engine) drawCometTails(bodies []sim.Body) {
	for i := range bodies {
		if bodies[i].Fixed || bodies[i].Kind == sim.KindStar {
			continue
		}
		attractor, ok := mechanics.DominantBody(bodies, i, e.opts.Gravity)
		if !ok {
			continue
		}
		away := r3.Sub(bodies[i].Position, bodies[attractor].Position)
		e.overlayDraw.DrawCometTail(bodies[i].Position, away, bodies[i].Radius*tailLength)
	}
}
