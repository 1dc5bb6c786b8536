package physics

import (
	"math"

	"collision-sim/internal/geom"
)

// resolveCircles separates two overlapping circles along the centre normal and,
// unless they already move apart, exchanges an impulse scaled by the lower restitution.
func resolveCircles(a, b *Body) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)

	var nx, ny float64
	if dist > 0 {
		nx, ny = dx/dist, dy/dist
	} else {
		nx, ny = coincidentNormal(a, b)
	}

	invA, invB := a.invMass(), b.invMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	// Half the penetration each; an immovable body leaves the whole correction to the other.
	if pen := a.radius + b.radius - dist; pen > 0 {
		shareA, shareB := 0.5, 0.5
		if invA == 0 || invB == 0 {
			shareA, shareB = invA/invSum, invB/invSum
		}
		a.X -= nx * pen * shareA
		a.Y -= ny * pen * shareA
		b.X += nx * pen * shareB
		b.Y += ny * pen * shareB
	}

	vn := (b.VX-a.VX)*nx + (b.VY-a.VY)*ny
	if vn > 0 {
		return
	}

	e := math.Min(a.props.Restitution, b.props.Restitution)
	j := -(1 + e) * vn / invSum
	a.VX -= j * nx * invA
	a.VY -= j * ny * invA
	b.VX += j * nx * invB
	b.VY += j * ny * invB
}

// coincidentNormal picks a normal for circles sharing a centre: the closing direction
// of their velocities, or +X when they have none.
func coincidentNormal(a, b *Body) (nx, ny float64) {
	rx, ry := a.VX-b.VX, a.VY-b.VY
	if l := math.Hypot(rx, ry); l > 0 {
		return rx / l, ry / l
	}
	return 1, 0
}

// resolveRects responds along the axis of least overlap only. No positional correction.
func resolveRects(a, b *Body) {
	ra, rb := a.rect(), b.rect()
	ox, oy := geom.OverlapExtents(ra, rb)
	e := math.Min(a.props.Restitution, b.props.Restitution)

	acx, acy := ra.Center()
	bcx, bcy := rb.Center()
	if ox <= oy {
		a.VX, b.VX = exchange1D(a.VX, b.VX, bcx-acx, a.mass, b.mass, e)
	} else {
		a.VY, b.VY = exchange1D(a.VY, b.VY, bcy-acy, a.mass, b.mass, e)
	}
}

// exchange1D applies the mass-weighted restitution formula when v1 and v2 have opposite
// signs and point at each other. gap is the signed distance from body 1 to body 2.
// A body without positive mass takes the infinite-mass limit of the formula.
func exchange1D(v1, v2, gap, m1, m2, e float64) (float64, float64) {
	if v1*v2 >= 0 || v1*gap <= 0 {
		return v1, v2
	}
	fixed1, fixed2 := !(m1 > 0), !(m2 > 0)
	switch {
	case fixed1 && fixed2:
		return v1, v2
	case fixed1:
		return v1, 2*v1 - e*v2
	case fixed2:
		return 2*v2 - e*v1, v2
	}
	total := m1 + m2
	n1 := (v1*(m1-e*m2) + 2*m2*v2) / total
	n2 := (v2*(m2-e*m1) + 2*m1*v1) / total
	return n1, n2
}

// resolveCircleRect reflects each body's velocity scaled by its own restitution.
func resolveCircleRect(c, r *Body) {
	reflect(c)
	reflect(r)
}

func reflect(b *Body) {
	if b.invMass() == 0 {
		return
	}
	b.VX = -b.VX * b.props.Restitution
	b.VY = -b.VY * b.props.Restitution
}
