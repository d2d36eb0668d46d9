package assembler

import "fmt"

// Gravity is the acceleration used by the calculation, m/s².
const Gravity = 10

// horizontalShare is the part of the vertical load applied horizontally.
const horizontalShare = 0.2

// Loads are the user loads of one product.
type Loads struct {
	ChildrenCount int
	MassChild     float64
	TotalMass     float64
	// Fh is the horizontal force, N.
	Fh float64
	// Fz is the vertical force, N.
	Fz float64
}

// ComputeLoads derives masses and forces from the number of children.
func ComputeLoads(childrenCount int, massChild float64) Loads {
	total := float64(childrenCount) * massChild
	return Loads{
		ChildrenCount: childrenCount,
		MassChild:     massChild,
		TotalMass:     total,
		Fh:            horizontalShare * total * Gravity,
		Fz:            total * Gravity,
	}
}

func (l Loads) massChildText() string { return fmt.Sprintf("%.1f", l.MassChild) }
func (l Loads) totalMassText() string { return fmt.Sprintf("%.1f", l.TotalMass) }
func (l Loads) fhText() string        { return fmt.Sprintf("%.1f", l.Fh) }
func (l Loads) fzText() string        { return fmt.Sprintf("%.0f", l.Fz) }
