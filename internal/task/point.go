// Package task holds the ordered task points shown by the taskpoints
// dialog and their observation zones.
package task

import (
	"fmt"
	"math"
)

// PointKind is the role of a point in the task.
type PointKind uint8

const (
	PointStart PointKind = iota
	// PointTurn must be rounded (assigned speed task).
	PointTurn
	// PointArea is an assigned area point.
	PointArea
	PointFinish
)

func (k PointKind) String() string {
	switch k {
	case PointStart:
		return "Start point"
	case PointTurn:
		return "Task point"
	case PointArea:
		return "Assigned area point"
	case PointFinish:
		return "Finish point"
	default:
		return fmt.Sprintf("PointKind(%d)", k)
	}
}

// ZoneKind is the shape of an observation zone.
type ZoneKind uint8

const (
	ZoneLine ZoneKind = iota
	ZoneCylinder
	ZoneSector
	ZoneAnnularSector
	ZoneFAISector
	ZoneBGAStart
	zoneKinds
)

func (k ZoneKind) String() string {
	switch k {
	case ZoneLine:
		return "line"
	case ZoneCylinder:
		return "cylinder"
	case ZoneSector:
		return "sector"
	case ZoneAnnularSector:
		return "annular sector"
	case ZoneFAISector:
		return "FAI sector"
	case ZoneBGAStart:
		return "BGA start sector"
	default:
		return fmt.Sprintf("ZoneKind(%d)", k)
	}
}

// Next returns the following zone kind, wrapping around.
func (k ZoneKind) Next() ZoneKind {
	return (k + 1) % zoneKinds
}

// Zone is an observation zone. Which fields are meaningful depends on Kind;
// distances are in metres and radials in degrees.
type Zone struct {
	Kind        ZoneKind
	Radius      float64
	InnerRadius float64
	StartRadial float64
	EndRadial   float64
	// Length is the width of a start or finish line.
	Length float64
}

// DefaultZone returns a zone of kind k with common competition sizes.
func DefaultZone(k ZoneKind) Zone {
	z := Zone{Kind: k}
	switch k {
	case ZoneLine:
		z.Length = 1000
	case ZoneCylinder:
		z.Radius = 500
	case ZoneSector, ZoneFAISector, ZoneBGAStart:
		z.Radius = 10000
		z.StartRadial, z.EndRadial = 315, 45
	case ZoneAnnularSector:
		z.Radius = 10000
		z.InnerRadius = 2000
		z.StartRadial, z.EndRadial = 315, 45
	}
	return z
}

// Editable reports whether the zone size may be changed. Fixed-shape zones
// are defined by their rules.
func (z Zone) Editable() bool {
	switch z.Kind {
	case ZoneFAISector, ZoneBGAStart:
		return false
	default:
		return true
	}
}

// Describe returns a one-line summary of the zone geometry.
func (z Zone) Describe() string {
	switch z.Kind {
	case ZoneLine:
		return fmt.Sprintf("line %s", km(z.Length))
	case ZoneCylinder:
		return fmt.Sprintf("cylinder r=%s", km(z.Radius))
	case ZoneSector:
		return fmt.Sprintf("sector r=%s %03.0f°-%03.0f°", km(z.Radius), z.StartRadial, z.EndRadial)
	case ZoneAnnularSector:
		return fmt.Sprintf("annular sector r=%s-%s %03.0f°-%03.0f°",
			km(z.InnerRadius), km(z.Radius), z.StartRadial, z.EndRadial)
	case ZoneFAISector, ZoneBGAStart:
		return z.Kind.String()
	default:
		return z.Kind.String()
	}
}

// sizeTolerance is the smallest size change in metres that counts as an edit.
const sizeTolerance = 49

// Apply copies the size fields of edit that are relevant for the zone's kind
// and reports whether the zone changed. Size changes within 49 m are treated
// as rounding noise of the input.
func (z *Zone) Apply(edit Zone) bool {
	if !z.Editable() {
		return false
	}
	modified := false
	size := func(dst *float64, v float64) {
		if math.Abs(v-*dst) > sizeTolerance {
			*dst = v
			modified = true
		}
	}
	radial := func(dst *float64, v float64) {
		if v != *dst {
			*dst = v
			modified = true
		}
	}

	switch z.Kind {
	case ZoneLine:
		size(&z.Length, edit.Length)
	case ZoneCylinder:
		size(&z.Radius, edit.Radius)
	case ZoneAnnularSector:
		size(&z.InnerRadius, edit.InnerRadius)
		fallthrough
	case ZoneSector:
		size(&z.Radius, edit.Radius)
		radial(&z.StartRadial, edit.StartRadial)
		radial(&z.EndRadial, edit.EndRadial)
	}
	return modified
}

func km(metres float64) string {
	if metres < 1000 {
		return fmt.Sprintf("%.0fm", metres)
	}
	return fmt.Sprintf("%.1fkm", metres/1000)
}

// Point is one task point.
type Point struct {
	ID   int64
	Seq  int
	Name string
	Kind PointKind
	Zone Zone
}
