package task

import "fmt"

var waypoints = []string{
	"Lasham", "Didcot Power Station", "Newbury", "Membury", "Hungerford",
	"Marlborough", "Devizes", "Westbury White Horse", "Warminster", "Salisbury",
	"Stonehenge", "Andover", "Whitchurch", "Basingstoke", "Alton",
	"Petersfield", "Butser Hill", "Winchester", "Romsey", "Stockbridge",
}

// SeedPoints returns n demo points: a start line, n-2 points cycling through
// the zone kinds, and a finish cylinder.
func SeedPoints(n int) []Point {
	points := make([]Point, 0, n)
	for i := range n {
		name := waypoints[i%len(waypoints)]
		if i >= len(waypoints) {
			name = fmt.Sprintf("%s %d", name, i/len(waypoints)+1)
		}
		p := Point{Seq: i, Name: name}
		switch {
		case i == 0:
			p.Kind, p.Zone = PointStart, DefaultZone(ZoneLine)
		case i == n-1:
			p.Kind, p.Zone = PointFinish, DefaultZone(ZoneCylinder)
		case i%3 == 0:
			p.Kind, p.Zone = PointArea, DefaultZone(ZoneAnnularSector)
		default:
			p.Kind, p.Zone = PointTurn, DefaultZone(ZoneKind(i%int(zoneKinds)))
		}
		points = append(points, p)
	}
	return points
}
